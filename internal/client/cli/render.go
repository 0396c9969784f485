package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/services"
	"github.com/dmitrijs2005/sitegen/internal/common"
)

const msgGenerationUnavailable = "генерация недоступна"

// header is the one-line dashboard summary, also used as the REPL prompt.
func (a *App) header() string {
	u, ok := a.store.Current()
	if !ok {
		if a.currentMode() == models.ActionRegister {
			return "гость · регистрация"
		}
		return "гость · вход"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s · %d энергии", u.Email, u.EnergyBalance)
	if u.IsAdmin {
		b.WriteString(" [admin]")
	}
	if !a.gen.CanGenerate(u.EnergyBalance) {
		b.WriteString(" · " + msgGenerationUnavailable)
	}
	return b.String()
}

// render re-draws the header after a state change.
func (a *App) render() {
	printlnFn("== " + a.header() + " ==")
}

func (a *App) notify(title, description string) {
	printlnFn(title + ": " + description)
}

// fail reports err as an error notification.
func (a *App) fail(err error) {
	a.notify(common.TitleError, services.UserMessage(err))
}

func (a *App) welcome(u *models.User, mode models.AuthAction) {
	title := common.TitleLoggedIn
	if mode == models.ActionRegister {
		title = common.TitleRegistered
	}
	a.notify(title, fmt.Sprintf("Добро пожаловать! Ваш баланс: %d энергии", u.EnergyBalance))
}

// formatUsers renders the admin user table.
func formatUsers(users []models.User) string {
	if len(users) == 0 {
		return "Пользователей нет"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tЭНЕРГИЯ\tADMIN\tСОЗДАН")
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = "да"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", u.ID, u.Email, u.EnergyBalance, admin, u.CreatedAt)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func helpText(loggedIn, admin bool) string {
	if !loggedIn {
		return "Команды: login, register, mode, auth, help, exit"
	}
	s := "Команды: status, generate [описание], show, export [путь], preview, publish, logout, help, exit"
	if admin {
		s += "\nАдмин: users, setbalance <id> <значение>, addenergy <id> <прибавка>"
	}
	return s
}
