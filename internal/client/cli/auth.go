package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, models.ActionLogin)
}

func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, models.ActionRegister)
}

// Submit authenticates in the mode currently selected with ToggleMode.
func (a *App) Submit(ctx context.Context) error {
	return a.authenticate(ctx, a.currentMode())
}

// ToggleMode flips the form between login and registration.
func (a *App) ToggleMode() {
	a.setMode(a.currentMode().Toggle())
	a.render()
}

// authenticate prompts for credentials and submits them in mode. The
// password is wiped before returning. For admins the user list is loaded
// right after a successful login.
func (a *App) authenticate(ctx context.Context, mode models.AuthAction) error {
	return a.guard(&a.authBusy, func() error {
		a.setMode(mode)

		email, err := getSimpleText(a.reader, "Email", os.Stdout)
		if err != nil {
			return err
		}
		password, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		defer wipe(password)

		u, err := a.auth.Authenticate(ctx, mode, email, password)
		if a.dropped() {
			return errDropped
		}
		if err != nil {
			a.fail(err)
			return err
		}

		a.welcome(u, mode)
		a.render()
		if u.IsAdmin {
			_ = a.refreshUsers(ctx, true)
		}
		return nil
	})
}

// Logout forgets the session and everything shown for it. The screen is
// reset even when the durable snapshot could not be deleted.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.resetScreen()
	a.notify(common.TitleLoggedOut, common.MsgGoodbye)
	a.render()
	return err
}

// Status re-draws the dashboard.
func (a *App) Status(ctx context.Context) error {
	a.render()
	if art := a.currentArtifact(); art != nil {
		printlnFn("Последний сайт: " + art.ReceivedAt.Format("15:04:05") + " · " + art.Prompt)
	}
	return nil
}
