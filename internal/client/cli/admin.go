package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
)

const msgUserNotFound = "User not found"

var errUsage = errors.New("usage")

// Users reloads and prints the user list. On failure the error is reported
// and the previous list is kept and printed.
func (a *App) Users(ctx context.Context) error {
	return a.refreshUsers(ctx, true)
}

func (a *App) refreshUsers(ctx context.Context, show bool) error {
	return a.guard(&a.listBusy, func() error {
		users, err := a.admin.ListUsers(ctx)
		if a.dropped() {
			return errDropped
		}
		if err != nil {
			a.logger.Warn(ctx, "failed to load users", "error", err)
			if show {
				a.fail(err)
			}
		} else {
			a.setUsers(users)
		}
		if show {
			printlnFn(formatUsers(a.cachedUsers()))
		}
		return err
	})
}

// SetBalance handles "setbalance <id> <value>".
func (a *App) SetBalance(ctx context.Context, args []string) error {
	id, value, err := parseTwoInts(args)
	if err != nil {
		printlnFn("Использование: setbalance <id> <значение>")
		return err
	}

	return a.guard(&a.adminBusy, func() error {
		if err := a.admin.SetBalance(ctx, id, value); err != nil {
			if a.dropped() {
				return errDropped
			}
			a.fail(err)
			return err
		}
		return a.balanceUpdated(ctx, value)
	})
}

// AddEnergy handles "addenergy <id> <delta>". The target's current balance
// comes from the loaded user list.
func (a *App) AddEnergy(ctx context.Context, args []string) error {
	id, delta, err := parseTwoInts(args)
	if err != nil {
		printlnFn("Использование: addenergy <id> <прибавка>")
		return err
	}

	target, ok := a.findUser(id)
	if !ok {
		_ = a.refreshUsers(ctx, false)
		target, ok = a.findUser(id)
	}
	if !ok {
		a.notify(common.TitleError, msgUserNotFound)
		return fmt.Errorf("user %d: not in list", id)
	}

	return a.guard(&a.adminBusy, func() error {
		next, err := a.admin.AddEnergy(ctx, target, delta)
		if err != nil {
			if a.dropped() {
				return errDropped
			}
			a.fail(err)
			return err
		}
		return a.balanceUpdated(ctx, next)
	})
}

// balanceUpdated runs after the server acknowledged a balance change: the
// list is refreshed only now, then the header.
func (a *App) balanceUpdated(ctx context.Context, value int64) error {
	if a.dropped() {
		return errDropped
	}
	a.notify(common.TitleBalanceUpdated, fmt.Sprintf("Новый баланс: %d энергии", value))
	_ = a.refreshUsers(ctx, true)
	a.render()
	return nil
}

func (a *App) findUser(id int64) (models.User, bool) {
	for _, u := range a.cachedUsers() {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func parseTwoInts(args []string) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, errUsage
	}
	x, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errUsage, err)
	}
	y, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errUsage, err)
	}
	return x, y, nil
}
