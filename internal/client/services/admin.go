package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sitegen/internal/client/client"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/session"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
)

// AdminService lists accounts and overwrites their balances on behalf of the
// session user. The backend decides whether that user is an admin.
//
// Balance updates are absolute. AddEnergy reads the balance it was handed
// and writes balance+delta, so two concurrent edits of the same account
// resolve as last write wins.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	SetBalance(ctx context.Context, userID, newBalance int64) error
	AddEnergy(ctx context.Context, target models.User, delta int64) (int64, error)
}

type adminService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewAdminService(c client.Client, store *session.Store, logger logging.Logger) AdminService {
	return &adminService{client: c, store: store, logger: logger}
}

func (a *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	me, ok := a.store.Current()
	if !ok {
		return nil, &AdminError{Message: common.MsgNoSession, Err: ErrNotLoggedIn}
	}

	users, err := a.client.ListUsers(ctx, me.Email)
	if err != nil {
		a.logger.Warn(ctx, "listing users failed", "error", err)
		return nil, &AdminError{Message: remoteMessage(err, common.MsgGeneric), Err: err}
	}
	return users, nil
}

func (a *adminService) SetBalance(ctx context.Context, userID, newBalance int64) error {
	switch {
	case userID <= 0:
		return &ValidationError{Field: "user_id", Message: fmt.Sprintf("invalid user id %d", userID)}
	case newBalance < 0:
		return &ValidationError{Field: "new_balance", Message: "баланс не может быть отрицательным"}
	}

	me, ok := a.store.Current()
	if !ok {
		return &AdminError{Message: common.MsgNoSession, Err: ErrNotLoggedIn}
	}

	updated, err := a.client.UpdateBalance(ctx, me.Email, models.NewUpdateBalanceRequest(userID, newBalance))
	if err != nil {
		a.logger.Warn(ctx, "balance update failed", "user_id", userID, "error", err)
		return &AdminError{Message: remoteMessage(err, common.MsgBalanceNotUpdated), Err: err}
	}

	a.logger.Info(ctx, "balance updated", "user_id", userID, "new_balance", newBalance)

	if userID != me.ID {
		return nil
	}

	applied := newBalance
	if updated != nil && updated.ID == me.ID {
		applied = updated.EnergyBalance
	}
	err = a.store.Update(ctx, func(u models.User) models.User { return u.WithBalance(applied) })
	if err != nil {
		a.logger.Error(ctx, "refreshing own balance failed", "error", err)
	}
	return nil
}

// AddEnergy sets target's balance to target.EnergyBalance+delta and returns
// the value sent.
func (a *adminService) AddEnergy(ctx context.Context, target models.User, delta int64) (int64, error) {
	next := target.EnergyBalance + delta
	if next < 0 {
		return 0, &ValidationError{Field: "delta", Message: "баланс не может быть отрицательным"}
	}
	if err := a.SetBalance(ctx, target.ID, next); err != nil {
		return 0, err
	}
	return next, nil
}
