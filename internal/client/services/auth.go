package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sitegen/internal/client/client"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/session"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
)

// AuthService defines authentication operations for the client.
//
// Authenticate logs in or registers (per mode) and, on success, makes the
// returned user the current session. Logout forgets the session.
type AuthService interface {
	Authenticate(ctx context.Context, mode models.AuthAction, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, logger: logger}
}

func (a *authService) Authenticate(ctx context.Context, mode models.AuthAction, email string, password []byte) (*models.User, error) {
	if !mode.Valid() {
		return nil, &ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %q", mode)}
	}
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, ErrEmptyCredentials
	}

	u, err := a.client.Authenticate(ctx, models.AuthRequest{Action: mode, Email: email, Password: string(password)})
	if err != nil {
		a.logger.Warn(ctx, "authentication failed", "mode", mode, "error", err)
		return nil, &AuthError{Message: remoteMessage(err, common.MsgGeneric), Err: err}
	}
	if err := u.Validate(); err != nil {
		return nil, &AuthError{Message: common.MsgGeneric, Err: err}
	}

	if err := a.store.Save(ctx, u); err != nil {
		a.logger.Error(ctx, "saving session failed", "error", err)
		return nil, &AuthError{Message: common.MsgGeneric, Err: err}
	}

	a.logger.Info(ctx, "authenticated", "mode", mode, "user_id", u.ID, "admin", u.IsAdmin)
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "clearing session snapshot failed", "error", err)
		return err
	}
	return nil
}
