package client

import (
	"context"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
)

// Client is the transport contract of the three backend functions.
type Client interface {
	Authenticate(ctx context.Context, req models.AuthRequest) (*models.User, error)
	ListUsers(ctx context.Context, adminEmail string) ([]models.User, error)
	// UpdateBalance returns the updated record when the endpoint echoes it,
	// or nil when it only acknowledges.
	UpdateBalance(ctx context.Context, adminEmail string, req models.UpdateBalanceRequest) (*models.User, error)
	Generate(ctx context.Context, req models.GenerateRequest) (*models.Generation, error)
}
