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

// GenerationService turns a prompt into site markup for the session user.
type GenerationService interface {
	Generate(ctx context.Context, prompt string) (*models.Generation, error)
	CanGenerate(balance int64) bool
	Cost() int64
}

type generationService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
	cost   int64
}

// NewGenerationService returns a service charging cost energy per request.
// A non-positive cost falls back to common.DefaultGenerationCost.
func NewGenerationService(c client.Client, store *session.Store, logger logging.Logger, cost int64) GenerationService {
	if cost <= 0 {
		cost = common.DefaultGenerationCost
	}
	return &generationService{client: c, store: store, logger: logger, cost: cost}
}

func (g *generationService) Cost() int64 { return g.cost }

func (g *generationService) CanGenerate(balance int64) bool {
	return balance >= g.cost
}

// Generate sends prompt for the current user. On success the session
// balance becomes the energy_remaining reported by the endpoint.
func (g *generationService) Generate(ctx context.Context, prompt string) (*models.Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	me, ok := g.store.Current()
	if !ok {
		return nil, &GenerationError{Message: common.MsgNoSession, Err: ErrNotLoggedIn}
	}

	res, err := g.client.Generate(ctx, models.GenerateRequest{UserID: me.ID, Prompt: prompt})
	if err != nil {
		g.logger.Warn(ctx, "generation failed", "user_id", me.ID, "error", err)
		if isInsufficientEnergy(err) {
			return nil, &GenerationError{
				Message: common.MsgNotEnoughEnergy,
				Err:     fmt.Errorf("%w: %w", ErrInsufficientEnergy, err),
			}
		}
		return nil, &GenerationError{Message: remoteMessage(err, common.MsgGenerationFailed), Err: err}
	}

	g.logger.Info(ctx, "generation finished",
		"user_id", me.ID, "energy_used", res.EnergyUsed, "energy_remaining", res.EnergyRemaining)

	err = g.store.Update(ctx, func(u models.User) models.User { return u.WithBalance(res.EnergyRemaining) })
	if err != nil {
		g.logger.Error(ctx, "refreshing balance failed", "error", err)
	}
	return res, nil
}
