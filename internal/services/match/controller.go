package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/rpsduel-go/internal/dependencies/clock"
	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/services/admin"
	"github.com/mcoot/rpsduel-go/internal/storage"
)

// Controller manages the match lifecycle: creation, response and deletion
// of match records, sequencing the authorization gate, the outcome
// resolver and the store mutations.
type Controller struct {
	storage      storage.Storage
	adminService *admin.Service
	clock        clock.Clock
	logger       *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	adminService *admin.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		adminService: adminService,
		clock:        clock,
		logger:       logger,
	}
}

// Start opens a match hosted by host against opponent, committing the
// host's move. Fails with ErrAddressBlacklisted if the host is blacklisted.
// Starting a second match for the same (host, opponent) pair replaces the
// first. There is no self-play guard: host may equal opponent.
func (c *Controller) Start(ctx context.Context, host, opponent model.Identity, hostMove model.Move) (*model.Match, error) {
	allowed, err := c.adminService.CanStartMatch(ctx, host)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", model.ErrAddressBlacklisted, host)
	}

	m := model.NewMatch(host, opponent, hostMove, c.clock.Now())

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		c.logger.Error("failed to save match",
			slog.String("host", string(host)),
			slog.String("opponent", string(opponent)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match started",
		slog.String("host", string(host)),
		slog.String("opponent", string(opponent)),
	)

	return m, nil
}

// Respond plays the opponent's move against the open match keyed by
// (host, opponent), resolves the outcome, and removes the record. The
// caller supplies its own identity as opponent; responding to a match
// recorded against a different opponent surfaces as ErrGameNotFound.
func (c *Controller) Respond(ctx context.Context, host, opponent model.Identity, oppMove model.Move) (model.Result, error) {
	m, err := c.storage.GetMatch(ctx, host, opponent)
	if err != nil {
		return "", err
	}

	// Resolve from the moves alone; the fetched record stays untouched
	// until the store commits both fields together
	result := model.Resolve(m.HostMove, oppMove)

	if _, err := c.storage.CompleteAndRemoveMatch(ctx, host, opponent, oppMove, result); err != nil {
		return "", err
	}

	c.logger.Info("match resolved",
		slog.String("host", string(host)),
		slog.String("opponent", string(opponent)),
		slog.String("result", result.Display()),
	)

	return result, nil
}

// Get retrieves the open match for the exact (host, opponent) key
func (c *Controller) Get(ctx context.Context, host, opponent model.Identity) (*model.Match, error) {
	return c.storage.GetMatch(ctx, host, opponent)
}

// MatchesByHost returns the open matches hosted by host, ascending by
// opponent identity
func (c *Controller) MatchesByHost(ctx context.Context, host model.Identity) ([]*model.Match, error) {
	return c.storage.MatchesByHost(ctx, host)
}

// MatchesByOpponent returns the open matches targeting opponent across all
// hosts, ascending by (host, opponent). Opponent is not an independent
// index, so this is a full scan with a post-filter.
func (c *Controller) MatchesByOpponent(ctx context.Context, opponent model.Identity) ([]*model.Match, error) {
	all, err := c.storage.Matches(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0)
	for _, m := range all {
		if m.Opponent == opponent {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Start(ctx context.Context, host, opponent model.Identity, hostMove model.Move) (*model.Match, error)
	Respond(ctx context.Context, host, opponent model.Identity, oppMove model.Move) (model.Result, error)
	Get(ctx context.Context, host, opponent model.Identity) (*model.Match, error)
	MatchesByHost(ctx context.Context, host model.Identity) ([]*model.Match, error)
	MatchesByOpponent(ctx context.Context, opponent model.Identity) ([]*model.Match, error)
}

var _ ControllerInterface = (*Controller)(nil)
