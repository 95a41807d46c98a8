package admin

import (
	"context"
	"log/slog"

	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/storage"
)

// Service is the authorization gate: it decides who may start matches and
// who may perform admin-only actions, and owns the blacklist mutations.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new admin Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Bootstrap records the initializing identity as owner and optionally seeds
// the admin. Both are set only if currently unset, so restarting against a
// populated store is a no-op.
func (s *Service) Bootstrap(ctx context.Context, owner, admin model.Identity) error {
	currentOwner, err := s.storage.GetOwner(ctx)
	if err != nil {
		return err
	}
	if currentOwner == "" && owner != "" {
		if err := s.storage.SetOwner(ctx, owner); err != nil {
			return err
		}
		s.logger.Info("contract owner set", slog.String("owner", string(owner)))
	}

	currentAdmin, err := s.storage.GetAdmin(ctx)
	if err != nil {
		return err
	}
	if currentAdmin == "" && admin != "" {
		if err := s.storage.SetAdmin(ctx, admin); err != nil {
			return err
		}
		s.logger.Info("admin set", slog.String("admin", string(admin)))
	}

	return nil
}

// CanStartMatch reports whether the actor may start a new match.
// False iff the actor is currently blacklisted.
func (s *Service) CanStartMatch(ctx context.Context, actor model.Identity) (bool, error) {
	blacklisted, err := s.storage.IsBlacklisted(ctx, actor)
	if err != nil {
		return false, err
	}
	return !blacklisted, nil
}

// IsAdmin reports whether the actor is the current admin.
// Always false while no admin is set.
func (s *Service) IsAdmin(ctx context.Context, actor model.Identity) (bool, error) {
	admin, err := s.storage.GetAdmin(ctx)
	if err != nil {
		return false, err
	}
	return admin != "" && admin == actor, nil
}

// TransferAdmin replaces the admin with newAdmin. The actor must be the
// current admin; while no admin is set the first claim is unguarded.
func (s *Service) TransferAdmin(ctx context.Context, actor, newAdmin model.Identity) error {
	admin, err := s.storage.GetAdmin(ctx)
	if err != nil {
		return err
	}
	if admin != "" && admin != actor {
		return model.ErrUnauthorized
	}

	if err := s.storage.SetAdmin(ctx, newAdmin); err != nil {
		return err
	}

	s.logger.Info("admin transferred",
		slog.String("actor", string(actor)),
		slog.String("new_admin", string(newAdmin)),
	)
	return nil
}

// AddToBlacklist adds target to the blacklist. Admin only, idempotent.
// Membership is checked at match-start time, so already-open matches
// involving target are unaffected.
func (s *Service) AddToBlacklist(ctx context.Context, actor, target model.Identity) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}

	if err := s.storage.AddToBlacklist(ctx, target); err != nil {
		return err
	}

	s.logger.Info("address blacklisted",
		slog.String("actor", string(actor)),
		slog.String("target", string(target)),
	)
	return nil
}

// RemoveFromBlacklist removes target from the blacklist. Admin only, idempotent.
func (s *Service) RemoveFromBlacklist(ctx context.Context, actor, target model.Identity) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}

	if err := s.storage.RemoveFromBlacklist(ctx, target); err != nil {
		return err
	}

	s.logger.Info("address removed from blacklist",
		slog.String("actor", string(actor)),
		slog.String("target", string(target)),
	)
	return nil
}

// Admin returns the current admin, empty if unset
func (s *Service) Admin(ctx context.Context) (model.Identity, error) {
	return s.storage.GetAdmin(ctx)
}

// Owner returns the initializing identity recorded at bootstrap
func (s *Service) Owner(ctx context.Context) (model.Identity, error) {
	return s.storage.GetOwner(ctx)
}

// Blacklist returns the current denylist in ascending order
func (s *Service) Blacklist(ctx context.Context) ([]model.Identity, error) {
	return s.storage.Blacklist(ctx)
}

// requireAdmin fails with ErrUnauthorized unless actor is the current admin
func (s *Service) requireAdmin(ctx context.Context, actor model.Identity) error {
	isAdmin, err := s.IsAdmin(ctx, actor)
	if err != nil {
		return err
	}
	if !isAdmin {
		return model.ErrUnauthorized
	}
	return nil
}
