package storage

import (
	"context"

	"github.com/mcoot/rpsduel-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Match operations.
	// Matches are keyed by the ordered (host, opponent) pair; scans return
	// records in ascending key order.
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, host, opponent model.Identity) (*model.Match, error)
	DeleteMatch(ctx context.Context, host, opponent model.Identity) error
	// CompleteAndRemoveMatch sets the opponent move and result on the stored
	// record and deletes it in one logical step, returning the final record.
	// Fails with model.ErrGameNotFound if the key does not exist.
	CompleteAndRemoveMatch(ctx context.Context, host, opponent model.Identity, oppMove model.Move, result model.Result) (*model.Match, error)
	MatchesByHost(ctx context.Context, host model.Identity) ([]*model.Match, error)
	Matches(ctx context.Context) ([]*model.Match, error)

	// Contract state operations.
	// Owner is set once at bootstrap; admin may be absent (empty Identity).
	SetOwner(ctx context.Context, owner model.Identity) error
	GetOwner(ctx context.Context) (model.Identity, error)
	SetAdmin(ctx context.Context, admin model.Identity) error
	GetAdmin(ctx context.Context) (model.Identity, error)

	// Blacklist operations (idempotent add/remove)
	AddToBlacklist(ctx context.Context, addr model.Identity) error
	RemoveFromBlacklist(ctx context.Context, addr model.Identity) error
	IsBlacklisted(ctx context.Context, addr model.Identity) (bool, error)
	Blacklist(ctx context.Context) ([]model.Identity, error)

	// Registered identity operations
	SaveRegisteredIdentity(ctx context.Context, ri *model.RegisteredIdentity) error
	GetRegisteredIdentity(ctx context.Context, addr model.Identity) (*model.RegisteredIdentity, error)
}
