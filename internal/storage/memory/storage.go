package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	matches    map[matchKey]*model.Match
	owner      model.Identity
	admin      model.Identity
	blacklist  map[model.Identity]bool
	registered map[model.Identity]*model.RegisteredIdentity
}

type matchKey struct {
	host     model.Identity
	opponent model.Identity
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches:    make(map[matchKey]*model.Match),
		blacklist:  make(map[model.Identity]bool),
		registered: make(map[model.Identity]*model.RegisteredIdentity),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := matchKey{host: match.Host, opponent: match.Opponent}
	s.matches[key] = match
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, host, opponent model.Identity) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[matchKey{host: host, opponent: opponent}]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, host, opponent model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, matchKey{host: host, opponent: opponent})
	return nil
}

func (s *Storage) CompleteAndRemoveMatch(ctx context.Context, host, opponent model.Identity, oppMove model.Move, result model.Result) (*model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := matchKey{host: host, opponent: opponent}
	match, ok := s.matches[key]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	match.OppMove = &oppMove
	match.Result = &result
	delete(s.matches, key)

	return match, nil
}

func (s *Storage) MatchesByHost(ctx context.Context, host model.Identity) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*model.Match, 0)
	for key, match := range s.matches {
		if key.host == host {
			matches = append(matches, match)
		}
	}
	sortMatches(matches)
	return matches, nil
}

func (s *Storage) Matches(ctx context.Context) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*model.Match, 0, len(s.matches))
	for _, match := range s.matches {
		matches = append(matches, match)
	}
	sortMatches(matches)
	return matches, nil
}

// sortMatches orders matches ascending by (host, opponent)
func sortMatches(matches []*model.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Host != matches[j].Host {
			return matches[i].Host < matches[j].Host
		}
		return matches[i].Opponent < matches[j].Opponent
	})
}

// Contract state operations

func (s *Storage) SetOwner(ctx context.Context, owner model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = owner
	return nil
}

func (s *Storage) GetOwner(ctx context.Context) (model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, nil
}

func (s *Storage) SetAdmin(ctx context.Context, admin model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
	return nil
}

func (s *Storage) GetAdmin(ctx context.Context) (model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin, nil
}

// Blacklist operations

func (s *Storage) AddToBlacklist(ctx context.Context, addr model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[addr] = true
	return nil
}

func (s *Storage) RemoveFromBlacklist(ctx context.Context, addr model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blacklist, addr)
	return nil
}

func (s *Storage) IsBlacklisted(ctx context.Context, addr model.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blacklist[addr], nil
}

func (s *Storage) Blacklist(ctx context.Context) ([]model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addrs := make([]model.Identity, 0, len(s.blacklist))
	for addr := range s.blacklist {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs, nil
}

// Registered identity operations

func (s *Storage) SaveRegisteredIdentity(ctx context.Context, ri *model.RegisteredIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered[ri.Address] = ri
	return nil
}

func (s *Storage) GetRegisteredIdentity(ctx context.Context, addr model.Identity) (*model.RegisteredIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ri, ok := s.registered[addr]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	return ri, nil
}
