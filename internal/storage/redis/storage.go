package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(match.Host, match.Opponent), data, 0)
	pipe.ZAdd(ctx, matchIndexKey(), redis.Z{Score: 0, Member: matchMember(match.Host, match.Opponent)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, host, opponent model.Identity) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(host, opponent)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, host, opponent model.Identity) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(host, opponent))
	pipe.ZRem(ctx, matchIndexKey(), matchMember(host, opponent))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) CompleteAndRemoveMatch(ctx context.Context, host, opponent model.Identity, oppMove model.Move, result model.Result) (*model.Match, error) {
	match, err := s.GetMatch(ctx, host, opponent)
	if err != nil {
		return nil, err
	}

	match.OppMove = &oppMove
	match.Result = &result

	// The completed record is deleted immediately, so the field update and
	// the removal collapse into one delete
	if err := s.DeleteMatch(ctx, host, opponent); err != nil {
		return nil, err
	}

	return match, nil
}

func (s *Storage) MatchesByHost(ctx context.Context, host model.Identity) ([]*model.Match, error) {
	// Lex range over the index: all members with the host prefix
	members, err := s.client.ZRangeByLex(ctx, matchIndexKey(), &redis.ZRangeBy{
		Min: "[" + string(host) + ":",
		Max: "[" + string(host) + ":\xff",
	}).Result()
	if err != nil {
		return nil, err
	}

	return s.matchesForMembers(ctx, members)
}

func (s *Storage) Matches(ctx context.Context) ([]*model.Match, error) {
	members, err := s.client.ZRangeByLex(ctx, matchIndexKey(), &redis.ZRangeBy{
		Min: "-",
		Max: "+",
	}).Result()
	if err != nil {
		return nil, err
	}

	return s.matchesForMembers(ctx, members)
}

// matchesForMembers fetches the match records behind index members and
// returns them ascending by (host, opponent), skipping entries whose
// record vanished. Index member order is not trusted: ':' sorts above
// digits and '-', so lex order over "host:opponent" members diverges
// from key order when one host is a prefix of another.
func (s *Storage) matchesForMembers(ctx context.Context, members []string) ([]*model.Match, error) {
	if len(members) == 0 {
		return []*model.Match{}, nil
	}

	keys := make([]string, 0, len(members))
	for _, member := range members {
		host, opponent, ok := splitMatchMember(member)
		if !ok {
			continue
		}
		keys = append(keys, matchKey(host, opponent))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var match model.Match
		if err := json.Unmarshal([]byte(val.(string)), &match); err != nil {
			continue // Skip invalid data
		}
		matches = append(matches, &match)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Host != matches[j].Host {
			return matches[i].Host < matches[j].Host
		}
		return matches[i].Opponent < matches[j].Opponent
	})

	return matches, nil
}

// Contract state operations

func (s *Storage) SetOwner(ctx context.Context, owner model.Identity) error {
	return s.client.Set(ctx, ownerKey(), string(owner), 0).Err()
}

func (s *Storage) GetOwner(ctx context.Context) (model.Identity, error) {
	owner, err := s.client.Get(ctx, ownerKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return model.Identity(owner), nil
}

func (s *Storage) SetAdmin(ctx context.Context, admin model.Identity) error {
	return s.client.Set(ctx, adminKey(), string(admin), 0).Err()
}

func (s *Storage) GetAdmin(ctx context.Context) (model.Identity, error) {
	admin, err := s.client.Get(ctx, adminKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return model.Identity(admin), nil
}

// Blacklist operations

func (s *Storage) AddToBlacklist(ctx context.Context, addr model.Identity) error {
	return s.client.SAdd(ctx, blacklistKey(), string(addr)).Err()
}

func (s *Storage) RemoveFromBlacklist(ctx context.Context, addr model.Identity) error {
	return s.client.SRem(ctx, blacklistKey(), string(addr)).Err()
}

func (s *Storage) IsBlacklisted(ctx context.Context, addr model.Identity) (bool, error) {
	return s.client.SIsMember(ctx, blacklistKey(), string(addr)).Result()
}

func (s *Storage) Blacklist(ctx context.Context) ([]model.Identity, error) {
	members, err := s.client.SMembers(ctx, blacklistKey()).Result()
	if err != nil {
		return nil, err
	}

	sort.Strings(members)
	addrs := make([]model.Identity, 0, len(members))
	for _, member := range members {
		addrs = append(addrs, model.Identity(member))
	}
	return addrs, nil
}

// Registered identity operations

func (s *Storage) SaveRegisteredIdentity(ctx context.Context, ri *model.RegisteredIdentity) error {
	data, err := json.Marshal(ri)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, registeredIdentityKey(ri.Address), data, 0).Err()
}

func (s *Storage) GetRegisteredIdentity(ctx context.Context, addr model.Identity) (*model.RegisteredIdentity, error) {
	data, err := s.client.Get(ctx, registeredIdentityKey(addr)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	var ri model.RegisteredIdentity
	if err := json.Unmarshal(data, &ri); err != nil {
		return nil, err
	}
	return &ri, nil
}
