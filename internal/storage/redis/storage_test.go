package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpsduel-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now().UTC())

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "alice", "bob")
	s.Require().NoError(err)
	s.Equal(match.Host, retrieved.Host)
	s.Equal(match.Opponent, retrieved.Opponent)
	s.Equal(model.MoveRock, retrieved.HostMove)
	s.Nil(retrieved.OppMove)
	s.Nil(retrieved.Result)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetMatchWrongOpponent() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now().UTC())
	_ = s.storage.SaveMatch(s.ctx, match)

	_, err := s.storage.GetMatch(s.ctx, "alice", "carol")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestMatchHasNoTTL() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now().UTC())
	_ = s.storage.SaveMatch(s.ctx, match)

	// Open matches persist until resolved or overwritten
	ttl := s.mini.TTL(matchKey("alice", "bob"))
	s.Equal(time.Duration(0), ttl)
}

func (s *StorageSuite) TestSaveMatchOverwrites() {
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "bob", model.MoveRock, time.Now().UTC()))
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "bob", model.MovePaper, time.Now().UTC()))

	retrieved, err := s.storage.GetMatch(s.ctx, "alice", "bob")
	s.Require().NoError(err)
	s.Equal(model.MovePaper, retrieved.HostMove)

	// The index holds one member for the pair
	matches, err := s.storage.Matches(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *StorageSuite) TestDeleteMatch() {
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "bob", model.MoveRock, time.Now().UTC()))

	err := s.storage.DeleteMatch(s.ctx, "alice", "bob")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)

	// The index entry is removed with the record
	matches, err := s.storage.Matches(s.ctx)
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *StorageSuite) TestCompleteAndRemoveMatch() {
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "bob", model.MoveRock, time.Now().UTC()))

	completed, err := s.storage.CompleteAndRemoveMatch(s.ctx, "alice", "bob", model.MoveScissors, model.ResultHostWins)
	s.Require().NoError(err)
	s.Require().NotNil(completed.OppMove)
	s.Equal(model.MoveScissors, *completed.OppMove)
	s.Require().NotNil(completed.Result)
	s.Equal(model.ResultHostWins, *completed.Result)

	_, err = s.storage.GetMatch(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestCompleteAndRemoveMatchNotFound() {
	_, err := s.storage.CompleteAndRemoveMatch(s.ctx, "alice", "bob", model.MoveRock, model.ResultTie)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestMatchesByHostOrdering() {
	now := time.Now().UTC()
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "dave", model.MoveRock, now))
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "bob", model.MovePaper, now))
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("carol", "bob", model.MoveScissors, now))

	matches, err := s.storage.MatchesByHost(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(model.Identity("bob"), matches[0].Opponent)
	s.Equal(model.Identity("dave"), matches[1].Opponent)
}

func (s *StorageSuite) TestMatchesByHostEmpty() {
	matches, err := s.storage.MatchesByHost(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *StorageSuite) TestMatchesOrdering() {
	now := time.Now().UTC()
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("carol", "bob", model.MoveRock, now))
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "dave", model.MovePaper, now))
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("alice", "bob", model.MoveScissors, now))

	matches, err := s.storage.Matches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 3)
	s.Equal(model.Identity("alice"), matches[0].Host)
	s.Equal(model.Identity("bob"), matches[0].Opponent)
	s.Equal(model.Identity("alice"), matches[1].Host)
	s.Equal(model.Identity("dave"), matches[1].Opponent)
	s.Equal(model.Identity("carol"), matches[2].Host)
}

func (s *StorageSuite) TestMatchesOrderingWithPrefixHosts() {
	// "user1" is a prefix of "user12"; ':' sorts above digits, so raw
	// index member order would put user12 first
	now := time.Now().UTC()
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("user12", "alice", model.MoveRock, now))
	_ = s.storage.SaveMatch(s.ctx, model.NewMatch("user1", "zed", model.MovePaper, now))

	matches, err := s.storage.Matches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(model.Identity("user1"), matches[0].Host)
	s.Equal(model.Identity("user12"), matches[1].Host)

	// The host scans stay exact despite the shared prefix
	byHost, err := s.storage.MatchesByHost(s.ctx, "user1")
	s.Require().NoError(err)
	s.Require().Len(byHost, 1)
	s.Equal(model.Identity("zed"), byHost[0].Opponent)
}

// Contract state tests

func (s *StorageSuite) TestOwnerUnsetByDefault() {
	owner, err := s.storage.GetOwner(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Identity(""), owner)
}

func (s *StorageSuite) TestSetAndGetOwner() {
	err := s.storage.SetOwner(s.ctx, "creator")
	s.Require().NoError(err)

	owner, err := s.storage.GetOwner(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Identity("creator"), owner)
}

func (s *StorageSuite) TestSetAndGetAdmin() {
	admin, err := s.storage.GetAdmin(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Identity(""), admin)

	err = s.storage.SetAdmin(s.ctx, "alice")
	s.Require().NoError(err)

	admin, err = s.storage.GetAdmin(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Identity("alice"), admin)
}

// Blacklist tests

func (s *StorageSuite) TestBlacklist() {
	blacklisted, err := s.storage.IsBlacklisted(s.ctx, "mallory")
	s.Require().NoError(err)
	s.False(blacklisted)

	err = s.storage.AddToBlacklist(s.ctx, "mallory")
	s.Require().NoError(err)

	blacklisted, err = s.storage.IsBlacklisted(s.ctx, "mallory")
	s.Require().NoError(err)
	s.True(blacklisted)

	err = s.storage.RemoveFromBlacklist(s.ctx, "mallory")
	s.Require().NoError(err)

	blacklisted, err = s.storage.IsBlacklisted(s.ctx, "mallory")
	s.Require().NoError(err)
	s.False(blacklisted)
}

func (s *StorageSuite) TestBlacklistOrdering() {
	_ = s.storage.AddToBlacklist(s.ctx, "zed")
	_ = s.storage.AddToBlacklist(s.ctx, "mallory")
	_ = s.storage.AddToBlacklist(s.ctx, "eve")
	_ = s.storage.AddToBlacklist(s.ctx, "eve") // idempotent

	addrs, err := s.storage.Blacklist(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Identity{"eve", "mallory", "zed"}, addrs)
}

// Registered identity tests

func (s *StorageSuite) TestSaveAndGetRegisteredIdentity() {
	ri := &model.RegisteredIdentity{
		Address:        "alice",
		PassphraseHash: "hash123",
		CreatedAt:      time.Now().UTC(),
	}

	err := s.storage.SaveRegisteredIdentity(s.ctx, ri)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredIdentity(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(ri.PassphraseHash, retrieved.PassphraseHash)
}

func (s *StorageSuite) TestGetRegisteredIdentityNotFound() {
	_, err := s.storage.GetRegisteredIdentity(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}
