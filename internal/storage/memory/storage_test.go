package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpsduel-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now())

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "alice", "bob")
	s.Require().NoError(err)
	s.Equal(match.Host, retrieved.Host)
	s.Equal(match.Opponent, retrieved.Opponent)
	s.Equal(model.MoveRock, retrieved.HostMove)
	s.Nil(retrieved.OppMove)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetMatchWrongOpponent() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	// The record is keyed by the full (host, opponent) pair
	_, err := s.storage.GetMatch(s.ctx, "alice", "carol")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveMatchOverwrites() {
	first := model.NewMatch("alice", "bob", model.MoveRock, time.Now())
	second := model.NewMatch("alice", "bob", model.MovePaper, time.Now())

	_ = s.storage.SaveMatch(s.ctx, first)
	_ = s.storage.SaveMatch(s.ctx, second)

	retrieved, err := s.storage.GetMatch(s.ctx, "alice", "bob")
	s.Require().NoError(err)
	s.Equal(model.MovePaper, retrieved.HostMove)

	matches, err := s.storage.Matches(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *StorageSuite) TestDeleteMatch() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	err := s.storage.DeleteMatch(s.ctx, "alice", "bob")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestCompleteAndRemoveMatch() {
	match := model.NewMatch("alice", "bob", model.MoveRock, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	completed, err := s.storage.CompleteAndRemoveMatch(s.ctx, "alice", "bob", model.MoveScissors, model.ResultHostWins)
	s.Require().NoError(err)
	s.Require().NotNil(completed.OppMove)
	s.Equal(model.MoveScissors, *completed.OppMove)
	s.Require().NotNil(completed.Result)
	s.Equal(model.ResultHostWins, *completed.Result)

	// The resolved record is gone
	_, err = s.storage.GetMatch(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestCompleteAndRemoveMatchNotFound() {
	_, err := s.storage.CompleteAndRemoveMatch(s.ctx, "alice", "bob", model.MoveRock, model.ResultTie)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestMatchesByHostOrdering() {
	now := time.Now()
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
	now := time.Now()
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

func (s *StorageSuite) TestBlacklistIdempotent() {
	_ = s.storage.AddToBlacklist(s.ctx, "mallory")
	_ = s.storage.AddToBlacklist(s.ctx, "mallory")

	addrs, err := s.storage.Blacklist(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Identity{"mallory"}, addrs)

	// Removing twice is fine too
	s.NoError(s.storage.RemoveFromBlacklist(s.ctx, "mallory"))
	s.NoError(s.storage.RemoveFromBlacklist(s.ctx, "mallory"))
}

func (s *StorageSuite) TestBlacklistOrdering() {
	_ = s.storage.AddToBlacklist(s.ctx, "zed")
	_ = s.storage.AddToBlacklist(s.ctx, "mallory")
	_ = s.storage.AddToBlacklist(s.ctx, "eve")

	addrs, err := s.storage.Blacklist(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Identity{"eve", "mallory", "zed"}, addrs)
}

// Registered identity tests

func (s *StorageSuite) TestSaveAndGetRegisteredIdentity() {
	ri := &model.RegisteredIdentity{
		Address:        "alice",
		PassphraseHash: "hash123",
		CreatedAt:      time.Now(),
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
