package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/rpsduel-go/internal/dependencies/clock"
	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrIdentityRegistered = errors.New("identity is registered; log in instead")
)

// Session binds a bearer token to an acting identity
type Session struct {
	Token     string
	Address   model.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service manages identity sessions. A caller claims an unregistered
// identity freely, or registers/logs into one protected by a passphrase;
// the session's identity is the implicit actor for match and admin
// operations.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// ClaimIdentity creates a session for an unregistered identity.
// Registered identities must log in with their passphrase.
func (s *Service) ClaimIdentity(ctx context.Context, address string) (*Session, error) {
	addr, err := model.ParseIdentity(address)
	if err != nil {
		return nil, err
	}

	_, err = s.storage.GetRegisteredIdentity(ctx, addr)
	if err == nil {
		return nil, ErrIdentityRegistered
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, err
	}

	return s.createSession(addr), nil
}

// Register protects an identity with a passphrase and creates a session
func (s *Service) Register(ctx context.Context, address, passphrase string) (*Session, error) {
	addr, err := model.ParseIdentity(address)
	if err != nil {
		return nil, err
	}

	_, err = s.storage.GetRegisteredIdentity(ctx, addr)
	if err == nil {
		return nil, ErrIdentityRegistered
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ri := &model.RegisteredIdentity{
		Address:        addr,
		PassphraseHash: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.SaveRegisteredIdentity(ctx, ri); err != nil {
		return nil, err
	}

	s.logger.Info("identity registered", slog.String("address", string(addr)))

	return s.createSession(addr), nil
}

// Login authenticates a registered identity and creates a session
func (s *Service) Login(ctx context.Context, address, passphrase string) (*Session, error) {
	addr, err := model.ParseIdentity(address)
	if err != nil {
		return nil, err
	}

	ri, err := s.storage.GetRegisteredIdentity(ctx, addr)
	if err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ri.PassphraseHash), []byte(passphrase)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(addr), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// createSession creates a new session bound to an identity
func (s *Service) createSession(addr model.Identity) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Address:   addr,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// generateToken generates a random bearer token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
