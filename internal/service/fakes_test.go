package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/MKhiriev/gsc-identity/models"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 11, 14, 9, 30, 0, 0, time.UTC)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:   "sign-key",
		TokenIssuer:    "gsc-identity-test",
		TokenDuration:  24 * time.Hour,
		HashKey:        "hash-key",
		PlayerIDPrefix: "GGF-GSC",
		ResetTokenTTL:  time.Hour,
		BcryptCost:     bcrypt.MinCost,
		Version:        "test",
	}
}

// memoryStore is an in-memory credential store with the same atomicity
// as the PostgreSQL repositories: every method holds the lock for its
// whole composite change.
type memoryStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]models.Identity
	sequences map[string]int64
	tokens    map[string]models.ResetToken
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     make(map[int64]models.Identity),
		sequences: make(map[string]int64),
		tokens:    make(map[string]models.ResetToken),
	}
}

func (s *memoryStore) CreateIdentity(ctx context.Context, identity models.Identity, playerID string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		switch {
		case identity.Email != "" && u.Email == identity.Email:
			return models.Identity{}, store.ErrEmailAlreadyExists
		case identity.Phone != "" && u.Phone == identity.Phone:
			return models.Identity{}, store.ErrPhoneAlreadyExists
		case u.PlayerID == playerID:
			return models.Identity{}, store.ErrPlayerIDAlreadyExists
		}
	}

	s.nextID++
	identity.UserID = s.nextID
	identity.PlayerID = playerID
	s.users[identity.UserID] = identity
	return identity, nil
}

func (s *memoryStore) FindByLogin(ctx context.Context, login string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if (u.Email != "" && u.Email == login) || (u.Phone != "" && u.Phone == login) {
			return u, nil
		}
	}
	return models.Identity{}, store.ErrNoUserWasFound
}

func (s *memoryStore) FindByPlayerID(ctx context.Context, playerID string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.PlayerID == playerID {
			return u, nil
		}
	}
	return models.Identity{}, store.ErrNoUserWasFound
}

func (s *memoryStore) FindByEmail(ctx context.Context, email string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email != "" && u.Email == email {
			return u, nil
		}
	}
	return models.Identity{}, store.ErrNoUserWasFound
}

func (s *memoryStore) FindLoginConflict(ctx context.Context, email, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if email != "" && u.Email == email {
			return "email", nil
		}
		if phone != "" && u.Phone == phone {
			return "phone", nil
		}
	}
	return "", nil
}

func (s *memoryStore) UpdateProfile(ctx context.Context, userID int64, patch models.ClaimsPatch) (models.ProfileChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.ProfileChange{}, store.ErrNoUserWasFound
	}

	var change models.ProfileChange
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Phone != nil {
		if *patch.Phone == "" && u.Email == "" {
			return models.ProfileChange{}, store.ErrLoginRequired
		}
		u.Phone = *patch.Phone
	}
	if patch.Gender != nil {
		u.Gender = *patch.Gender
	}
	if patch.Photo != nil {
		if u.Photo != *patch.Photo {
			change.PreviousPhoto = u.Photo
		}
		u.Photo = *patch.Photo
	}
	s.users[userID] = u
	return change, nil
}

func (s *memoryStore) Next(ctx context.Context, periodKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[periodKey]++
	return s.sequences[periodKey], nil
}

func (s *memoryStore) Replace(ctx context.Context, token models.ResetToken) (models.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, t := range s.tokens {
		if t.UserID == token.UserID {
			delete(s.tokens, hash)
		}
	}
	token.ID = strings.Repeat("0", 26)
	s.tokens[token.TokenHash] = token
	return token, nil
}

func (s *memoryStore) FindByHash(ctx context.Context, tokenHash string) (models.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[tokenHash]
	if !ok {
		return models.ResetToken{}, store.ErrResetTokenNotFound
	}
	return t, nil
}

func (s *memoryStore) DeleteByHash(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, tokenHash)
	return nil
}

func (s *memoryStore) Consume(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[tokenHash]
	if !ok {
		return 0, store.ErrResetTokenNotFound
	}
	if t.ExpiredAt(now) {
		delete(s.tokens, tokenHash)
		return 0, store.ErrResetTokenExpired
	}

	u := s.users[t.UserID]
	u.PasswordHash = passwordHash
	s.users[t.UserID] = u
	for hash, other := range s.tokens {
		if other.UserID == t.UserID {
			delete(s.tokens, hash)
		}
	}
	return t.UserID, nil
}

func (s *memoryStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for hash, t := range s.tokens {
		if t.ExpiredAt(now) {
			delete(s.tokens, hash)
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) tokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// inlineRunner runs tasks synchronously, in submission order.
type inlineRunner struct {
	mu    sync.Mutex
	names []string
	errs  []error
}

func (r *inlineRunner) Submit(ctx context.Context, name string, task func(ctx context.Context) error) {
	err := task(context.WithoutCancel(ctx))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.errs = append(r.errs, err)
}

type welcomeMessage struct {
	email, name, playerID string
}

type resetMessage struct {
	email, token string
}

type recordingNotifier struct {
	mu       sync.Mutex
	welcomes []welcomeMessage
	resets   []resetMessage
	err      error
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, email, name, playerID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, welcomeMessage{email, name, playerID})
	return n.err
}

func (n *recordingNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets = append(n.resets, resetMessage{email, token})
	return n.err
}

func (n *recordingNotifier) lastReset() resetMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resets) == 0 {
		return resetMessage{}
	}
	return n.resets[len(n.resets)-1]
}

// identityFixture wires the real services over a memoryStore.
type identityFixture struct {
	store    *memoryStore
	clock    *clock.Manual
	runner   *inlineRunner
	notifier *recordingNotifier

	sessions SessionService
	auth     AuthService
	reset    PasswordResetService
}

func newIdentityFixture() *identityFixture {
	f := &identityFixture{
		store:    newMemoryStore(),
		clock:    clock.NewManual(testNow),
		runner:   &inlineRunner{},
		notifier: &recordingNotifier{},
	}

	cfg := testAppConfig()
	log := logger.Nop()

	f.sessions = NewSessionService(cfg, f.clock, log)
	issuer := NewPlayerIDIssuer(f.store, cfg.PlayerIDPrefix, nil, log)
	f.auth = NewAuthService(AuthDependencies{
		Users:    f.store,
		Issuer:   issuer,
		Sessions: f.sessions,
		Notifier: f.notifier,
		Tasks:    f.runner,
	}, cfg, f.clock, nil, log)
	f.reset = NewPasswordResetService(ResetDependencies{
		Users:    f.store,
		Tokens:   f.store,
		Notifier: f.notifier,
		Tasks:    f.runner,
	}, cfg, f.clock, nil, log)

	return f
}

func adaRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Phone:    "+1 555 123 4567",
		Password: "analytical-engine",
		Gender:   "female",
	}
}
