package session

import (
	"context"
	"errors"
	"sync"

	"github.com/preranah7/archweekly/internal/client/client"
	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/storage"
	"github.com/preranah7/archweekly/internal/logging"
)

const (
	msgSendFailed   = "Failed to send OTP"
	msgVerifyFailed = "Failed to verify OTP"
)

// ErrNoToken is returned when a successful verification carries no token.
var ErrNoToken = errors.New("verification response carried no token")

// AuthAPI is the part of the API client the store depends on.
type AuthAPI interface {
	SendOTP(ctx context.Context, email string) (*models.OTPResponse, error)
	VerifyOTP(ctx context.Context, email, otp string) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

type Phase string

const (
	PhaseAnonymous     Phase = "anonymous"
	PhasePendingOTP    Phase = "pending-otp"
	PhaseAuthenticated Phase = "authenticated"
)

// State is a snapshot of the session. Empty strings stand for "none".
type State struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	PendingEmail    string
}

func (s State) Phase() Phase {
	switch {
	case s.IsAuthenticated:
		return PhaseAuthenticated
	case s.PendingEmail != "":
		return PhasePendingOTP
	default:
		return PhaseAnonymous
	}
}

// ActionError is returned by RequestCode and VerifyCode. Message is the
// text shown to the user.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message }
func (e *ActionError) Unwrap() error { return e.Err }

// Store is safe for concurrent use. Overlapping calls of the same action
// are not ordered: the last response to arrive wins.
type Store struct {
	api    AuthAPI
	repo   storage.Repository
	logger logging.Logger

	mu    sync.RWMutex
	state State
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns an empty, anonymous store. Call Hydrate to load the
// persisted session.
func NewStore(api AuthAPI, repo storage.Repository, opts ...Option) *Store {
	s := &Store{api: api, repo: repo, logger: logging.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Phase()
}

// update applies fn under the lock and, when persist is set, writes the
// resulting token and user to durable storage.
func (s *Store) update(ctx context.Context, persist bool, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	token, user := s.state.Token, s.state.User
	s.mu.Unlock()

	if persist {
		s.persist(ctx, token, user)
	}
}

func (s *Store) persist(ctx context.Context, token string, user *models.User) {
	data, err := EncodeRecord(token, user)
	if err != nil {
		s.logger.Warn(ctx, "failed to encode session record", "error", err)
		return
	}
	if err := s.repo.Set(ctx, StorageKey, data); err != nil {
		s.logger.Warn(ctx, "failed to persist session", "error", err)
	}
}

// RequestCode asks the backend to email a one-time code. Token and user
// are never touched. On success the store enters pending-otp for email.
func (s *Store) RequestCode(ctx context.Context, email string) error {
	s.update(ctx, false, func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	if _, err := s.api.SendOTP(ctx, email); err != nil {
		msg := client.Message(err, msgSendFailed)
		s.update(ctx, false, func(st *State) {
			st.IsLoading = false
			st.Error = msg
		})
		return &ActionError{Message: msg, Err: err}
	}

	s.update(ctx, false, func(st *State) {
		st.IsLoading = false
		st.PendingEmail = email
	})
	return nil
}

// VerifyCode exchanges email and code for a session. On failure the
// previous session is left as it was.
func (s *Store) VerifyCode(ctx context.Context, email, code string) error {
	s.update(ctx, false, func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	resp, err := s.api.VerifyOTP(ctx, email, code)
	if err == nil && resp.Token == "" {
		err = ErrNoToken
	}
	if err != nil {
		msg := client.Message(err, msgVerifyFailed)
		s.update(ctx, false, func(st *State) {
			st.IsLoading = false
			st.Error = msg
		})
		return &ActionError{Message: msg, Err: err}
	}

	user := resp.User
	s.update(ctx, true, func(st *State) {
		st.Token = resp.Token
		st.User = &user
		st.IsAuthenticated = true
		st.IsLoading = false
		st.Error = ""
		st.PendingEmail = ""
	})
	s.logger.Info(ctx, "signed in", "email", user.Email, "role", user.Role)
	return nil
}

// Logout clears the session and persists the empty record. It is
// idempotent and never fails.
func (s *Store) Logout(ctx context.Context) {
	s.update(ctx, true, func(st *State) {
		st.User = nil
		st.Token = ""
		st.IsAuthenticated = false
		st.Error = ""
		st.PendingEmail = ""
	})
}

// Revalidate checks the held token against the server. Without a token it
// makes no call and leaves the store anonymous. Any failure clears the
// token and user.
func (s *Store) Revalidate(ctx context.Context) {
	s.mu.RLock()
	token := s.state.Token
	s.mu.RUnlock()

	if token == "" {
		s.update(ctx, false, func(st *State) {
			st.IsAuthenticated = false
			st.User = nil
		})
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Info(ctx, "stored session rejected", "error", err)
		s.update(ctx, true, func(st *State) {
			st.IsAuthenticated = false
			st.Token = ""
			st.User = nil
		})
		return
	}

	u := *user
	s.update(ctx, true, func(st *State) {
		st.User = &u
		st.IsAuthenticated = true
	})
}

// Expire drops the in-memory session after the server rejected it. Durable
// storage is left to the caller, which purges it.
func (s *Store) Expire() {
	s.update(context.Background(), false, func(st *State) {
		st.User = nil
		st.Token = ""
		st.IsAuthenticated = false
	})
}

func (s *Store) ClearError() {
	s.update(context.Background(), false, func(st *State) { st.Error = "" })
}

// SetUser replaces the user snapshot, keeping the token.
func (s *Store) SetUser(ctx context.Context, user models.User) {
	s.update(ctx, true, func(st *State) { st.User = &user })
}

// Hydrate resets the store and loads the persisted token and user. The
// result is never authenticated; call Revalidate next. A corrupt record is
// purged and treated as absent.
func (s *Store) Hydrate(ctx context.Context) error {
	rec, ok, err := loadRecord(ctx, s.repo, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	if err != nil || !ok {
		return err
	}
	s.state.Token = rec.Token()
	if rec.State.User != nil {
		u := *rec.State.User
		s.state.User = &u
	}
	return nil
}
