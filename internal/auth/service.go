// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/novakovicdavid/figure-backend/pkg/errutil"
)

const tracerName = "github.com/novakovicdavid/figure-backend/internal/auth"

// Metrics receives one observation per service operation. outcome is "ok" or
// the Kind slug of the returned error.
type Metrics interface {
	ObserveOperation(operation, outcome string, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, string, time.Duration) {}

// Service orchestrates sign-up, sign-in and session handling.
type Service struct {
	accounts   AccountRepository
	profiles   ProfileRepository
	txm        TransactionManager
	sessions   SessionStore
	hasher     PasswordHasher
	pool       *BlockingPool
	logger     *slog.Logger
	metrics    Metrics
	tracer     trace.Tracer
	sessionTTL time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSessionTTL sets the lifetime of issued sessions. Defaults to DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.sessionTTL = ttl }
}

// WithBlockingPool sets the pool password hashing runs on.
func WithBlockingPool(p *BlockingPool) Option {
	return func(s *Service) { s.pool = p }
}

// WithTracerProvider sets the OpenTelemetry tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = tp.Tracer(tracerName) }
}

// NewService creates a Service. All dependencies are required.
func NewService(
	accounts AccountRepository,
	profiles ProfileRepository,
	txm TransactionManager,
	sessions SessionStore,
	hasher PasswordHasher,
	opts ...Option,
) (*Service, error) {
	if accounts == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("accounts repository is required")
	}
	if profiles == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("profiles repository is required")
	}
	if txm == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("transaction manager is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("session store is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("password hasher is required")
	}

	s := &Service{
		accounts:   accounts,
		profiles:   profiles,
		txm:        txm,
		sessions:   sessions,
		hasher:     hasher,
		logger:     slog.Default(),
		metrics:    noopMetrics{},
		tracer:     otel.Tracer(tracerName),
		sessionTTL: DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("logger cannot be nil")
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	if s.sessionTTL <= 0 {
		return nil, oops.Code("AUTH_INVALID_SERVICE").
			With("session_ttl", s.sessionTTL).
			Errorf("session ttl must be positive")
	}
	if s.pool == nil {
		s.pool = NewBlockingPool(0)
	}
	return s, nil
}

// Register creates an account with its profile and signs it in.
//
// Validation failures return before anything is hashed or written. The account
// and profile are inserted in one transaction; if the session cannot be issued
// afterwards both rows remain and ErrSessionCreationFailed is returned.
func (s *Service) Register(ctx context.Context, email, password, username string) (view *ProfileView, session *Session, err error) {
	ctx, span := s.tracer.Start(ctx, "auth.Register")
	defer func(start time.Time) { s.finish(ctx, span, "register", start, err) }(time.Now())

	if err := ValidateRegistration(email, password, username); err != nil {
		return nil, nil, err
	}
	email = NormalizeEmail(email)

	hash, err := Submit(ctx, s.pool, func() (string, error) {
		return s.hasher.Hash(password)
	})
	if err != nil {
		return nil, nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	account, profile, err := s.createAccountWithProfile(ctx, email, hash, username)
	if err != nil {
		return nil, nil, err
	}
	span.SetAttributes(
		attribute.String("account_id", account.ID.String()),
		attribute.String("profile_id", profile.ID.String()),
	)

	session, err = s.issueSession(ctx, account.ID, profile.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "account registered",
		"account_id", account.ID.String(),
		"profile_id", profile.ID.String(),
	)
	return profile.View(), session, nil
}

// createAccountWithProfile inserts both rows in one transaction. Any return
// before Commit rolls the transaction back, so a taken username never leaves an
// account behind.
func (s *Service) createAccountWithProfile(ctx context.Context, email, passwordHash, username string) (*Account, *Profile, error) {
	tx, err := s.txm.Begin(ctx)
	if err != nil {
		return nil, nil, oops.Code("AUTH_TX_BEGIN_FAILED").
			With("operation", "begin registration").
			Wrap(err)
	}
	defer func() {
		// Detached so a cancelled caller still releases the connection cleanly.
		_ = tx.Rollback(context.WithoutCancel(ctx)) //nolint:errcheck // no-op after commit
	}()

	account, err := tx.Accounts().Create(ctx, &Account{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
	})
	if err != nil {
		return nil, nil, err
	}

	profile, err := tx.Profiles().Create(ctx, &Profile{
		Username:  username,
		AccountID: account.ID,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, oops.Code("AUTH_TX_COMMIT_FAILED").
			With("account_id", account.ID.String()).
			Wrap(errors.Join(ErrTransactionFailed, err))
	}
	return account, profile, nil
}

// Authenticate checks credentials and issues a session for the account's profile.
func (s *Service) Authenticate(ctx context.Context, email, password string) (view *ProfileView, session *Session, err error) {
	ctx, span := s.tracer.Start(ctx, "auth.Authenticate")
	defer func(start time.Time) { s.finish(ctx, span, "authenticate", start, err) }(time.Now())

	if err := ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrResourceNotFound) {
		return nil, nil, oops.Code("AUTH_USER_NOT_FOUND").Wrap(ErrUserWithEmailNotFound)
	}
	if err != nil {
		return nil, nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "find account by email").
			Wrap(err)
	}

	valid, err := Submit(ctx, s.pool, func() (bool, error) {
		return s.hasher.Verify(password, account.PasswordHash)
	})
	if err != nil {
		return nil, nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			With("account_id", account.ID.String()).
			Wrap(err)
	}
	if !valid {
		return nil, nil, oops.Code("AUTH_WRONG_PASSWORD").Wrap(ErrWrongPassword)
	}

	profile, err := s.profiles.FindByAccountID(ctx, account.ID)
	if errors.Is(err, ErrResourceNotFound) {
		// Every account is created together with its profile.
		return nil, nil, oops.Code("AUTH_PROFILE_MISSING").
			With("account_id", account.ID.String()).
			Errorf("account has no profile")
	}
	if err != nil {
		return nil, nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "find profile by account").
			With("account_id", account.ID.String()).
			Wrap(err)
	}

	s.upgradeHash(ctx, account, password)

	session, err = s.issueSession(ctx, account.ID, profile.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "account authenticated",
		"account_id", account.ID.String(),
		"profile_id", profile.ID.String(),
	)
	return profile.View(), session, nil
}

// Logout revokes a session. Revoking an unknown token succeeds.
func (s *Service) Logout(ctx context.Context, token string) (err error) {
	ctx, span := s.tracer.Start(ctx, "auth.Logout")
	defer func(start time.Time) { s.finish(ctx, span, "logout", start, err) }(time.Now())

	if token == "" {
		return oops.Code("AUTH_NO_SESSION").Wrap(ErrNoSession)
	}
	if err := s.sessions.RemoveByID(ctx, token); err != nil {
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "remove session").
			Wrap(err)
	}
	return nil
}

// ResumeSession looks up the session for token, extends it by the configured
// TTL and returns the profile it belongs to.
func (s *Service) ResumeSession(ctx context.Context, token string) (view *ProfileView, session *Session, err error) {
	ctx, span := s.tracer.Start(ctx, "auth.ResumeSession")
	defer func(start time.Time) { s.finish(ctx, span, "resume_session", start, err) }(time.Now())

	if token == "" {
		return nil, nil, oops.Code("AUTH_NO_SESSION").Wrap(ErrNoSession)
	}

	session, err = s.sessions.FindByID(ctx, token, s.sessionTTL)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, nil, err
		}
		return nil, nil, oops.Code("AUTH_RESUME_FAILED").
			With("operation", "find session").
			Wrap(err)
	}

	profile, err := s.profiles.FindByID(ctx, session.ProfileID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, nil, err
		}
		return nil, nil, oops.Code("AUTH_RESUME_FAILED").
			With("operation", "find profile").
			With("profile_id", session.ProfileID.String()).
			Wrap(err)
	}
	return profile.View(), session, nil
}

func (s *Service) issueSession(ctx context.Context, accountID, profileID ulid.ULID) (*Session, error) {
	session, err := s.sessions.Create(ctx, accountID, profileID, s.sessionTTL)
	if err != nil {
		return nil, oops.Code("AUTH_SESSION_CREATE_FAILED").
			With("account_id", accountID.String()).
			With("profile_id", profileID.String()).
			Wrap(errors.Join(ErrSessionCreationFailed, err))
	}
	return session, nil
}

// upgradeHash re-hashes the password when the stored hash uses outdated
// parameters. Failures are logged; sign-in succeeds regardless.
func (s *Service) upgradeHash(ctx context.Context, account *Account, password string) {
	if !s.hasher.NeedsUpgrade(account.PasswordHash) {
		return
	}
	newHash, err := Submit(ctx, s.pool, func() (string, error) {
		return s.hasher.Hash(password)
	})
	if err == nil {
		err = s.accounts.UpdatePasswordHash(ctx, account.ID, newHash)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "password hash upgrade failed",
			"account_id", account.ID.String(),
			"error", err,
		)
		return
	}
	account.PasswordHash = newHash
}

func (s *Service) finish(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		span.SetAttributes(attribute.String("outcome", outcome))
		if IsInternal(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
			errutil.LogError(ctx, s.logger, operation+" failed", err)
		}
	}
	s.metrics.ObserveOperation(operation, outcome, time.Since(start))
	span.End()
}
