// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/novakovicdavid/figure-backend/internal/auth"
	"github.com/novakovicdavid/figure-backend/internal/auth/authtest"
	"github.com/novakovicdavid/figure-backend/internal/auth/mocks"
	"github.com/novakovicdavid/figure-backend/pkg/errutil"
)

// fastParams keep argon2id cheap in tests.
var fastParams = auth.Argon2idParams{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

type recordingMetrics struct {
	mu  sync.Mutex
	obs []string
}

func (m *recordingMetrics) ObserveOperation(operation, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, operation+"/"+outcome)
}

type fixture struct {
	svc      *auth.Service
	store    *authtest.Store
	sessions *authtest.SessionStore
	hasher   *auth.Argon2idHasher
	logs     *bytes.Buffer
	metrics  *recordingMetrics
}

func newFixture(t *testing.T, opts ...auth.Option) *fixture {
	t.Helper()
	f := &fixture{
		store:    authtest.NewStore(),
		sessions: authtest.NewSessionStore(),
		hasher:   auth.NewArgon2idHasherWithParams(fastParams),
		logs:     &bytes.Buffer{},
		metrics:  &recordingMetrics{},
	}
	logger := slog.New(slog.NewJSONHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]auth.Option{
		auth.WithLogger(logger),
		auth.WithMetrics(f.metrics),
		auth.WithBlockingPool(auth.NewBlockingPool(2)),
		auth.WithTracerProvider(noop.NewTracerProvider()),
	}, opts...)

	svc, err := auth.NewService(f.store.Accounts(), f.store.Profiles(), f.store, f.sessions, f.hasher, opts...)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewService_RequiresDependencies(t *testing.T) {
	store := authtest.NewStore()
	sessions := authtest.NewSessionStore()
	hasher := auth.NewArgon2idHasher()

	tests := []struct {
		name    string
		build   func() (*auth.Service, error)
		wantMsg string
	}{
		{"accounts", func() (*auth.Service, error) {
			return auth.NewService(nil, store.Profiles(), store, sessions, hasher)
		}, "accounts repository is required"},
		{"profiles", func() (*auth.Service, error) {
			return auth.NewService(store.Accounts(), nil, store, sessions, hasher)
		}, "profiles repository is required"},
		{"transaction manager", func() (*auth.Service, error) {
			return auth.NewService(store.Accounts(), store.Profiles(), nil, sessions, hasher)
		}, "transaction manager is required"},
		{"sessions", func() (*auth.Service, error) {
			return auth.NewService(store.Accounts(), store.Profiles(), store, nil, hasher)
		}, "session store is required"},
		{"hasher", func() (*auth.Service, error) {
			return auth.NewService(store.Accounts(), store.Profiles(), store, sessions, nil)
		}, "password hasher is required"},
		{"logger", func() (*auth.Service, error) {
			return auth.NewService(store.Accounts(), store.Profiles(), store, sessions, hasher, auth.WithLogger(nil))
		}, "logger cannot be nil"},
		{"ttl", func() (*auth.Service, error) {
			return auth.NewService(store.Accounts(), store.Profiles(), store, sessions, hasher, auth.WithSessionTTL(-time.Second))
		}, "session ttl must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := tt.build()
			require.Error(t, err)
			assert.Nil(t, svc)
			errutil.AssertErrorCode(t, err, "AUTH_INVALID_SERVICE")
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, session, err := f.svc.Register(ctx, "Foo@Bar.COM", "password123", "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", view.Username)
	assert.Nil(t, view.DisplayName)
	assert.Len(t, session.Token, 2*auth.SessionTokenBytes)
	assert.Equal(t, auth.DefaultSessionTTL, session.TTL)
	assert.Equal(t, view.ID, session.ProfileID)

	account, err := f.store.Accounts().FindByEmail(ctx, "foo@bar.com")
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", account.Email)
	assert.Equal(t, auth.RoleUser, account.Role)
	assert.Equal(t, account.ID, session.AccountID)
	assert.NotEqual(t, "password123", account.PasswordHash)

	ok, err := f.hasher.Verify("password123", account.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := f.sessions.FindByID(ctx, session.Token, 0)
	require.NoError(t, err)
	assert.Equal(t, view.ID, stored.ProfileID)

	assert.Contains(t, f.logs.String(), `"msg":"account registered"`)
	assert.NotContains(t, f.logs.String(), "password123")
	assert.NotContains(t, f.logs.String(), session.Token)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.NoError(t, err)

	_, _, err = f.svc.Register(ctx, "ALICE@example.com", "password456", "alice2")
	errutil.AssertErrorIs(t, err, auth.ErrEmailAlreadyInUse, "AUTH_EMAIL_IN_USE")
	assert.Equal(t, http.StatusBadRequest, auth.HTTPStatus(err))

	assert.Equal(t, 1, f.store.AccountCount())
	assert.Equal(t, 1, f.store.ProfileCount(), "no profile for the rejected account")
	assert.Equal(t, 1, f.sessions.Len())
}

func TestService_Register_UsernameTakenLeavesNoAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.NoError(t, err)

	_, _, err = f.svc.Register(ctx, "other@example.com", "password123", "alice")
	errutil.AssertErrorIs(t, err, auth.ErrUsernameAlreadyTaken, "AUTH_USERNAME_TAKEN")

	assert.Equal(t, 1, f.store.AccountCount(), "account insert rolled back with the profile")
	_, err = f.store.Accounts().FindByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, auth.ErrResourceNotFound)

	// The email was released by the rollback.
	_, _, err = f.svc.Register(ctx, "other@example.com", "password123", "other")
	require.NoError(t, err)
}

func TestService_Register_ValidationHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		username string
		wantErr  error
	}{
		{"invalid email", "not-an-email", "password123", "alice", auth.ErrInvalidEmail},
		{"short password", "bob@example.com", "short", "bob", auth.ErrPasswordTooShort},
		{"long password", "bob@example.com", strings.Repeat("x", 129), "bob", auth.ErrPasswordTooLong},
		{"invalid username", "bob@example.com", "password123", "b_b", auth.ErrInvalidUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := authtest.NewStore()
			sessions := mocks.NewMockSessionStore(t)
			hasher := mocks.NewMockPasswordHasher(t)
			txm := mocks.NewMockTransactionManager(t)

			svc, err := auth.NewService(store.Accounts(), store.Profiles(), txm, sessions, hasher)
			require.NoError(t, err)

			_, _, err = svc.Register(context.Background(), tt.email, tt.password, tt.username)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, auth.IsInternal(err))
			assert.Equal(t, 0, store.AccountCount())
		})
	}
}

func TestService_Register_CommitFailure(t *testing.T) {
	f := newFixture(t)
	f.store.CommitErr = errors.New("could not serialize access")

	_, _, err := f.svc.Register(context.Background(), "alice@example.com", "password123", "alice")
	errutil.AssertErrorIs(t, err, auth.ErrTransactionFailed, "AUTH_TX_COMMIT_FAILED")
	assert.Equal(t, auth.KindTransactionFailed, auth.KindOf(err))
	assert.Equal(t, "transaction-failed", auth.PublicMessage(err))
	assert.Equal(t, 0, f.store.AccountCount())
	assert.Equal(t, 0, f.sessions.Len())
	assert.Contains(t, f.logs.String(), `"level":"ERROR"`)
}

func TestService_Register_BeginFailure(t *testing.T) {
	f := newFixture(t)
	f.store.BeginErr = errors.New("too many connections")

	_, _, err := f.svc.Register(context.Background(), "alice@example.com", "password123", "alice")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TX_BEGIN_FAILED")
	assert.Equal(t, auth.KindInternal, auth.KindOf(err))
	assert.Equal(t, "internal-error", auth.PublicMessage(err))
	assert.NotContains(t, auth.PublicMessage(err), "connections")
}

func TestService_Register_SessionFailureKeepsAccount(t *testing.T) {
	f := newFixture(t)
	f.sessions.CreateErr = errors.New("redis: connection refused")

	_, _, err := f.svc.Register(context.Background(), "alice@example.com", "password123", "alice")
	errutil.AssertErrorIs(t, err, auth.ErrSessionCreationFailed, "AUTH_SESSION_CREATE_FAILED")
	assert.Equal(t, http.StatusInternalServerError, auth.HTTPStatus(err))
	assert.Equal(t, 1, f.store.AccountCount())
	assert.Equal(t, 1, f.store.ProfileCount())

	// The account can still sign in.
	_, _, err = f.svc.Authenticate(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
}

func TestService_Register_RollsBackOnAccountInsertFailure(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewMockTx(t)
	txm := mocks.NewMockTransactionManager(t)
	txAccounts := mocks.NewMockAccountRepository(t)
	sessions := mocks.NewMockSessionStore(t)

	txm.EXPECT().Begin(mock.Anything).Return(tx, nil)
	tx.EXPECT().Accounts().Return(txAccounts)
	txAccounts.EXPECT().Create(mock.Anything, mock.MatchedBy(func(a *auth.Account) bool {
		return a.Email == "alice@example.com" && a.Role == auth.RoleUser && a.PasswordHash != ""
	})).Return(nil, errors.New("connection reset"))
	tx.EXPECT().Rollback(mock.Anything).Return(nil).Once()

	svc, err := auth.NewService(
		mocks.NewMockAccountRepository(t),
		mocks.NewMockProfileRepository(t),
		txm, sessions,
		auth.NewArgon2idHasherWithParams(fastParams),
	)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Alice@Example.com", "password123", "alice")
	require.Error(t, err)
	assert.True(t, auth.IsInternal(err))
}

func TestService_Register_ConcurrentSameEmail(t *testing.T) {
	f := newFixture(t, auth.WithBlockingPool(auth.NewBlockingPool(4)))

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = f.svc.Register(context.Background(), "race@example.com", "password123", fmt.Sprintf("racer%d", i))
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyInUse)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.AccountCount())
	assert.Equal(t, 1, f.store.ProfileCount())
}

func TestService_AliceScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	registered, first, err := f.svc.Register(ctx, "alice@example.com", "correct horse", "alice")
	require.NoError(t, err)

	view, second, err := f.svc.Authenticate(ctx, "ALICE@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, view.ID)
	assert.Equal(t, "alice", view.Username)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 2, f.sessions.Len())
}

func TestService_BobScenario(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.Register(context.Background(), "bob@example.com", "short", "bob")
	errutil.AssertErrorIs(t, err, auth.ErrPasswordTooShort, "AUTH_PASSWORD_TOO_SHORT")
	assert.Equal(t, 0, f.store.AccountCount())
	assert.Equal(t, 0, f.store.ProfileCount())
	assert.Equal(t, 0, f.sessions.Len())
	assert.Empty(t, f.logs.String(), "client errors are not logged")
}

func TestService_Authenticate_Failures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := f.svc.Authenticate(ctx, "nobody@example.com", "password123")
		errutil.AssertErrorIs(t, err, auth.ErrUserWithEmailNotFound, "AUTH_USER_NOT_FOUND")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := f.svc.Authenticate(ctx, "alice@example.com", "password124")
		errutil.AssertErrorIs(t, err, auth.ErrWrongPassword, "AUTH_WRONG_PASSWORD")
	})

	t.Run("invalid email skips lookup", func(t *testing.T) {
		_, _, err := f.svc.Authenticate(ctx, "alice", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidEmail)
	})

	t.Run("short password skips lookup", func(t *testing.T) {
		_, _, err := f.svc.Authenticate(ctx, "alice@example.com", "pw")
		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	})

	assert.Equal(t, 1, f.sessions.Len(), "failed sign-ins issue no session")
}

func TestService_Authenticate_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewArgon2idHasherWithParams(fastParams)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	account := &auth.Account{ID: ulid.Make(), Email: "alice@example.com", PasswordHash: hash, Role: auth.RoleUser}

	t.Run("lookup failure is internal", func(t *testing.T) {
		accounts := mocks.NewMockAccountRepository(t)
		accounts.EXPECT().FindByEmail(mock.Anything, "alice@example.com").Return(nil, errors.New("connection reset"))

		svc, err := auth.NewService(accounts, mocks.NewMockProfileRepository(t), mocks.NewMockTransactionManager(t), mocks.NewMockSessionStore(t), hasher)
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, "Alice@example.com", "password123")
		errutil.AssertErrorCode(t, err, "AUTH_LOGIN_FAILED")
		assert.True(t, auth.IsInternal(err))
	})

	t.Run("missing profile is internal", func(t *testing.T) {
		accounts := mocks.NewMockAccountRepository(t)
		profiles := mocks.NewMockProfileRepository(t)
		accounts.EXPECT().FindByEmail(mock.Anything, "alice@example.com").Return(account, nil)
		profiles.EXPECT().FindByAccountID(mock.Anything, account.ID).Return(nil, auth.ErrResourceNotFound)

		svc, err := auth.NewService(accounts, profiles, mocks.NewMockTransactionManager(t), mocks.NewMockSessionStore(t), hasher)
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, "alice@example.com", "password123")
		errutil.AssertErrorCode(t, err, "AUTH_PROFILE_MISSING")
		assert.Equal(t, auth.KindInternal, auth.KindOf(err))
	})

	t.Run("corrupt stored hash is internal", func(t *testing.T) {
		accounts := mocks.NewMockAccountRepository(t)
		corrupt := *account
		corrupt.PasswordHash = "not-a-hash"
		accounts.EXPECT().FindByEmail(mock.Anything, "alice@example.com").Return(&corrupt, nil)

		svc, err := auth.NewService(accounts, mocks.NewMockProfileRepository(t), mocks.NewMockTransactionManager(t), mocks.NewMockSessionStore(t), hasher)
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, "alice@example.com", "password123")
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_HASH")
		assert.True(t, auth.IsInternal(err))
	})

	t.Run("zero time cost in stored hash is internal", func(t *testing.T) {
		accounts := mocks.NewMockAccountRepository(t)
		corrupt := *account
		corrupt.PasswordHash = "$argon2id$v=19$m=8192,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5"
		accounts.EXPECT().FindByEmail(mock.Anything, "alice@example.com").Return(&corrupt, nil)

		svc, err := auth.NewService(accounts, mocks.NewMockProfileRepository(t), mocks.NewMockTransactionManager(t), mocks.NewMockSessionStore(t), hasher)
		require.NoError(t, err)

		require.NotPanics(t, func() {
			_, _, err = svc.Authenticate(ctx, "alice@example.com", "password123")
		})
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_HASH")
		assert.True(t, auth.IsInternal(err))
	})
}

func TestService_Authenticate_UpgradesHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	old := auth.NewArgon2idHasherWithParams(auth.Argon2idParams{Memory: 512, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32})
	oldHash, err := old.Hash("password123")
	require.NoError(t, err)
	account, err := f.store.Accounts().Create(ctx, &auth.Account{Email: "old@example.com", PasswordHash: oldHash})
	require.NoError(t, err)
	_, err = f.store.Profiles().Create(ctx, &auth.Profile{Username: "old", AccountID: account.ID})
	require.NoError(t, err)

	_, _, err = f.svc.Authenticate(ctx, "old@example.com", "password123")
	require.NoError(t, err)

	upgraded, err := f.store.Accounts().FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, upgraded.PasswordHash)
	assert.False(t, f.hasher.NeedsUpgrade(upgraded.PasswordHash))
}

func TestService_Authenticate_UpgradeFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	old := auth.NewArgon2idHasherWithParams(auth.Argon2idParams{Memory: 512, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32})
	oldHash, err := old.Hash("password123")
	require.NoError(t, err)
	account, err := f.store.Accounts().Create(ctx, &auth.Account{Email: "old@example.com", PasswordHash: oldHash})
	require.NoError(t, err)
	_, err = f.store.Profiles().Create(ctx, &auth.Profile{Username: "old", AccountID: account.ID})
	require.NoError(t, err)
	f.store.UpdateErr = errors.New("read-only transaction")

	_, session, err := f.svc.Authenticate(ctx, "old@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Contains(t, f.logs.String(), "password hash upgrade failed")
	assert.Contains(t, f.logs.String(), `"level":"WARN"`)
}

func TestService_ResumeSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, auth.WithSessionTTL(time.Hour))
	f.sessions.SetClock(func() time.Time { return now })

	view, session, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, session.TTL)

	now = now.Add(50 * time.Minute)
	resumed, refreshed, err := f.svc.ResumeSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, view.ID, resumed.ID)
	assert.Equal(t, time.Hour, refreshed.TTL, "expiry slides forward")

	now = now.Add(50 * time.Minute)
	_, _, err = f.svc.ResumeSession(ctx, session.Token)
	require.NoError(t, err, "refreshed session outlives the original expiry")

	_, _, err = f.svc.ResumeSession(ctx, "unknown")
	assert.ErrorIs(t, err, auth.ErrResourceNotFound)

	_, _, err = f.svc.ResumeSession(ctx, "")
	errutil.AssertErrorIs(t, err, auth.ErrNoSession, "AUTH_NO_SESSION")
	assert.Equal(t, http.StatusUnauthorized, auth.HTTPStatus(err))
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, session, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, session.Token))
	_, err = f.sessions.FindByID(ctx, session.Token, 0)
	assert.ErrorIs(t, err, auth.ErrResourceNotFound)

	require.NoError(t, f.svc.Logout(ctx, session.Token), "revoking twice succeeds")
	assert.ErrorIs(t, f.svc.Logout(ctx, ""), auth.ErrNoSession)
}

func TestService_Logout_StoreFailure(t *testing.T) {
	sessions := mocks.NewMockSessionStore(t)
	sessions.EXPECT().RemoveByID(mock.Anything, "token").Return(errors.New("redis down"))

	svc, err := auth.NewService(
		mocks.NewMockAccountRepository(t), mocks.NewMockProfileRepository(t),
		mocks.NewMockTransactionManager(t), sessions, mocks.NewMockPasswordHasher(t),
	)
	require.NoError(t, err)

	err = svc.Logout(context.Background(), "token")
	errutil.AssertErrorCode(t, err, "AUTH_LOGOUT_FAILED")
	assert.True(t, auth.IsInternal(err))
}

func TestService_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.NoError(t, err)
	_, _, _ = f.svc.Authenticate(ctx, "alice@example.com", "wrongpassword")
	_ = f.svc.Logout(ctx, "")

	f.metrics.mu.Lock()
	defer f.metrics.mu.Unlock()
	assert.Equal(t, []string{
		"register/ok",
		"authenticate/wrong-password",
		"logout/no-session",
	}, f.metrics.obs)
}

func TestService_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := f.svc.Register(ctx, "alice@example.com", "password123", "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, f.store.AccountCount())
}
