// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

//go:build integration

package auth_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/novakovicdavid/figure-backend/internal/auth"
	authpg "github.com/novakovicdavid/figure-backend/internal/auth/postgres"
)

const password = "correct-horse"

var _ = Describe("Registration", func() {
	BeforeEach(func() {
		env.reset()
	})

	It("creates the account, its profile and a session together", func() {
		view, session, err := env.service.Register(env.ctx, "Alice@Example.com", password, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Username).To(Equal("alice"))
		Expect(view.DisplayName).To(BeNil())

		accounts, profiles := env.counts()
		Expect(accounts).To(Equal(int64(1)))
		Expect(profiles).To(Equal(int64(1)))

		var storedEmail string
		Expect(env.pool.QueryRow(env.ctx,
			"SELECT a.email FROM account a JOIN profile p ON p.account_id = a.id WHERE p.id = $1",
			view.ID.String(),
		).Scan(&storedEmail)).To(Succeed())
		Expect(storedEmail).To(Equal("alice@example.com"))

		ttl, err := env.rdb.TTL(env.ctx, "session:"+session.Token).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(ttl).To(BeNumerically("~", auth.DefaultSessionTTL, time.Minute))
	})

	It("rejects a duplicate email without adding a profile", func() {
		_, _, err := env.service.Register(env.ctx, "alice@example.com", password, "alice")
		Expect(err).NotTo(HaveOccurred())

		_, _, err = env.service.Register(env.ctx, "ALICE@example.com", password, "alice2")
		Expect(err).To(MatchError(auth.ErrEmailAlreadyInUse))
		Expect(auth.HTTPStatus(err)).To(Equal(400))

		accounts, profiles := env.counts()
		Expect(accounts).To(Equal(int64(1)))
		Expect(profiles).To(Equal(int64(1)))
	})

	It("rolls the account back when the username is taken", func() {
		_, _, err := env.service.Register(env.ctx, "alice@example.com", password, "alice")
		Expect(err).NotTo(HaveOccurred())

		_, _, err = env.service.Register(env.ctx, "bob@example.com", password, "alice")
		Expect(err).To(MatchError(auth.ErrUsernameAlreadyTaken))

		accounts, profiles := env.counts()
		Expect(accounts).To(Equal(int64(1)))
		Expect(profiles).To(Equal(int64(1)))

		_, _, err = env.service.Authenticate(env.ctx, "bob@example.com", password)
		Expect(err).To(MatchError(auth.ErrUserWithEmailNotFound))
	})

	It("persists nothing when bob's password is too short", func() {
		_, _, err := env.service.Register(env.ctx, "bob@example.com", "short", "bob")
		Expect(err).To(MatchError(auth.ErrPasswordTooShort))
		Expect(auth.PublicMessage(err)).NotTo(BeEmpty())

		accounts, profiles := env.counts()
		Expect(accounts).To(BeZero())
		Expect(profiles).To(BeZero())
	})

	It("stores the email lowercased so any casing finds the account", func() {
		_, _, err := env.service.Register(env.ctx, "Foo@Bar.COM", password, "foo")
		Expect(err).NotTo(HaveOccurred())

		account, err := authpg.NewAccountRepository(env.pool).FindByEmail(env.ctx, "foo@bar.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(account.Email).To(Equal("foo@bar.com"))
		Expect(account.Role).To(Equal(auth.RoleUser))
	})

	It("lets exactly one of many concurrent registrations for an email win", func() {
		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				username := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}[i]
				_, _, errs[i] = env.service.Register(env.ctx, "race@example.com", password, username)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			Expect(err).To(MatchError(auth.ErrEmailAlreadyInUse))
		}
		Expect(succeeded).To(Equal(1))

		accounts, profiles := env.counts()
		Expect(accounts).To(Equal(int64(1)))
		Expect(profiles).To(Equal(int64(1)))
	})
})

var _ = Describe("Sign-in and sessions", func() {
	BeforeEach(func() {
		env.reset()
	})

	It("signs alice in and resumes, then revokes her session", func() {
		registered, _, err := env.service.Register(env.ctx, "alice@example.com", password, "alice")
		Expect(err).NotTo(HaveOccurred())

		view, session, err := env.service.Authenticate(env.ctx, "Alice@example.com", password)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.ID).To(Equal(registered.ID))

		resumed, _, err := env.service.ResumeSession(env.ctx, session.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(resumed.Username).To(Equal("alice"))

		Expect(env.service.Logout(env.ctx, session.Token)).To(Succeed())
		_, _, err = env.service.ResumeSession(env.ctx, session.Token)
		Expect(err).To(MatchError(auth.ErrResourceNotFound))
	})

	It("keeps bob's and alice's identities apart", func() {
		alice, _, err := env.service.Register(env.ctx, "alice@example.com", password, "alice")
		Expect(err).NotTo(HaveOccurred())
		bob, bobSession, err := env.service.Register(env.ctx, "bob@example.com", "battery-staple", "bob")
		Expect(err).NotTo(HaveOccurred())
		Expect(bob.ID).NotTo(Equal(alice.ID))

		_, _, err = env.service.Authenticate(env.ctx, "bob@example.com", password)
		Expect(err).To(MatchError(auth.ErrWrongPassword))

		resumed, _, err := env.service.ResumeSession(env.ctx, bobSession.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(resumed.ID).To(Equal(bob.ID))
	})

	It("upgrades a hash produced with older parameters", func() {
		_, _, err := env.service.Register(env.ctx, "carol@example.com", password, "carol")
		Expect(err).NotTo(HaveOccurred())

		legacy, err := auth.NewArgon2idHasherWithParams(auth.Argon2idParams{Memory: 512, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}).Hash(password)
		Expect(err).NotTo(HaveOccurred())
		_, err = env.pool.Exec(env.ctx, "UPDATE account SET password_hash = $1 WHERE email = $2", legacy, "carol@example.com")
		Expect(err).NotTo(HaveOccurred())

		_, _, err = env.service.Authenticate(env.ctx, "carol@example.com", password)
		Expect(err).NotTo(HaveOccurred())

		var stored string
		Expect(env.pool.QueryRow(env.ctx, "SELECT password_hash FROM account WHERE email = $1", "carol@example.com").Scan(&stored)).To(Succeed())
		Expect(stored).NotTo(Equal(legacy))
		Expect(stored).To(ContainSubstring("m=1024,"))
	})
})
