package user

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/config"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/db/database"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/service/attempt"
	"righttorecord/be/biz/util/clock"
	"righttorecord/be/biz/util/encode"
	"righttorecord/be/biz/util/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   *Service
	root  string
	clock *clock.Fake
	users *repo.UserRepositoryGorm
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(config.DatabaseConf{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	root := t.TempDir()
	store, err := blob.NewLocal(root)
	require.NoError(t, err)

	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	users := repo.NewUserRepositoryGorm(db)
	limiter := attempt.New(repo.NewAttemptRepositoryGorm(db), keylock.NewLocal(), clk,
		config.AuthConf{MaxFailedAttempts: 5, WindowHours: 24, RetentionDays: 7, LockTTLSeconds: 30})
	return &fixture{
		svc:   New(users, repo.NewCredentialRepositoryGorm(db), store, limiter, clk),
		root:  root,
		clock: clk,
		users: users,
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		for _, tc := range []struct{ email, passcode string }{
			{"not-an-email", "123456"},
			{"a@b.co", "12345"},
			{"a@b.co", "12345a"},
			{"a@b.co", "1234567"},
		} {
			_, bizErr := f.svc.Register(ctx, "", tc.email, tc.passcode)
			assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr), tc)
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		u, bizErr := f.svc.Register(ctx, "", " Jane.Doe@Example.COM ", "123456")
		require.Nil(t, bizErr)
		assert.Equal(t, "jane.doe@example.com", u.Email)
		assert.Equal(t, "Jane.Doe", u.FullName)
		assert.Equal(t, domain.TierFree, u.Tier)
		assert.Len(t, u.UserID, 22)

		info, err := os.Stat(filepath.Join(f.root, u.UserID))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("duplicated email", func(t *testing.T) {
		f := newFixture(t)
		_, bizErr := f.svc.Register(ctx, "Jane", "jane@example.com", "123456")
		require.Nil(t, bizErr)
		_, bizErr = f.svc.Register(ctx, "Jane", "JANE@example.com", "654321")
		assert.True(t, errs.ErrorEqual(errs.Conflict, bizErr))
	})

	t.Run("concurrent duplicates leave no orphan namespace", func(t *testing.T) {
		f := newFixture(t)
		var wg sync.WaitGroup
		results := make([]errs.Error, 4)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = f.svc.Register(ctx, "Jane", "jane@example.com", "123456")
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, bizErr := range results {
			if bizErr == nil {
				ok++
				continue
			}
			assert.True(t, errs.ErrorEqual(errs.Conflict, bizErr))
		}
		assert.Equal(t, 1, ok)

		entries, err := os.ReadDir(f.root)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u, bizErr := f.svc.Register(ctx, "Jane", "jane@example.com", "123456")
	require.Nil(t, bizErr)

	got, bizErr := f.svc.Authenticate(ctx, "Jane@Example.com", "123456")
	require.Nil(t, bizErr)
	assert.Equal(t, u.UserID, got.UserID)

	_, wrong := f.svc.Authenticate(ctx, "jane@example.com", "000000")
	_, unknown := f.svc.Authenticate(ctx, "nobody@example.com", "123456")
	assert.True(t, errs.ErrorEqual(errs.Unauthorized, wrong))
	assert.Equal(t, wrong, unknown)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success touches last login", func(t *testing.T) {
		f := newFixture(t)
		u, _ := f.svc.Register(ctx, "Jane", "jane@example.com", "123456")

		res, bizErr := f.svc.Login(ctx, "jane@example.com", "123456", "1.2.3.4")
		require.Nil(t, bizErr)
		assert.Equal(t, u.UserID, res.User.UserID)
		assert.Equal(t, 5, res.Remaining)

		stored, err := f.users.FindByUserID(ctx, u.UserID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastLoginAt)
		assert.True(t, stored.LastLoginAt.Equal(f.clock.Now()))
	})

	t.Run("sixth attempt is rate limited without comparing", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.Register(ctx, "Jane", "jane@example.com", "123456")

		for i := 4; i >= 0; i-- {
			res, bizErr := f.svc.Login(ctx, "jane@example.com", "000000", "")
			assert.True(t, errs.ErrorEqual(errs.Unauthorized, bizErr))
			assert.Equal(t, i, res.Remaining)
			assert.Equal(t, i == 0, res.RateLimited)
		}

		// 正确密码也被拒绝
		res, bizErr := f.svc.Login(ctx, "jane@example.com", "123456", "")
		assert.True(t, errs.ErrorEqual(errs.RateLimited, bizErr))
		assert.True(t, res.RateLimited)
		assert.Equal(t, 0, res.Remaining)
		assert.Nil(t, res.User)

		remaining, limited, bizErr := f.svc.CheckAttempts(ctx, "jane@example.com")
		require.Nil(t, bizErr)
		assert.Equal(t, 0, remaining)
		assert.True(t, limited)

		f.clock.Advance(24*time.Hour + time.Second)
		res, bizErr = f.svc.Login(ctx, "jane@example.com", "123456", "")
		require.Nil(t, bizErr)
		assert.NotNil(t, res.User)
	})

	t.Run("concurrent failures never under-block", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.Register(ctx, "Jane", "jane@example.com", "123456")

		var wg sync.WaitGroup
		var mu sync.Mutex
		limited := 0
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, bizErr := f.svc.Login(ctx, "jane@example.com", "000000", "")
				if errs.ErrorEqual(errs.RateLimited, bizErr) {
					mu.Lock()
					limited++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 5, limited)
	})

	t.Run("passcode whitespace trimmed", func(t *testing.T) {
		f := newFixture(t)
		u, _ := f.svc.Register(ctx, "Jane", "jane@example.com", "123456")

		res, bizErr := f.svc.Login(ctx, " Jane@Example.com ", " 123456 ", "")
		require.Nil(t, bizErr)
		assert.Equal(t, u.UserID, res.User.UserID)
		assert.Equal(t, 5, res.Remaining)

		_, bizErr = f.svc.Login(ctx, "jane@example.com", "   ", "")
		assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr))
	})

	t.Run("missing input", func(t *testing.T) {
		f := newFixture(t)
		_, bizErr := f.svc.Login(ctx, " ", "123456", "")
		assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr))
	})
}

func TestService_AuthenticateForRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.svc.Register(ctx, "Jane", "jane@example.com", "123456")

	_, bizErr := f.svc.AuthenticateForRequest(ctx, "jane@example.com", "12345")
	assert.True(t, errs.ErrorEqual(errs.Unauthorized, bizErr))

	u, bizErr := f.svc.AuthenticateForRequest(ctx, "jane@example.com", "123456")
	require.Nil(t, bizErr)
	assert.Equal(t, "jane@example.com", u.Email)
}

func TestService_GetByUserID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u, _ := f.svc.Register(ctx, "Jane", "jane@example.com", "123456")

	got, bizErr := f.svc.GetByUserID(ctx, u.UserID)
	require.Nil(t, bizErr)
	assert.Equal(t, u.Email, got.Email)

	_, bizErr = f.svc.GetByUserID(ctx, "missing")
	assert.True(t, errs.ErrorEqual(errs.UserNotExist, bizErr))
}

type fakeUserRepo struct {
	repo.UserRepository
	findByEmailUser *domain.User
	findByEmailErr  error
	createErr       error
}

func (r *fakeUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return r.findByEmailUser, r.findByEmailErr
}

func (r *fakeUserRepo) Create(context.Context, *domain.User, *domain.Credential) (*domain.User, error) {
	return nil, r.createErr
}

type fakeCredRepo struct {
	cred *domain.Credential
}

func (r *fakeCredRepo) FindByUserID(context.Context, string) (*domain.Credential, error) {
	return r.cred, nil
}

func TestService_RepoErrors(t *testing.T) {
	ctx := context.Background()
	store, err := blob.NewLocal(t.TempDir())
	require.NoError(t, err)

	t.Run("find error", func(t *testing.T) {
		svc := New(&fakeUserRepo{findByEmailErr: errors.New("db error")}, &fakeCredRepo{}, store, nil, clock.Real())
		_, bizErr := svc.Register(ctx, "n", "a@b.co", "123456")
		assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
		_, bizErr = svc.Authenticate(ctx, "a@b.co", "123456")
		assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
	})

	t.Run("create error", func(t *testing.T) {
		svc := New(&fakeUserRepo{createErr: errors.New("insert error")}, &fakeCredRepo{}, store, nil, clock.Real())
		_, bizErr := svc.Register(ctx, "n", "a@b.co", "123456")
		assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
	})

	t.Run("missing credential", func(t *testing.T) {
		svc := New(&fakeUserRepo{findByEmailUser: &domain.User{UserID: "u1"}}, &fakeCredRepo{}, store, nil, clock.Real())
		_, bizErr := svc.Authenticate(ctx, "a@b.co", "123456")
		assert.True(t, errs.ErrorEqual(errs.Unauthorized, bizErr))
	})

	t.Run("stored digest", func(t *testing.T) {
		cred := &domain.Credential{UserID: "u1", PasscodeSalt: "s", PasscodeHash: encode.EncodePassword("s", "123456")}
		svc := New(&fakeUserRepo{findByEmailUser: &domain.User{UserID: "u1"}}, &fakeCredRepo{cred: cred}, store, nil, clock.Real())
		u, bizErr := svc.Authenticate(ctx, "a@b.co", "123456")
		require.Nil(t, bizErr)
		assert.Equal(t, "u1", u.UserID)
	})
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "Jane.Doe", nameFromEmail("jane.doe@x.io"))
	assert.Equal(t, "John", nameFromEmail("JOHN@x.io"))
	assert.Equal(t, "A1B", nameFromEmail("a1b@x.io"))
}
