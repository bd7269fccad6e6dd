package stats

import (
	"context"
	"os"
	"testing"
	"time"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/config"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/db/database"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/util/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConf{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	root := t.TempDir()
	store, err := blob.NewLocal(root)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	users := repo.NewUserRepositoryGorm(db)
	sessions := repo.NewSessionRepositoryGorm(db)
	for _, id := range []string{"u1", "u2"} {
		_, err := users.Create(ctx,
			&domain.User{UserID: id, Email: id + "@b.co", FullName: id, Tier: domain.TierFree},
			&domain.Credential{UserID: id, PasscodeSalt: "s", PasscodeHash: "h"})
		require.NoError(t, err)
	}
	require.NoError(t, users.TouchLastLogin(ctx, "u1", now.Add(-24*time.Hour)))
	require.NoError(t, users.TouchLastLogin(ctx, "u2", now.Add(-40*24*time.Hour)))
	_, err = sessions.CreateOrGet(ctx, "u1", "s1", now)
	require.NoError(t, err)

	svc := New(repo.NewStatsRepositoryGorm(db), store, clock.NewFake(now))
	st, bizErr := svc.Stats(ctx)
	require.Nil(t, bizErr)
	assert.EqualValues(t, 2, st.TotalUsers)
	assert.EqualValues(t, 1, st.TotalRecordings)
	assert.EqualValues(t, 1, st.ActiveUsers30d)

	assert.True(t, svc.Health(ctx).OK())
	require.NoError(t, os.RemoveAll(root))
	h := svc.Health(ctx)
	assert.False(t, h.OK())
	assert.NoError(t, h.Database)
	assert.Error(t, h.Storage)
}
