package be

import (
	"context"
	"fmt"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/config"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/db"
	"righttorecord/be/biz/handler"
	"righttorecord/be/biz/service/attempt"
	"righttorecord/be/biz/service/migration"
	"righttorecord/be/biz/service/quota"
	"righttorecord/be/biz/service/recording"
	"righttorecord/be/biz/service/stats"
	"righttorecord/be/biz/service/user"
	"righttorecord/be/biz/util/clock"
	"righttorecord/be/biz/util/downloadlink"
	"righttorecord/be/biz/util/keylock"
	"righttorecord/be/biz/util/receipt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

// App holds everything the engine needs. Build it once with NewApp.
type App struct {
	Conf *config.ServiceConf
	Conn *db.Conn
	// Redis is nil when no address is configured.
	Redis redis.UniversalClient

	Users      *user.Service
	Limiter    *attempt.Limiter
	Recordings *recording.Service
	Quota      *quota.Service
	Migration  *migration.Service
	Stats      *stats.Service

	Handler *handler.Handler
}

func NewApp(ctx context.Context, conf *config.ServiceConf) (*App, error) {
	conn, err := db.Open(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	blobs, err := blob.New(ctx, conf.Blob)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	app := build(conf, conn, blobs, clock.Real())

	if n, err := app.Limiter.Purge(ctx); err != nil {
		hlog.CtxWarnf(ctx, "purge login attempts err: %v", err)
	} else if n > 0 {
		hlog.CtxInfof(ctx, "purged %d old login attempts", n)
	}
	return app, nil
}

func build(conf *config.ServiceConf, conn *db.Conn, blobs blob.Store, clk clock.Clock) *App {
	app := &App{Conf: conf, Conn: conn}

	var locker keylock.Locker = keylock.NewLocal()
	if conn.Redis != nil {
		// nil *redis.Client 不能直接赋给接口
		app.Redis = conn.Redis
		locker = keylock.NewRedis(conn.Redis, conf.Auth.LockTTL())
	}

	users := repo.NewUserRepositoryGorm(conn.DB)
	creds := repo.NewCredentialRepositoryGorm(conn.DB)
	sessions := repo.NewSessionRepositoryGorm(conn.DB)

	app.Limiter = attempt.New(repo.NewAttemptRepositoryGorm(conn.DB), locker, clk, conf.Auth)
	app.Users = user.New(users, creds, blobs, app.Limiter, clk)
	app.Recordings = recording.New(sessions, blobs,
		downloadlink.NewSigner(conf.Download.LinkSecret, conf.Download.LinkTTL()),
		clk, conf.Server.PublicURL, conf.Download.LinkTTL())
	app.Quota = quota.New(users, sessions, blobs, receipt.NewJWSVerifier(), clk, conf.Quota)
	app.Migration = migration.New(repo.NewLegacyRepositoryGorm(conn.DB), users, blobs)
	app.Stats = stats.New(repo.NewStatsRepositoryGorm(conn.DB), blobs, clk)

	app.Handler = handler.New(app.Users, app.Recordings, app.Quota, app.Migration, app.Stats)
	return app
}

func (a *App) Close() error {
	return a.Conn.Close()
}
