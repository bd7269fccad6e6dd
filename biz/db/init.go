package db

import (
	"context"
	"errors"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/db/database"
	dbredis "righttorecord/be/biz/db/redis"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Conn struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// Open connects the database, archives a legacy schema if present, migrates,
// and connects Redis.
func Open(ctx context.Context, conf *config.ServiceConf) (*Conn, error) {
	gdb, err := database.Open(conf.Database)
	if err != nil {
		return nil, err
	}
	if _, err := database.ArchiveLegacySchema(ctx, gdb); err != nil {
		return nil, err
	}
	if err := database.Migrate(gdb); err != nil {
		return nil, err
	}

	conn := &Conn{DB: gdb}
	if conf.Redis.Enabled() {
		rdb, err := dbredis.New(ctx, conf.Redis)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		conn.Redis = rdb
	}
	return conn, nil
}

func (c *Conn) Close() error {
	var errList []error
	if c.Redis != nil {
		errList = append(errList, c.Redis.Close())
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		errList = append(errList, sqlDB.Close())
	}
	return errors.Join(errList...)
}
