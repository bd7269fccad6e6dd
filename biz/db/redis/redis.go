package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"righttorecord/be/biz/config"

	"github.com/redis/go-redis/v9"
)

// New connects and pings.
func New(ctx context.Context, conf config.RedisConf) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(conf.IP, strconv.Itoa(conf.Port)),
		Password:     conf.Password,
		DB:           conf.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", rdb.Options().Addr, err)
	}
	return rdb, nil
}
