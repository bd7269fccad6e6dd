package interceptor

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const KeyPrefix = "rate_limit:"

// luaScript ensures atomicity of INCR + EXPIRE and provides self-healing for keys without TTL.
// KEYS[1]: The rate limit key
// ARGV[1]: Window duration in seconds
// ARGV[2]: Max limit count
var luaScript = redis.NewScript(`
local key = KEYS[1]
local window = ARGV[1]
local limit = tonumber(ARGV[2])

local current = redis.call("INCR", key)

if current == 1 then
    redis.call("EXPIRE", key, window)
else
    if redis.call("TTL", key) == -1 then
        redis.call("EXPIRE", key, window)
    end
end

if current > limit then
    return 0 -- Denied
end
return 1 -- Allowed
`)

// Interceptor is a fixed-window counter stored in Redis.
type Interceptor struct {
	rdb    redis.UniversalClient
	window time.Duration
	limit  int64
}

func NewInterceptor(rdb redis.UniversalClient, windowSeconds int, limit int64) *Interceptor {
	return &Interceptor{
		rdb:    rdb,
		window: time.Duration(windowSeconds) * time.Second,
		limit:  limit,
	}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (i *Interceptor) Allow(ctx context.Context, key string) (bool, error) {
	result, err := luaScript.Run(ctx, i.rdb, []string{KeyPrefix + key}, int(i.window.Seconds()), i.limit).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
