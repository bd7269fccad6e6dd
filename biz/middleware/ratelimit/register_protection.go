package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/util/interceptor"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

const keyRegisterBlock = "register_block:"

// NewRegisterProtection holds an IP off account creation for a while after
// it created one. It guards both registration and PIN migration.
func NewRegisterProtection(rdb redis.UniversalClient, conf config.RegisterProtectionConf) app.HandlerFunc {
	blockMinutes := conf.BlockMinutes
	if blockMinutes <= 0 {
		blockMinutes = 10
	}
	blockDuration := time.Duration(blockMinutes) * time.Minute

	return func(ctx context.Context, c *app.RequestContext) {
		key := interceptor.KeyPrefix + keyRegisterBlock + clientIP(c)

		if n, _ := rdb.Exists(ctx, key).Result(); n > 0 {
			abortBlocked(c, fmt.Sprintf("registration is temporarily blocked, please try again after %v minutes", blockMinutes))
			return
		}

		c.Next(ctx)

		var r dto.CommonResp
		if err := json.Unmarshal(c.Response.Body(), &r); err != nil {
			hlog.CtxErrorf(ctx, "parse response body in register protection err: %v", err)
			return
		}
		if !r.Success {
			return
		}
		if err := rdb.Set(ctx, key, "1", blockDuration).Err(); err != nil {
			hlog.CtxErrorf(ctx, "set register block key err: %v", err)
			return
		}
		hlog.CtxInfof(ctx, "register protection: %s blocked for %v", key, blockDuration)
	}
}
