package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/interceptor"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

const (
	keyLoginBlockHour   = "login_block_h:"
	keyLoginBlockMinute = "login_block_m:"
	keyLoginFailLvl     = "login_fail_level:"
	keyLoginFail        = "login_fail:"
)

// NewLoginProtection blocks an IP that keeps failing logins, across emails.
// The per-email budget lives in the attempt limiter; this one stops an
// address from spraying many accounts. The first trip blocks for minutes,
// a second trip while the level key lives blocks for hours.
func NewLoginProtection(rdb redis.UniversalClient, conf config.LoginProtectionConf) app.HandlerFunc {
	window := conf.WindowSeconds
	if window <= 0 {
		window = 300
	}
	limit := conf.Limit
	if limit <= 0 {
		limit = 10
	}
	durationBlockMin := time.Duration(conf.BlockMinDuration) * time.Minute
	if durationBlockMin <= 0 {
		durationBlockMin = 5 * time.Minute
	}
	durationBlockHour := time.Duration(conf.BlockHourDuration) * time.Hour
	if durationBlockHour <= 0 {
		durationBlockHour = 24 * time.Hour
	}
	durationFailLvl := time.Duration(conf.LevelDuration) * time.Second
	if durationFailLvl <= 0 {
		durationFailLvl = 30 * time.Minute
	}

	// Interceptor 在 current > limit 时拒绝, 第 limit 次失败触发
	failInterceptor := interceptor.NewInterceptor(rdb, window, int64(limit-1))

	return func(ctx context.Context, c *app.RequestContext) {
		ip := clientIP(c)

		// 先校验小时拦截策略
		if n, _ := rdb.Exists(ctx, interceptor.KeyPrefix+keyLoginBlockHour+ip).Result(); n > 0 {
			abortBlocked(c, fmt.Sprintf("too many login failures, please try again after %v hours", durationBlockHour.Hours()))
			return
		}
		// 再校验分钟拦截策略
		if n, _ := rdb.Exists(ctx, interceptor.KeyPrefix+keyLoginBlockMinute+ip).Result(); n > 0 {
			abortBlocked(c, fmt.Sprintf("too many login failures, please try again after %v minutes", durationBlockMin.Minutes()))
			return
		}

		c.Next(ctx)

		var r dto.CommonResp
		if err := json.Unmarshal(c.Response.Body(), &r); err != nil {
			hlog.CtxErrorf(ctx, "parse response body in login protection err: %v", err)
			return
		}
		if r.Success || int32(r.Code) != errs.Unauthorized.Code() {
			return
		}

		allowed, err := failInterceptor.Allow(ctx, keyLoginFail+ip)
		if err != nil {
			hlog.CtxErrorf(ctx, "login fail interceptor err: %v", err)
			return
		}
		if allowed {
			return
		}

		if lvl, _ := rdb.Exists(ctx, keyLoginFailLvl+ip).Result(); lvl > 0 {
			rdb.Set(ctx, interceptor.KeyPrefix+keyLoginBlockHour+ip, "1", durationBlockHour)
			hlog.CtxInfof(ctx, "login protection: IP %s blocked for %v (level 2)", ip, durationBlockHour)
			return
		}
		pipe := rdb.Pipeline()
		pipe.Set(ctx, interceptor.KeyPrefix+keyLoginBlockMinute+ip, "1", durationBlockMin)
		pipe.Set(ctx, keyLoginFailLvl+ip, "1", durationFailLvl)
		if _, err := pipe.Exec(ctx); err != nil {
			hlog.CtxErrorf(ctx, "set login block keys err: %v", err)
		}
		hlog.CtxInfof(ctx, "login protection: IP %s blocked for %v (level 1)", ip, durationBlockMin)
	}
}

func abortBlocked(c *app.RequestContext, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.CommonResp{
		Code:    int(errs.RequestBlocked.Code()),
		Message: msg,
		Success: false,
	})
}
