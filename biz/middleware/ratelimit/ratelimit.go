package ratelimit

import (
	"context"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/interceptor"
	"righttorecord/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/redis/go-redis/v9"
)

// New throttles configured paths per client IP. Paths without a rule pass
// through.
func New(rdb redis.UniversalClient, confList []config.RateLimitConf) app.HandlerFunc {
	rules := make(map[string]*interceptor.Interceptor)
	for _, conf := range confList {
		if conf.Path != "" && conf.WindowSeconds > 0 && conf.Limit > 0 {
			rules[conf.Path] = interceptor.NewInterceptor(rdb, conf.WindowSeconds, conf.Limit)
		}
	}

	return func(ctx context.Context, c *app.RequestContext) {
		path := string(c.Request.URI().Path())
		r, ok := rules[path]
		if !ok {
			c.Next(ctx)
			return
		}

		key := path + ":" + clientIP(c)
		allowed, err := r.Allow(ctx, key)
		if err != nil {
			// Redis 故障时放行
			hlog.CtxErrorf(ctx, "rate limit error for key %s: %v", key, err)
			c.Next(ctx)
			return
		}
		if !allowed {
			resp.AbortWithErr(c, errs.TooManyRequest, consts.StatusTooManyRequests)
			return
		}

		c.Next(ctx)
	}
}

func clientIP(c *app.RequestContext) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
