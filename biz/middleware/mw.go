package middleware

import (
	"righttorecord/be/biz/config"
	"righttorecord/be/biz/middleware/accesslog"
	"righttorecord/be/biz/middleware/cors"
	"righttorecord/be/biz/middleware/ratelimit"
	"righttorecord/be/biz/middleware/recovery"
	"righttorecord/be/biz/middleware/trace"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/redis/go-redis/v9"
)

// Suite is the global chain. Path rate limits need Redis and are left out
// without it.
func Suite(conf *config.ServiceConf, rdb redis.UniversalClient) []app.HandlerFunc {
	mws := []app.HandlerFunc{
		recovery.New(),      // panic handler
		trace.New(),         // 链路ID
		accesslog.New(),     // 接口日志
		cors.New(conf.CORS), // 跨域请求
	}
	if rdb != nil {
		mws = append(mws, ratelimit.New(rdb, conf.RateLimit)) // 限流
	}
	return mws
}

// LoginGuard is the per-IP failure block for the login route.
func LoginGuard(conf *config.ServiceConf, rdb redis.UniversalClient) []app.HandlerFunc {
	if rdb == nil {
		return nil
	}
	return []app.HandlerFunc{ratelimit.NewLoginProtection(rdb, conf.LoginProtection)}
}

// RegisterGuard is the per-IP cool-down for account creation routes.
func RegisterGuard(conf *config.ServiceConf, rdb redis.UniversalClient) []app.HandlerFunc {
	if rdb == nil {
		return nil
	}
	return []app.HandlerFunc{ratelimit.NewRegisterProtection(rdb, conf.RegisterProtection)}
}
