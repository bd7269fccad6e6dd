package cors

import (
	"slices"
	"time"

	"righttorecord/be/biz/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/cors"
)

// New builds the CORS handler for the mobile and web clients. An empty
// origin list accepts every origin.
func New(corsConf config.CORSConf) app.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     defaultIfEmpty(corsConf.AllowMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowHeaders:     defaultIfEmpty(corsConf.AllowHeaders, []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", "X-Log-ID"}),
		AllowCredentials: corsConf.AllowCredentials,
		MaxAge:           time.Duration(corsConf.MaxAge) * time.Second,
	}

	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 12 * time.Hour
	}

	if len(corsConf.AllowOrigins) == 0 {
		cfg.AllowOriginFunc = allowAny
	} else if slices.Contains(corsConf.AllowOrigins, "*") {
		if corsConf.AllowCredentials {
			// 带凭证时不能返回 *
			cfg.AllowOriginFunc = allowAny
		} else {
			cfg.AllowAllOrigins = true
		}
	} else {
		cfg.AllowOrigins = corsConf.AllowOrigins
	}

	return cors.New(cfg)
}

func defaultIfEmpty(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

func allowAny(string) bool {
	return true
}
