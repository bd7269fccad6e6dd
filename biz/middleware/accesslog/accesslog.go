package accesslog

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/logger/accesslog"
)

// New logs one line per request. Query strings are left out since download
// links carry their token there.
func New() app.HandlerFunc {
	return accesslog.New(
		accesslog.WithAccessLogFunc(hlog.CtxInfof),
		accesslog.WithFormat("${status} ${latency} ${method} ${path} ${ip} ${bytesSent}"),
	)
}
