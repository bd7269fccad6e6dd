package trace

import (
	"context"

	"righttorecord/be/biz/util/id_gen"
	"righttorecord/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/app"
)

const (
	headerKeyLogId     = "X-Log-ID"
	headerKeyRequestId = "X-Request-ID"
)

func New() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		logID := c.Request.Header.Get(headerKeyLogId)
		if logID == "" {
			logID = c.Request.Header.Get(headerKeyRequestId)
		}
		if logID == "" {
			logID = id_gen.NewID()
		}
		c.Header(headerKeyLogId, logID)
		c.Next(trace_info.WithLogId(ctx, logID))
	}
}
