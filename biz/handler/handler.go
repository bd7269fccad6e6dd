package handler

import (
	"context"
	"net/http"
	"time"

	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/service/migration"
	"righttorecord/be/biz/service/quota"
	"righttorecord/be/biz/service/recording"
	"righttorecord/be/biz/service/stats"
	"righttorecord/be/biz/service/user"
	"righttorecord/be/biz/util/resp"
	"righttorecord/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const Version = "2.0"

type Handler struct {
	users      *user.Service
	recordings *recording.Service
	quota      *quota.Service
	migration  *migration.Service
	stats      *stats.Service
}

func New(users *user.Service, recordings *recording.Service, q *quota.Service,
	m *migration.Service, st *stats.Service) *Handler {
	return &Handler{users: users, recordings: recordings, quota: q, migration: m, stats: st}
}

// bindAndValidate binds JSON or form fields into req and checks its
// `validate` tags. It writes the 400 response itself.
func bindAndValidate(ctx context.Context, c *app.RequestContext, req any) bool {
	if err := c.Bind(req); err != nil {
		hlog.CtxNoticef(ctx, "Bind err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg("invalid request body"), http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(req); err != nil {
		hlog.CtxNoticef(ctx, "Validate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return false
	}
	return true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
