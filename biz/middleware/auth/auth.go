// Package auth is the credential gate in front of every authenticated route.
// Mobile clients send email and passcode with each request, as JSON or form
// fields.
package auth

import (
	"context"
	"net/http"
	"strings"

	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/resp"
	"righttorecord/be/biz/util/trace_info"
	"righttorecord/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const userKey = "auth_user"

type Authenticator interface {
	AuthenticateForRequest(ctx context.Context, email, passcode string) (*domain.User, errs.Error)
}

func New(a Authenticator) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		var req dto.CredentialReq
		if err := c.Bind(&req); err != nil {
			hlog.CtxNoticef(ctx, "bind credential err: %v", err)
			resp.AbortWithErr(c, errs.ParamError.SetMsg("no data provided"), http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(req.Email)
		passcode := strings.TrimSpace(req.Password)
		if email == "" || passcode == "" {
			resp.AbortWithErr(c, errs.ParamError.SetMsg("email and password required"), http.StatusBadRequest)
			return
		}
		if !validate.IsPasscode(passcode) {
			resp.AbortWithErr(c, errs.ParamError.SetMsg("password must be exactly 6 digits"), http.StatusBadRequest)
			return
		}

		u, bizErr := a.AuthenticateForRequest(ctx, email, passcode)
		if bizErr != nil {
			resp.AbortWithErr(c, bizErr, resp.HTTPStatus(bizErr))
			return
		}

		c.Set(userKey, u)
		c.Next(trace_info.WithUserId(ctx, u.UserID))
	}
}

// CurrentUser returns the user resolved by the gate, or nil outside it.
func CurrentUser(c *app.RequestContext) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
