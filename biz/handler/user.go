package handler

import (
	"context"

	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
)

// Register 用户注册接口
//
//	@Tags			user
//	@Summary		用户注册接口
//	@Description	create an account with email and a 6 digit passcode
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.RegisterReq	true	"register request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.RegisterResp}
//	@Failure		400	{object}	dto.CommonResp
//	@Failure		409	{object}	dto.CommonResp
//	@Router			/register [POST]
func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req dto.RegisterReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}

	u, bizErr := h.users.Register(ctx, req.FullName, req.Email, req.Password)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.RegisterResp{UserID: u.UserID})
}

// Login 用户登录接口
//
//	@Tags			user
//	@Summary		用户登录接口
//	@Description	failures carry remaining_attempts; after 5 failures in 24h the email is rate limited
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.LoginReq	true	"login request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.LoginResp}
//	@Failure		401	{object}	dto.CommonResp{data=dto.LoginFailResp}
//	@Failure		429	{object}	dto.CommonResp{data=dto.LoginFailResp}
//	@Router			/login [POST]
func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}

	res, bizErr := h.users.Login(ctx, req.Email, req.Password, c.ClientIP())
	if bizErr != nil {
		if res == nil {
			resp.FailResp(c, bizErr)
			return
		}
		resp.FailRespWithData(c, bizErr, dto.LoginFailResp{
			RemainingAttempts: res.Remaining,
			RateLimited:       res.RateLimited,
		})
		return
	}

	resp.SuccessResp(c, dto.LoginResp{User: dto.UserSummary{
		ID:        res.User.UserID,
		Email:     res.User.Email,
		FullName:  res.User.FullName,
		CreatedAt: formatTime(res.User.CreatedAt),
	}})
}

// CheckAttempts 查询剩余登录次数
//
//	@Tags			user
//	@Summary		查询剩余登录次数
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.CheckAttemptsReq	true	"email"
//	@Success		200	{object}	dto.CommonResp{data=dto.CheckAttemptsResp}
//	@Router			/check_attempts [POST]
func (h *Handler) CheckAttempts(ctx context.Context, c *app.RequestContext) {
	var req dto.CheckAttemptsReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}

	remaining, limited, bizErr := h.users.CheckAttempts(ctx, req.Email)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.CheckAttemptsResp{
		RemainingAttempts: remaining,
		IsRateLimited:     limited,
		MaxAttemptsPerDay: h.users.MaxAttempts(),
	})
}
