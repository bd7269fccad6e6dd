package handler

import (
	"context"

	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
)

// Stats 服务统计
//
//	@Tags			server
//	@Summary		服务统计
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.StatsResp}
//	@Router			/stats [GET]
func (h *Handler) Stats(ctx context.Context, c *app.RequestContext) {
	st, bizErr := h.stats.Stats(ctx)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}
	resp.SuccessResp(c, dto.StatsResp{
		TotalUsers:      st.TotalUsers,
		TotalRecordings: st.TotalRecordings,
		ActiveUsers30d:  st.ActiveUsers30d,
		ServerStatus:    "running",
		Version:         Version,
	})
}

// Health 健康检查
//
//	@Tags			server
//	@Summary		健康检查
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.HealthResp}
//	@Failure		500	{object}	dto.CommonResp{data=dto.HealthResp}
//	@Router			/health [GET]
func (h *Handler) Health(ctx context.Context, c *app.RequestContext) {
	hs := h.stats.Health(ctx)
	out := dto.HealthResp{
		Status:   "healthy",
		Database: status(hs.Database),
		Storage:  status(hs.Storage),
		Version:  Version,
	}
	if !hs.OK() {
		out.Status = "unhealthy"
		resp.FailRespWithData(c, errs.ServerError, out)
		return
	}
	resp.SuccessResp(c, out)
}

// Ping 存活检查
//
//	@Tags			server
//	@Summary		存活检查
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.PingResp}
//	@Router			/test [GET]
func (h *Handler) Ping(_ context.Context, c *app.RequestContext) {
	resp.SuccessResp(c, dto.PingResp{
		Message: "RightToRecord Multi-User Server is running!",
		Version: Version,
		Status:  "ok",
	})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "connected"
}
