package handler

import (
	"context"

	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
)

// MigratePin PIN 账号迁移
//
//	@Tags			migration
//	@Summary		PIN 账号迁移
//	@Description	moves an archived PIN account to email and passcode, keeping its user id
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.MigrateReq	true	"migration request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.MigrateResp}
//	@Failure		404	{object}	dto.CommonResp
//	@Failure		409	{object}	dto.CommonResp
//	@Router			/migrate_pin_to_email [POST]
func (h *Handler) MigratePin(ctx context.Context, c *app.RequestContext) {
	var req dto.MigrateReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}

	u, bizErr := h.migration.Migrate(ctx, req.Pin, req.Email, req.Password, req.FullName)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}
	resp.SuccessResp(c, dto.MigrateResp{UserID: u.UserID})
}

// CheckMigrationAvailable 是否可迁移
//
//	@Tags			migration
//	@Summary		是否可迁移
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.MigrationAvailableResp}
//	@Router			/check_migration_available [GET]
func (h *Handler) CheckMigrationAvailable(ctx context.Context, c *app.RequestContext) {
	a, bizErr := h.migration.Available(ctx)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	msg := "No PIN accounts found"
	if a.Available {
		msg = "PIN users can migrate to email/password accounts"
	}
	resp.SuccessResp(c, dto.MigrationAvailableResp{
		MigrationAvailable: a.Available,
		OldUsersCount:      a.LegacyCount,
		Message:            msg,
	})
}
