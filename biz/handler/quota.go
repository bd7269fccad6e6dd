package handler

import (
	"context"

	"righttorecord/be/biz/middleware/auth"
	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/service/quota"
	"righttorecord/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
)

// StorageInfo 存储用量
//
//	@Tags			quota
//	@Summary		存储用量
//	@Description	usage is recomputed from stored chunks, 15 seconds each
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.CredentialReq	true	"credentials"
//	@Success		200	{object}	dto.CommonResp{data=dto.StorageInfoResp}
//	@Router			/storage_info [POST]
func (h *Handler) StorageInfo(ctx context.Context, c *app.RequestContext) {
	info, bizErr := h.quota.StorageInfo(ctx, auth.CurrentUser(c))
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.StorageInfoResp{
		StorageUsed:       info.UsedSeconds,
		StorageLimit:      info.LimitSeconds,
		StoragePercentage: info.Percentage,
		VideoCount:        info.SessionCount,
		SubscriptionTier:  info.Tier,
	})
}

// UpdateSubscription 更新订阅
//
//	@Tags			quota
//	@Summary		更新订阅
//	@Description	a transaction_jws, when present, must pass receipt verification
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.UpdateSubscriptionReq	true	"subscription and credentials"
//	@Success		200	{object}	dto.CommonResp{data=dto.UpdateSubscriptionResp}
//	@Failure		400	{object}	dto.CommonResp
//	@Router			/update_subscription [POST]
func (h *Handler) UpdateSubscription(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdateSubscriptionReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}

	sub, bizErr := h.quota.ApplySubscriptionUpdate(ctx, auth.CurrentUser(c).UserID, quota.SubscriptionUpdate{
		Tier:         req.SubscriptionTier,
		ProductID:    req.ProductID,
		ExpiresAt:    req.ExpiresAt,
		ReceiptToken: req.TransactionJWS,
	})
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	out := dto.UpdateSubscriptionResp{Tier: sub.Tier, StorageLimit: sub.LimitSeconds}
	if sub.ExpiresAt != nil {
		v := formatTime(*sub.ExpiresAt)
		out.ExpiresAt = &v
	}
	resp.SuccessResp(c, out)
}
