package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"righttorecord/be/biz/middleware/auth"
	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const chunkContentType = "video/quicktime"

// Upload 上传视频分片
//
//	@Tags			recording
//	@Summary		上传视频分片
//	@Description	multipart upload of one chunk; the session is created on its first chunk
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			email			formData	string	true	"email"
//	@Param			password		formData	string	true	"6 digit passcode"
//	@Param			session_id		formData	string	true	"session id"
//	@Param			chunk_number	formData	int		false	"chunk index, default 0"
//	@Param			video			formData	file	true	"chunk file"
//	@Success		200				{object}	dto.CommonResp{data=dto.UploadResp}
//	@Failure		402				{object}	dto.CommonResp
//	@Router			/upload [POST]
func (h *Handler) Upload(ctx context.Context, c *app.RequestContext) {
	var req dto.UploadReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}
	index := 0
	if req.ChunkNumber != "" {
		n, err := strconv.Atoi(req.ChunkNumber)
		if err != nil {
			resp.AbortWithErr(c, errs.ParamError.SetMsg("invalid chunk_number"), http.StatusBadRequest)
			return
		}
		index = n
	}

	fh, err := c.FormFile("video")
	if err != nil {
		resp.AbortWithErr(c, errs.ParamError.SetMsg("no video file provided"), http.StatusBadRequest)
		return
	}
	if fh.Size == 0 {
		resp.AbortWithErr(c, errs.ParamError.SetMsg("empty file"), http.StatusBadRequest)
		return
	}

	u := auth.CurrentUser(c)
	if bizErr := h.quota.CheckUploadAllowed(ctx, u); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	f, err := fh.Open()
	if err != nil {
		hlog.CtxErrorf(ctx, "open uploaded file err: %v", err)
		resp.FailResp(c, errs.ServerError)
		return
	}
	defer f.Close()

	info, bizErr := h.recordings.RecordChunk(ctx, u.UserID, req.SessionID, index, f)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.UploadResp{
		Filename:    info.Filename,
		SessionID:   req.SessionID,
		ChunkNumber: index,
		FileSize:    info.Size,
	})
}

// Videos 录像列表
//
//	@Tags			recording
//	@Summary		录像列表
//	@Description	sessions newest first, chunk counts taken from storage
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.CredentialReq	true	"credentials"
//	@Success		200	{object}	dto.CommonResp{data=dto.VideosResp}
//	@Router			/videos [POST]
func (h *Handler) Videos(ctx context.Context, c *app.RequestContext) {
	u := auth.CurrentUser(c)
	sessions, bizErr := h.recordings.ListSessions(ctx, u.UserID)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	items := make([]dto.VideoItem, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, dto.VideoItem{
			SessionID:   s.SessionID,
			SessionName: s.Label,
			ChunkCount:  s.ChunkCount,
			Date:        formatTime(s.CreatedAt),
			CreatedAt:   s.CreatedAt.Unix(),
		})
	}
	resp.SuccessResp(c, dto.VideosResp{Videos: items})
}

// Download 获取分片下载地址
//
//	@Tags			recording
//	@Summary		获取分片下载地址
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string				true	"session id"
//	@Param			req			body		dto.CredentialReq	true	"credentials"
//	@Success		200			{object}	dto.CommonResp{data=dto.DownloadResp}
//	@Failure		404			{object}	dto.CommonResp
//	@Router			/download/{session_id} [POST]
func (h *Handler) Download(ctx context.Context, c *app.RequestContext) {
	u := auth.CurrentUser(c)
	sessionID := c.Param("session_id")

	chunks, bizErr := h.recordings.PrepareDownload(ctx, u.UserID, sessionID)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	items := make([]dto.ChunkItem, 0, len(chunks))
	for _, ch := range chunks {
		items = append(items, dto.ChunkItem{
			Filename:    ch.Filename,
			DownloadURL: ch.URL,
			Order:       ch.Order,
			Size:        ch.Size,
		})
	}
	resp.SuccessResp(c, dto.DownloadResp{Chunks: items, TotalChunks: len(items), SessionID: sessionID})
}

// DownloadChunk 下载分片
//
//	@Tags			recording
//	@Summary		下载分片
//	@Description	streams one chunk; the token comes from /download
//	@Produce		octet-stream
//	@Param			user_id		path		string	true	"user id"
//	@Param			session_id	path		string	true	"session id"
//	@Param			filename	path		string	true	"chunk filename"
//	@Param			token		query		string	true	"download token"
//	@Success		200			{file}		file
//	@Failure		401			{object}	dto.CommonResp
//	@Failure		404			{object}	dto.CommonResp
//	@Router			/download_chunk/{user_id}/{session_id}/{filename} [GET]
func (h *Handler) DownloadChunk(ctx context.Context, c *app.RequestContext) {
	userID := c.Param("user_id")
	sessionID := c.Param("session_id")
	filename := c.Param("filename")

	rc, size, bizErr := h.recordings.OpenChunk(ctx, userID, sessionID, filename, c.Query("token"))
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}
	// 注销账号后已签发的链接失效
	if _, bizErr := h.users.GetByUserID(ctx, userID); bizErr != nil {
		rc.Close()
		resp.FailResp(c, bizErr)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.SetContentType(chunkContentType)
	c.SetStatusCode(http.StatusOK)
	// hertz 写完后关闭 rc
	c.SetBodyStream(rc, int(size))
}

// Delete 删除录像
//
//	@Tags			recording
//	@Summary		删除录像
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.DeleteReq	true	"session id and credentials"
//	@Success		200	{object}	dto.CommonResp{data=dto.DeleteResp}
//	@Failure		404	{object}	dto.CommonResp
//	@Router			/delete [POST]
func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	var req dto.DeleteReq
	if !bindAndValidate(ctx, c, &req) {
		return
	}
	u := auth.CurrentUser(c)

	if bizErr := h.recordings.DeleteSession(ctx, u.UserID, req.SessionID); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}
	resp.SuccessResp(c, dto.DeleteResp{Message: fmt.Sprintf("session %s deleted successfully", req.SessionID)})
}
