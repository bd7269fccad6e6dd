package resp

import (
	"net/http"

	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/app"
)

var statusByCode = map[int32]int{
	errs.ParamError.Code():      http.StatusBadRequest,
	errs.Unauthorized.Code():    http.StatusUnauthorized,
	errs.RateLimited.Code():     http.StatusTooManyRequests,
	errs.TooManyRequest.Code():  http.StatusTooManyRequests,
	errs.RequestBlocked.Code():  http.StatusForbidden,
	errs.Conflict.Code():        http.StatusConflict,
	errs.UserNotExist.Code():    http.StatusNotFound,
	errs.NotFound.Code():        http.StatusNotFound,
	errs.QuotaExceeded.Code():   http.StatusPaymentRequired,
	errs.InvalidReceipt.Code():  http.StatusBadRequest,
	errs.ServerError.Code():     http.StatusInternalServerError,
}

// HTTPStatus maps a business error to the status code clients see.
func HTTPStatus(bizErr errs.Error) int {
	if bizErr == nil {
		return http.StatusOK
	}
	if code, ok := statusByCode[bizErr.Code()]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func respWithErr(c *app.RequestContext, data any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, &dto.CommonResp{
			Success: true,
			Code:    int(errs.Success.Code()),
			Message: errs.Success.Msg(),
			Data:    data,
		})
		return
	}

	if bizErr, ok := err.(errs.Error); ok {
		c.JSON(HTTPStatus(bizErr), &dto.CommonResp{
			Success: false,
			Code:    int(bizErr.Code()),
			Message: bizErr.Msg(),
			Data:    data,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, &dto.CommonResp{
		Success: false,
		Code:    int(errs.ServerError.Code()),
		Message: errs.ServerError.Msg(),
	})
}

func SuccessResp(c *app.RequestContext, data any) {
	respWithErr(c, data, nil)
}

func FailResp(c *app.RequestContext, bizErr errs.Error) {
	respWithErr(c, nil, bizErr)
}

// FailRespWithData keeps data in the envelope of a failed response.
func FailRespWithData(c *app.RequestContext, bizErr errs.Error, data any) {
	respWithErr(c, data, bizErr)
}

func AbortWithErr(c *app.RequestContext, bizErr errs.Error, httpCode int) {
	c.AbortWithStatusJSON(httpCode, &dto.CommonResp{
		Success: false,
		Code:    int(bizErr.Code()),
		Message: bizErr.Msg(),
	})
}
