package ratelimit

import (
	"context"
	"testing"
	"time"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/model/dto"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/interceptor"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
)

func TestRegisterProtection(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mw := NewRegisterProtection(rdb, config.RegisterProtectionConf{BlockMinutes: 10})
	ctx := context.Background()
	clientIP := "127.0.0.1"

	success := &dto.CommonResp{Success: true, Code: 0}
	failed := &dto.CommonResp{Success: false, Code: int(errs.ParamError.Code())}

	t.Run("block after success", func(t *testing.T) {
		mr.FlushAll()

		c := newRequest("/register", clientIP, success)
		mw(ctx, c)
		assert.False(t, c.IsAborted())

		exists, _ := rdb.Exists(ctx, interceptor.KeyPrefix+keyRegisterBlock+clientIP).Result()
		assert.Equal(t, int64(1), exists)

		c = newRequest("/register", clientIP, nil)
		mw(ctx, c)
		assert.True(t, c.IsAborted())
		assert.Equal(t, consts.StatusForbidden, c.Response.StatusCode())
		assert.Contains(t, string(c.Response.Body()), "10 minutes")
	})

	t.Run("failure does not block", func(t *testing.T) {
		mr.FlushAll()

		c := newRequest("/register", clientIP, failed)
		mw(ctx, c)
		assert.False(t, c.IsAborted())

		exists, _ := rdb.Exists(ctx, interceptor.KeyPrefix+keyRegisterBlock+clientIP).Result()
		assert.Equal(t, int64(0), exists)

		c = newRequest("/register", clientIP, success)
		mw(ctx, c)
		assert.False(t, c.IsAborted())
	})

	t.Run("different ip", func(t *testing.T) {
		mr.FlushAll()

		mw(ctx, newRequest("/register", "1.1.1.1", success))
		c := newRequest("/register", "2.2.2.2", success)
		mw(ctx, c)
		assert.False(t, c.IsAborted())
	})

	t.Run("block expires", func(t *testing.T) {
		mr.FlushAll()

		mw(ctx, newRequest("/register", clientIP, success))
		mr.FastForward(11 * time.Minute)
		c := newRequest("/register", clientIP, nil)
		mw(ctx, c)
		assert.False(t, c.IsAborted())
	})
}
