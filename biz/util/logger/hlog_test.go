package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/util/id_gen"
	"righttorecord/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
)

func TestHlog(t *testing.T) {
	Init(config.LoggerConf{Level: "debug", Dir: t.TempDir()})

	ctx := trace_info.WithLogId(context.Background(), id_gen.NewID())

	hlog.CtxInfof(ctx, "test info data: %d, %s", 123, "ttt")
	hlog.CtxErrorf(ctx, "test error data: %d, %s", 123, "ttt")

	hlog.Infof("test info data: %d, %s", 123, "ttt")
	hlog.Errorf("test error data: %d, %s", 123, "ttt")
}

func TestLogger_LogID(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetLevel(hlog.LevelInfo)

	ctx := trace_info.WithLogId(context.Background(), "log-1")
	l.CtxInfof(ctx, "chunk %d stored", 3)
	l.CtxDebugf(ctx, "suppressed")

	var line map[string]any
	assert.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "log-1", line["log_id"])
	assert.Equal(t, "chunk 3 stored", line["msg"])
	assert.Equal(t, "info", line["level"])
}
