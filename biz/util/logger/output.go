package logger

import (
	"io"
	"os"
	"path/filepath"

	"righttorecord/be/biz/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newOutput(conf config.LoggerConf) io.Writer {
	if conf.Dir == "" {
		return os.Stdout
	}

	filename := conf.FileName
	if filename == "" {
		filename = "hertz.log"
	}

	maxSize := conf.MaxSize
	if maxSize == 0 {
		maxSize = 512
	}

	maxBackups := conf.MaxBackups
	if maxBackups == 0 {
		maxBackups = 10
	}

	maxAge := conf.MaxAge
	if maxAge == 0 {
		maxAge = 14
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(conf.Dir, filename),
		MaxSize:    maxSize,
		MaxAge:     maxAge,
		MaxBackups: maxBackups,
		LocalTime:  true,
		Compress:   false,
	}
	if conf.Stdout {
		return io.MultiWriter(os.Stdout, file)
	}
	return file
}

func newLevel(conf config.LoggerConf) hlog.Level {
	switch conf.Level {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "info":
		return hlog.LevelInfo
	case "notice":
		return hlog.LevelNotice
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	case "fatal":
		return hlog.LevelFatal
	}

	return hlog.LevelInfo
}
