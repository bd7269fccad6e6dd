package logger

import (
	"context"
	"fmt"
	"io"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
)

// Init installs a logrus-backed hlog logger.
func Init(conf config.LoggerConf) {
	l := New(newOutput(conf))
	l.SetLevel(newLevel(conf))
	hlog.SetLogger(l)
}

// Logger adapts logrus to hlog.FullLogger, attaching the request log id.
type Logger struct {
	l *logrus.Logger
}

var _ hlog.FullLogger = (*Logger)(nil)

func New(out io.Writer) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(out)
	return &Logger{l: l}
}

func (l *Logger) SetOutput(w io.Writer) {
	l.l.SetOutput(w)
}

func (l *Logger) SetLevel(level hlog.Level) {
	var lv logrus.Level
	switch level {
	case hlog.LevelTrace:
		lv = logrus.TraceLevel
	case hlog.LevelDebug:
		lv = logrus.DebugLevel
	case hlog.LevelInfo, hlog.LevelNotice:
		lv = logrus.InfoLevel
	case hlog.LevelWarn:
		lv = logrus.WarnLevel
	case hlog.LevelError:
		lv = logrus.ErrorLevel
	case hlog.LevelFatal:
		lv = logrus.FatalLevel
	default:
		lv = logrus.InfoLevel
	}
	l.l.SetLevel(lv)
}

func (l *Logger) entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(l.l)
	if logID := trace_info.GetLogId(ctx); logID != "" {
		e = e.WithField("log_id", logID)
	}
	if userID := trace_info.GetUserId(ctx); userID != "" {
		e = e.WithField("user_id", userID)
	}
	return e.WithContext(ctx)
}

func (l *Logger) log(ctx context.Context, level logrus.Level, notice bool, msg string) {
	e := l.entry(ctx)
	if notice {
		e = e.WithField("notice", true)
	}
	e.Log(level, msg)
	if level == logrus.FatalLevel {
		l.l.Exit(1)
	}
}

func (l *Logger) Trace(v ...any)  { l.log(context.Background(), logrus.TraceLevel, false, fmt.Sprint(v...)) }
func (l *Logger) Debug(v ...any)  { l.log(context.Background(), logrus.DebugLevel, false, fmt.Sprint(v...)) }
func (l *Logger) Info(v ...any)   { l.log(context.Background(), logrus.InfoLevel, false, fmt.Sprint(v...)) }
func (l *Logger) Notice(v ...any) { l.log(context.Background(), logrus.InfoLevel, true, fmt.Sprint(v...)) }
func (l *Logger) Warn(v ...any)   { l.log(context.Background(), logrus.WarnLevel, false, fmt.Sprint(v...)) }
func (l *Logger) Error(v ...any)  { l.log(context.Background(), logrus.ErrorLevel, false, fmt.Sprint(v...)) }
func (l *Logger) Fatal(v ...any)  { l.log(context.Background(), logrus.FatalLevel, false, fmt.Sprint(v...)) }

func (l *Logger) Tracef(format string, v ...any) {
	l.log(context.Background(), logrus.TraceLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...any) {
	l.log(context.Background(), logrus.DebugLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) Infof(format string, v ...any) {
	l.log(context.Background(), logrus.InfoLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) Noticef(format string, v ...any) {
	l.log(context.Background(), logrus.InfoLevel, true, fmt.Sprintf(format, v...))
}

func (l *Logger) Warnf(format string, v ...any) {
	l.log(context.Background(), logrus.WarnLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) Errorf(format string, v ...any) {
	l.log(context.Background(), logrus.ErrorLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) Fatalf(format string, v ...any) {
	l.log(context.Background(), logrus.FatalLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxTracef(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.TraceLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxDebugf(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.DebugLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxInfof(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.InfoLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxNoticef(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.InfoLevel, true, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxWarnf(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.WarnLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxErrorf(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.ErrorLevel, false, fmt.Sprintf(format, v...))
}

func (l *Logger) CtxFatalf(ctx context.Context, format string, v ...any) {
	l.log(ctx, logrus.FatalLevel, false, fmt.Sprintf(format, v...))
}
