package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	be "righttorecord/be"
	"righttorecord/be/biz/config"
	"righttorecord/be/biz/util/logger"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	confPath := flagSet.StringP("config", "c", "conf/config.yaml", "path to the YAML config")
	envFile := flagSet.String("env-file", ".env", "dotenv file loaded before the config is expanded")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	conf, err := config.Load(*confPath, *envFile)
	if err != nil {
		return err
	}
	logger.Init(conf.Logger)

	ctx := context.Background()
	app, err := be.NewApp(ctx, conf)
	if err != nil {
		return err
	}

	h := be.NewEngine(app)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		if err := app.Close(); err != nil {
			hlog.CtxErrorf(ctx, "close app err: %v", err)
		}
	})

	hlog.Infof("listening on %s, storage driver %s", conf.Server.Addr, conf.Blob.Driver)
	// Spin 收到 SIGTERM 后优雅退出
	h.Spin()
	return nil
}
