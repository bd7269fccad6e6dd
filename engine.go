package be

import (
	"righttorecord/be/biz/middleware"
	"righttorecord/be/biz/middleware/auth"
	_ "righttorecord/be/docs"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/hertz-contrib/swagger"
	swaggerFiles "github.com/swaggo/files"
)

// NewEngine registers middleware and routes on a new hertz server.
func NewEngine(a *App, opts ...hertzconfig.Option) *server.Hertz {
	opts = append([]hertzconfig.Option{
		server.WithHostPorts(a.Conf.Server.Addr),
		server.WithMaxRequestBodySize(a.Conf.Server.MaxUploadMB << 20),
	}, opts...)
	h := server.New(opts...)
	h.Use(middleware.Suite(a.Conf, a.Redis)...)
	register(h, a)
	return h
}

func register(h *server.Hertz, a *App) {
	hd := a.Handler
	loginGuard := middleware.LoginGuard(a.Conf, a.Redis)
	registerGuard := middleware.RegisterGuard(a.Conf, a.Redis)

	h.POST("/register", append(registerGuard, hd.Register)...)
	h.POST("/login", append(loginGuard, hd.Login)...)
	h.POST("/check_attempts", hd.CheckAttempts)
	h.POST("/migrate_pin_to_email", append(registerGuard, hd.MigratePin)...)
	h.GET("/check_migration_available", hd.CheckMigrationAvailable)

	// 凭证随每个请求携带
	authed := h.Group("/", auth.New(a.Users))
	authed.POST("/upload", hd.Upload)
	authed.POST("/videos", hd.Videos)
	authed.POST("/download/:session_id", hd.Download)
	authed.POST("/delete", hd.Delete)
	authed.POST("/storage_info", hd.StorageInfo)
	authed.POST("/update_subscription", hd.UpdateSubscription)

	h.GET("/download_chunk/:user_id/:session_id/:filename", hd.DownloadChunk)

	h.GET("/stats", hd.Stats)
	h.GET("/health", hd.Health)
	h.GET("/test", hd.Ping)

	h.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler))
}
