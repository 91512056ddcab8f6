package main

import (
	"flag"
	"os"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/libas-next/internal/app"
	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/models"
)

func main() {
	mode := flag.String("mode", "all", "run mode: all / api / worker")
	flag.Parse()

	cfg := config.Load()

	log := logger.Init(cfg.Server.Mode, logger.Options{
		Dir:        cfg.Log.Dir,
		Filename:   cfg.Log.Filename,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer func() { _ = log.Sync() }()

	if isWeakSecret(cfg.UserJWT.SecretKey) {
		logger.S().Fatalw("user_jwt.secret is missing or too weak, set a random value of at least 32 characters")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		logger.S().Fatalw("database init failed", "error", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.S().Fatalw("database migration failed", "error", err)
	}

	if username := os.Getenv("LIBAS_DEFAULT_ADMIN_USERNAME"); username != "" {
		err := models.InitDefaultAdmin(
			username,
			os.Getenv("LIBAS_DEFAULT_ADMIN_EMAIL"),
			os.Getenv("LIBAS_DEFAULT_ADMIN_PASSWORD"),
		)
		if err != nil {
			logger.S().Warnw("default admin init failed", "error", err)
		}
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	err := app.Run(app.Options{
		Config:  cfg,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    app.Mode(*mode),
	})
	if err != nil {
		logger.S().Fatalw("run failed", "error", err)
	}
}

func isWeakSecret(secret string) bool {
	s := strings.TrimSpace(secret)
	if len(s) < 32 {
		return true
	}
	switch strings.ToLower(s) {
	case "secret", "changeme", "please-change-me", "libas-secret":
		return true
	}
	return false
}
