package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-diet-api/internal/auth"
	"daily-diet-api/internal/config"
	"daily-diet-api/internal/database"
	"daily-diet-api/internal/middleware"
	"daily-diet-api/internal/server"
	"daily-diet-api/internal/store"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the most recent migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := newLogger(cfg)
	gin.SetMode(cfg.GinMode)

	if *rollback {
		if err := database.Rollback(cfg.DatabaseURL, log); err != nil {
			log.WithError(err).Fatal("rollback")
		}
		return
	}

	if cfg.MigrateOnStart {
		if err := database.Migrate(cfg.DatabaseURL, log); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	tokenCfg := auth.DefaultTokenConfig(cfg.SessionSecret)
	tokenCfg.MaxAge = cfg.SessionMaxAge

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	defer authLimiter.Stop()

	router := server.NewRouter(server.Deps{
		Store:        store.New(db),
		TokenConfig:  tokenCfg,
		SecureCookie: cfg.CookieSecure,
		AuthLimiter:  authLimiter,
		Log:          log,
	})

	if err := server.Run(ctx, cfg, router, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
