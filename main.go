package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/config"
	"github.com/padraicbc/concursos/db"
	"github.com/padraicbc/concursos/handlers"
	applog "github.com/padraicbc/concursos/logger"
	"github.com/padraicbc/concursos/media"
	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
	"github.com/padraicbc/concursos/store/memory"
	"github.com/padraicbc/concursos/web"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	var st store.Store
	if cfg.DBDriver == config.DriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		st = memory.New()
	} else {
		bdb, err := db.Setup(cfg)
		if err != nil {
			logger.Fatal("database setup failed", zap.Error(err))
		}
		defer bdb.Close()

		if err := db.CreateTables(context.Background(), bdb); err != nil {
			logger.Fatal("create tables failed", zap.Error(err))
		}
		st = db.NewStore(bdb)
	}

	storage, err := media.New(cfg)
	if err != nil {
		logger.Fatal("image storage setup failed", zap.Error(err))
	}

	roles := auth.NewRoles(cfg.AdminRoles...)
	svc := services.New(st, storage, services.Options{
		RequireAdminWrites: cfg.RequireAdminWrites,
		SessionKey:         cfg.SessionKey(),
		Roles:              roles,
		Logger:             logger,
	})

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("parse templates failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))
	e.Use(mw.Session(auth.NewResolver(cfg.SessionKey(), roles)))
	e.Use(mw.Gate(cfg.AdminPrefixes, "/"))

	handlers.New(svc, logger, !cfg.Debug).Register(e)
	web.New(svc).Register(e)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	logger.Info("starting server", zap.String("mode", "tls"), zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
