package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmto/dataflow/internal/modelhttp"
)

func startHTTPServer(addr string, snap *modelhttp.AtomicSnapshotter, token string, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	svc := modelhttp.NewService(snap)
	handler := modelhttp.NewHandler(svc, logger)
	auth := modelhttp.NewTokenAuthenticator(token)
	modelhttp.RegisterGinRoutes(engine, handler, logger, auth)

	srv := &http.Server{Addr: addr, Handler: engine}
	go func() {
		logger.Info("starting introspection HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()
	return srv
}

func shutdownHTTPServer(srv *http.Server, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown error", "error", err)
		return
	}
	logger.Info("http server shutdown gracefully")
}
