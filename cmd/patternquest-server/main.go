// patternquest-server 以 HTTP JSON 接口提供全部小游戏
//
// 配置来自环境变量（PQ_HTTP_ADDR、PQ_LOG_LEVEL、PQ_SEED、PQ_DATA_DIR 等）。
// 未设置 PQ_DATA_DIR 时从工作目录下的 data/ 读取内容。
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/patternquest/pkg/api"
	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.For("server")

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	content, err := cfg.LoadContent()
	if err != nil {
		log.WithError(err).Fatal("load content")
	}

	profiles := game.NewProfileManager(content)
	if _, err := profiles.Ensure(cfg.Profile); err != nil {
		log.WithError(err).Fatal("create default profile")
	}

	// 设置存储不可用时退回内存设置
	var settings *game.SettingsManager
	store, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		log.WithError(err).Warn("settings storage unavailable")
		settings = game.NewSettingsManager(nil)
	} else {
		settings = game.NewSettingsManager(store)
	}

	srv := api.NewServer(content, profiles, api.Options{
		Seed:     cfg.Seed,
		Settings: settings,
		Recorder: metrics.NewRecorder(true),
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("serve")
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}
}
