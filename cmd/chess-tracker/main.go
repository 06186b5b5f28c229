package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	appcfg "github.com/park285/chess-match-tracker/internal/config"
	"github.com/park285/chess-match-tracker/internal/obslog"
	"github.com/park285/chess-match-tracker/internal/trackerbuilder"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := trackerbuilder.New(ctx, cfg, obslog.L())
	if err != nil {
		obslog.L().Error("tracker_init_error", zap.Error(err))
		log.Fatalf("tracker init error: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			obslog.L().Warn("store_close_error", zap.Error(err))
		}
	}()

	a := newApp(deps, cfg, os.Stdout, obslog.L())
	if err := a.run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		obslog.L().Error("repl_error", zap.Error(err))
		log.Printf("input error: %v", err)
	}
}
