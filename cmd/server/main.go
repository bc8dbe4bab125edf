package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/gacha-sim/internal/game"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/pool"
	"github.com/xtding233/gacha-sim/internal/rpc"
	"github.com/xtding233/gacha-sim/internal/session"
)

type serverEnv struct {
	HTTPAddr       string        `env:"GACHASIM_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr       string        `env:"GACHASIM_GRPC_ADDR" envDefault:":9090"`
	ConfigDir      string        `env:"GACHASIM_CONFIG_DIR" envDefault:"configs"`
	Game           string        `env:"GACHASIM_GAME"`
	Pool           string        `env:"GACHASIM_POOL"`
	PoolFile       string        `env:"GACHASIM_POOL_FILE"`
	LogLevel       string        `env:"GACHASIM_LOG_LEVEL" envDefault:"info"`
	ReloadInterval time.Duration `env:"GACHASIM_RELOAD_INTERVAL" envDefault:"2s"`
}

func main() {
	var cfg serverEnv
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal("parse env", "err", err)
	}
	logger.Init(&logger.Options{Level: logger.ParseLevel(cfg.LogLevel)})

	loader := game.NewLoader(cfg.ConfigDir)
	_, params, err := loader.Resolve(cfg.Game, cfg.Pool, game.Overrides{})
	if err != nil {
		logger.Fatal("load config", "dir", cfg.ConfigDir, "game", cfg.Game, "pool", cfg.Pool, "err", err)
	}
	store := session.NewStore(params.Banners)

	var pools pool.Pools
	if cfg.PoolFile != "" {
		if pools, err = pool.Load(cfg.PoolFile); err != nil {
			logger.Fatal("load pools", "err", err)
		}
		if err := checkPools(pools, params.Banners); err != nil {
			logger.Fatal("invalid pool", "err", err)
		}
	}
	srv := newServer(store, pools)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := game.NewFileWatcher(loader.WatchList(cfg.Game, cfg.Pool), cfg.ReloadInterval, func(path string) {
		loader.Invalidate()
		_, next, err := loader.Resolve(cfg.Game, cfg.Pool, game.Overrides{})
		if err != nil {
			logger.Warn("config reload rejected, keeping previous", "path", path, "err", err)
			return
		}
		if err := srv.applyBanners(next.Banners); err != nil {
			logger.Warn("config reload rejected, keeping previous", "path", path, "err", err)
			return
		}
		logger.Info("config reloaded", "path", path, "version", next.Version)
	})
	watcher.Start(ctx)
	defer watcher.Stop()

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := grpc.NewServer()
	health := rpc.Register(grpcSrv, store)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen grpc", "addr", cfg.GRPCAddr, "err", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("grpc listening", "addr", lis.Addr().String())
		return grpcSrv.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		health.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		grpcSrv.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
