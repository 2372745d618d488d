package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/config"
	"github.com/xtding233/formula-front/internal/game"
	"github.com/xtding233/formula-front/internal/player"
	"github.com/xtding233/formula-front/internal/server"
)

func main() {
	cfgPath := flag.String("config", config.GetEnvDefault("FF_CONFIG", "server.yaml"), "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "server exited", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	lvl, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(ctx context.Context, cfg config.Config) error {
	var (
		cat    *catalog.Catalog
		loader *catalog.Loader
		err    error
	)
	if cfg.CatalogDir != "" {
		loader = catalog.NewLoader(cfg.CatalogDir)
		slog.InfoContext(ctx, "catalog source", "base", loader.Paths().BasePath(), "overlays", loader.Paths().OverlayDir())
		cat, err = loader.Load()
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "catalog loaded", "version", cat.Version(), "parts", len(cat.Parts()), "missions", len(cat.Missions()))

	store := player.NewFileStore(cfg.SavePath)
	svc, err := game.New(cat, store, slog.Default())
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "save loaded", "path", store.Path(), "player", svc.State().Player.ID)

	health := server.NewHealth()
	health.SetServing(true)

	if loader != nil {
		w := catalog.NewWatcher(loader, cfg.ReloadInterval, func(c *catalog.Catalog, err error) {
			if err == nil {
				err = svc.SwapCatalog(c)
			}
			if err != nil {
				slog.WarnContext(ctx, "catalog reload rejected", "err", err)
				health.SetServing(false)
				return
			}
			health.SetServing(true)
		})
		go w.Run(ctx)
	}

	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return err
		}
		go func() {
			if err := health.Serve(lis); err != nil {
				slog.ErrorContext(ctx, "grpc health error", "err", err)
			}
		}()
		slog.InfoContext(ctx, "grpc health listening", "addr", cfg.GRPCAddr)
	}

	s := server.NewServer(cfg.HTTPAddr, svc, slog.Default(), cfg.StreamDelay)
	errc := make(chan error, 1)
	go func() {
		if err := s.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	slog.InfoContext(ctx, "server listening", "addr", s.Addr())

	select {
	case <-ctx.Done():
	case err := <-errc:
		return err
	}
	slog.InfoContext(ctx, "shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health.Shutdown(shutdownCtx)
	if err := s.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "graceful shutdown failed", "err", err)
		if err := s.Close(); err != nil {
			slog.ErrorContext(ctx, "forced close failed", "err", err)
		}
	}
	slog.InfoContext(ctx, "server shutdown complete")
	return nil
}
