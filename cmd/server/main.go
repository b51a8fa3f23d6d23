package main

import (
	"SpindleTracker/internal/config"
	"SpindleTracker/internal/handlers"
	"SpindleTracker/internal/middleware"
	"SpindleTracker/internal/netinfo"
	"SpindleTracker/internal/repo"
	"SpindleTracker/internal/service"
	"SpindleTracker/internal/session"
	"SpindleTracker/internal/view"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	cleanupInterval = 10 * time.Minute
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var storeOpts []repo.Option
	if cfg.StoreWriteLock {
		storeOpts = append(storeOpts, repo.WithWriteLock())
	}
	spindleStore, spareStore, err := repo.OpenStores(cfg.DataDir, storeOpts...)
	if err != nil {
		sugar.Fatalw("failed to open record stores", "dir", cfg.DataDir, "error", err)
	}
	spindleRepo := repo.NewSpindleRepository(spindleStore)
	spareRepo := repo.NewSpareRepository(spareStore)

	sessions := session.NewMemoryStore(cfg.SessionTTL)
	authService, err := service.NewAuthService(cfg.Username, cfg.Password, sessions)
	if err != nil {
		sugar.Fatalw("failed to init auth", "error", err)
	}

	renderer, err := view.New()
	if err != nil {
		sugar.Fatalw("failed to parse templates", "error", err)
	}

	h := handlers.NewHandler(handlers.Services{
		Spindles: service.NewSpindleService(spindleRepo, sugar),
		Spares:   service.NewSpareService(spareRepo, sugar),
		Export:   service.NewExportService(spindleRepo, spareRepo),
		Auth:     authService,
	}, sessions, renderer, sugar, cfg)

	sugar.Infow("Config",
		"Addr", cfg.Addr,
		"DataDir", cfg.DataDir,
		"StoreWriteLock", cfg.StoreWriteLock,
		"SessionTTL", cfg.SessionTTL,
	)

	srv := &http.Server{Addr: cfg.Addr, Handler: h.Router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("Starting server", "addr", "http://"+cfg.Addr)
		logLANAddresses(sugar, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				if n := sessions.Cleanup(now); n > 0 {
					sugar.Debugw("expired sessions removed", "count", n)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		sugar.Errorw("Server failed", "error", err)
		return
	}
	sugar.Infow("Server stopped")
}

func logLANAddresses(sugar *zap.SugaredLogger, port int) {
	addrs, err := netinfo.LANAddresses()
	if err != nil {
		sugar.Warnw("failed to list network interfaces", "error", err)
		return
	}
	if len(addrs) == 0 {
		sugar.Infow("No LAN IPv4 detected; check network adapter status.")
		return
	}
	for _, ip := range addrs {
		sugar.Infow("LAN", "url", "http://"+ip+":"+strconv.Itoa(port))
	}
}
