package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radioboard/board"
	"radioboard/config"
	"radioboard/handler"
	"radioboard/logger"
	"radioboard/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("time zone", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		slog.Error("db setup failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	h := handler.Handler{
		Board:       board.New(db, func() time.Time { return time.Now().In(loc) }),
		Programs:    cfg.Registry(),
		Store:       db,
		FlashSecret: cfg.Server.FlashSecret,
	}
	e, err := h.NewServer(cfg.Auth)
	if err != nil {
		slog.Error("server setup failed", "err", err)
		os.Exit(1)
	}
	e.Debug = cfg.IsDev()

	go func() {
		if err := start(e, cfg); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}

// start listens on the configured address, or serves HTTPS with Let's Encrypt
// certificates when no address is set.
func start(e *echo.Echo, cfg *config.Config) error {
	if addr := cfg.Server.Address; addr != "" {
		slog.Info("server starting", "addr", addr, "env", cfg.Env)
		return e.Start(addr)
	}

	// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
	e.AutoTLSManager.Cache = autocert.DirCache(cfg.Server.CertCache)
	if onlyHost := cfg.Server.WhitelistHost; onlyHost != "" {
		e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(onlyHost)
	}
	e.Pre(middleware.HTTPSRedirect())
	slog.Info("server starting", "addr", ":443", "env", cfg.Env)
	return e.StartAutoTLS(":443")
}
