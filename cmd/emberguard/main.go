package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	adapthttp "emberguard/internal/adapter/http"
	"emberguard/internal/adapter/memory"
	"emberguard/internal/adapter/postgres"
	adaptredis "emberguard/internal/adapter/redis"
	"emberguard/internal/adapter/static"
	"emberguard/internal/app"
	"emberguard/internal/config"
	"emberguard/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal(err)
	}
	log.Info("stopped")
}

// run wires the adapters and serves until ctx is cancelled. Stores are closed
// only after in-flight requests have drained.
func run(ctx context.Context, cfg config.Config) error {
	var (
		source   domain.CatalogSource = static.New()
		users    domain.UserRepository
		sessions domain.SessionRepository
	)

	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer func() { _ = pg.Close() }()

		seed, err := static.New().LoadCatalog(ctx)
		if err != nil {
			return fmt.Errorf("embedded catalog: %w", err)
		}
		seeded, err := pg.SeedCatalog(ctx, seed)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if seeded {
			log.Info("seeded catalog tables from embedded catalog")
		}
		source, users, sessions = pg, pg, postgres.NewSessionRepo(pg)
	}

	catalog, err := source.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	warnings, err := catalog.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.WithField("catalog", "warning").Warn(w)
	}
	log.WithFields(log.Fields{
		"products": len(catalog.Products),
		"bundles":  len(catalog.Bundles),
		"tasks":    len(catalog.Tasks),
	}).Info("catalog loaded")

	mem := memory.New(catalog.Tasks)
	if users == nil {
		users = mem
		sessions = mem.NewSessionRepo()
	}

	if cfg.RedisURL != "" {
		rc, err := adaptredis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		sessions = adaptredis.NewSessionRepo(rc)
		log.Info("login sessions stored in redis")
	}

	authSvc := app.NewAuthService(users, sessions).WithSessionTTL(cfg.SessionTTL)
	srv := adapthttp.New(adapthttp.Services{
		Catalog:  app.NewCatalogService(catalog),
		Carts:    app.NewCartService(catalog, mem),
		Tasks:    app.NewTaskService(catalog, mem),
		Checkout: app.NewCheckoutService(mem),
		Auth:     authSvc,
	}, cfg.WebDir)

	if cfg.OIDC.Enabled() {
		oidcCfg, err := adapthttp.DiscoverOIDC(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return fmt.Errorf("sso: %w", err)
		}
		srv.WithOIDC(oidcCfg)
		log.WithField("issuer", cfg.OIDC.Issuer).Info("sso enabled")
	}
	if cfg.TrustRemoteUser {
		srv.WithForwardAuth()
	}

	go app.NewJanitor(mem, sessions, cfg.WorkspaceIdleTTL, cfg.SweepInterval).Run(ctx)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.WithField("addr", ln.Addr().String()).Info("listening")
	return serve(ctx, httpSrv, ln, shutdownTimeout)
}

const shutdownTimeout = 10 * time.Second

// serve runs srv on ln until ctx is cancelled, then shuts it down and returns
// once in-flight requests have finished or grace has elapsed.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func setupLogging(cfg config.Config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
