package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/justestif/go-ytmusic/internal/cache"
	"github.com/justestif/go-ytmusic/internal/catalog"
	"github.com/justestif/go-ytmusic/internal/config"
	"github.com/justestif/go-ytmusic/internal/db"
	"github.com/justestif/go-ytmusic/internal/innertube"
	"github.com/justestif/go-ytmusic/internal/session"
	"github.com/justestif/go-ytmusic/ytmusic"
)

// app holds the wired dependencies of a command.
type app struct {
	cfg     *config.Config
	client  *innertube.Client
	catalog *catalog.Service
	db      *db.DB
	closers []func() error
}

// newApp wires config into innertube, the optional Redis cache, the
// ytmusic client, the optional Postgres store and the catalog service, then
// initializes the session.
func newApp(ctx context.Context, cfg *config.Config, o *rootOptions) (*app, error) {
	logger := log.New(io.Discard, "", 0)
	if o.verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	a := &app{cfg: cfg}

	opts := []innertube.Option{
		innertube.WithLocale(cfg.GL, cfg.HL),
		innertube.WithCookies(cfg.Cookies),
		innertube.WithLogger(logger),
	}
	if cfg.Proxy != nil {
		opts = append(opts, innertube.WithProxy(cfg.Proxy))
	}
	if cfg.BaseURL != nil {
		opts = append(opts, innertube.WithBaseURL(cfg.BaseURL))
	}
	if store, err := cookieStore(cfg); err != nil {
		logger.Printf("cookies will not be persisted: %v", err)
	} else {
		opts = append(opts, innertube.WithCookieStore(store))
	}

	client, err := innertube.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating innertube client: %w", err)
	}
	if err := client.Initialize(ctx, false); err != nil {
		return nil, err
	}
	a.client = client

	var req ytmusic.Requester = client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)
		a.closers = append(a.closers, rdb.Close)
		req = cache.New(client, rdb, cache.WithTTL(cfg.CacheTTL), cache.WithLogger(logger))
	}

	svcOpts := []catalog.Option{
		catalog.WithCacheTTL(cfg.SnapshotTTL),
		catalog.WithLogger(logger),
		catalog.WithConcurrency(o.concurrency),
	}
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.closers = append(a.closers, func() error { database.Close(); return nil })
		if err := database.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.db = database
		svcOpts = append(svcOpts, catalog.WithStore(database.Entities()))
	}

	a.catalog = catalog.NewService(ytmusic.New(req, ytmusic.WithLogger(logger)), svcOpts...)
	return a, nil
}

func cookieStore(cfg *config.Config) (*session.CookieStore, error) {
	if cfg.CookieFile != "" {
		return session.NewCookieStore(cfg.CookieFile), nil
	}
	return session.DefaultCookieStore()
}

// Close releases Redis and Postgres connections.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}
