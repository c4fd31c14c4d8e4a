package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "milecompare/internal/adapters/http_server"
	"milecompare/internal/adapters/observability"
	"milecompare/internal/adapters/offers"
	redisad "milecompare/internal/adapters/redis"
	"milecompare/internal/app"
	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
	"milecompare/internal/reference"
	"milecompare/internal/registry"
	"milecompare/internal/shared"
	mysqlrepo "milecompare/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// registry: built-in charts first, then anything newer from the store
	reg := registry.New(reference.DefaultCharts()...)
	commands := app.NewChartCommands(reg)
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		n, err := commands.LoadFromStore(ctx, mysqlrepo.New(db))
		if err != nil {
			log.Fatal().Err(err).Msg("loading mile charts failed")
		}
		_ = db.Close()
		log.Info().Int("charts", n).Msg("mile charts loaded from store")
	}
	log.Info().Int("programs", len(reg.Programs())).Msg("chart registry ready")

	// cache is optional; a dead redis is not worth refusing to start over
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; running without cache")
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	source, err := offers.New(cfg.OffersBase, cfg.OffersKey, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize offers client")
	}

	search := app.NewSearchService(source, cache, pipeline.New(reg), cfg.UpstreamTimeout, cfg.CacheTTL)

	// http
	srv := server.New(cfg.UpstreamTimeout + 15*time.Second)
	metricsReg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(metricsReg))
	srv.MountHandlers(&server.Handlers{
		Search:   search,
		Charts:   app.NewChartQueries(reg),
		Commands: commands,
	})
	observability.Serve(cfg.MetricsAddr, metricsReg)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("upstream", cfg.OffersBase).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Bool("cache", cache != nil).
		Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
