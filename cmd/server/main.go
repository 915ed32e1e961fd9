package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"targetonchain/internal/attestation"
	attmetrics "targetonchain/internal/attestation/metrics"
	"targetonchain/internal/composer"
	"targetonchain/internal/farcaster"
	framehandler "targetonchain/internal/frame/handler"
	framemetrics "targetonchain/internal/frame/metrics"
	frameservice "targetonchain/internal/frame/service"
	framestore "targetonchain/internal/frame/store"
	"targetonchain/internal/media"
	"targetonchain/internal/platform/config"
	"targetonchain/internal/platform/database"
	"targetonchain/internal/platform/health"
	"targetonchain/internal/platform/httpserver"
	"targetonchain/internal/platform/logger"
	"targetonchain/internal/platform/tracer"
	productstore "targetonchain/internal/product/store"
	"targetonchain/internal/recommendation"
	"targetonchain/internal/seeder"
	"targetonchain/internal/storefront"
	"targetonchain/internal/transport/router"
	"targetonchain/internal/verification"
	"targetonchain/migrations"
	"targetonchain/pkg/platform/circuit"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var (
		frameStore   framestore.Store
		productStore productstore.Store
	)
	healthOpts := []health.Option{health.WithLogger(log)}
	if pool != nil {
		defer pool.Close() //nolint:errcheck
		if err := migrations.Apply(ctx, pool.DB()); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		frameStore = framestore.NewPostgres(pool.DB())
		productStore = productstore.NewPostgres(pool.DB())
		healthOpts = append(healthOpts, health.WithDatabase(pool))
		log.Info("using postgres stores")
	} else {
		memFrames := framestore.NewMemory()
		memProducts := productstore.NewMemory()
		if err := seeder.Seed(ctx, memFrames, memProducts, log); err != nil {
			log.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		frameStore = memFrames
		productStore = memProducts
		log.Info("DATABASE_URL not set, using seeded in-memory stores")
	}

	trace := tracer.NewOTel()
	httpClient := &http.Client{Timeout: cfg.ClientTimeout}

	attestations := attestation.New(cfg.EASScanURL,
		attestation.WithHTTPClient(httpClient),
		attestation.WithBreaker(circuit.New("eas-index",
			circuit.WithFailureThreshold(5),
			circuit.WithRetryAfter(30*time.Second),
		)),
		attestation.WithTracer(trace),
		attestation.WithMetrics(attmetrics.New()),
		attestation.WithLogger(log),
	)
	validator := farcaster.NewNeynar(cfg.NeynarAPIKey,
		farcaster.WithHTTPClient(httpClient),
		farcaster.WithTracer(trace),
		farcaster.WithLogger(log),
	)

	signingKey := []byte(cfg.JWTSigningKey)
	frames := frameservice.New(frameStore, frameservice.WithLogger(log))
	verifier := verification.New(attestations, cfg.Criteria, verification.WithLogger(log))
	policy := recommendation.New(cfg.BaseURL, recommendation.WithLogger(log))

	directory, err := storefront.NewDirectory()
	if err != nil {
		log.Error("store directory failed to load", "error", err)
		os.Exit(1)
	}

	mux := router.New(router.Deps{
		Logger:  log,
		Timeout: 30 * time.Second,
		Frames: framehandler.New(cfg.BaseURL, frames, validator, verifier, productStore, policy,
			framehandler.WithLogger(log),
			framehandler.WithMetrics(framemetrics.New()),
			framehandler.WithSigningKey(signingKey),
		),
		Composer:   composer.NewHandler(cfg.BaseURL, signingKey, validator, composer.WithLogger(log)),
		Storefront: storefront.NewHandler(directory),
		Media:      media.NewHandler(media.NewRenderer(), media.WithLogger(log)),
		Health:     health.NewHandler(healthOpts...),
	})

	server := httpserver.New(cfg.Addr, mux)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "base_url", cfg.BaseURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}
}
