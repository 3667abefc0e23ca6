package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tripwise/internal/adapters/chatapi"
	server "tripwise/internal/adapters/http_server"
	"tripwise/internal/adapters/observability"
	"tripwise/internal/app"
	"tripwise/internal/bootstrap"
	"tripwise/internal/catalog"
	"tripwise/internal/domain"
	"tripwise/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// catalog: fail fast on authoring mistakes
	cat := catalog.Default()
	if err := catalog.Validate(cat); err != nil {
		log.Fatal().Err(err).Msg("catalog validation failed")
	}
	q, err := app.NewQueryService(cat)
	if err != nil {
		log.Fatal().Err(err).Msg("building trip plans failed")
	}

	// storage
	store, closeStore, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("storage init failed")
	}
	defer closeStore()

	if j := app.JanitorFor(store, cfg.JanitorInterval); j != nil {
		if err := j.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("janitor start failed")
		}
		defer j.Stop()
	}

	// chat
	var chat domain.ChatClient
	if cfg.ChatBase != "" {
		c, err := chatapi.New(cfg.ChatBase, cfg.ChatKey, cfg.ChatRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("chat client init failed")
		}
		chat = c
	}

	setup := app.NewTripSetupService(store, cfg.TripSetupTTL)
	handoff := app.NewHandoffService(store, cfg.HandoffTTL)

	// http
	srv := server.New(server.Options{RequestTimeout: cfg.RequestTimeout, AllowedOrigins: cfg.AllowedOrigins})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:       q,
		Setup:   setup,
		Chat:    app.NewChatService(chat, q, setup, handoff),
		Handoff: handoff,
	})

	servers := []*http.Server{{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}}
	if ms := observability.NewMetricsServer(cfg.MetricsAddr, reg); ms != nil {
		servers = append(servers, ms)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		hs := hs
		g.Go(func() error {
			log.Info().Str("addr", hs.Addr).Msg("listening")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, hs := range servers {
			if err := hs.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Str("addr", hs.Addr).Msg("shutdown failed")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server failed")
		return
	}
	log.Info().Msg("shutdown complete")
}
