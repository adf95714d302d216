package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/internal/handler"
	"github.com/watchalong/server/internal/hub"
	"github.com/watchalong/server/internal/resolver"
	"github.com/watchalong/server/internal/room"
	"github.com/watchalong/server/internal/service"
	"github.com/watchalong/server/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	logger := log.L()
	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting watchalong server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := room.NewStore(cfg.Room)
	store.StartJanitor(ctx)

	wsHub := hub.NewHub(cfg.WebSocket)
	res := resolver.NewHTTPResolver(cfg.Providers)
	roomSvc := service.NewRoomService(store, wsHub, res, cfg.Room, cfg.Providers.ResolveTimeout)
	wsHandler := handler.NewWSHandler(wsHub, roomSvc, cfg.WebSocket)

	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("stopped")
}
