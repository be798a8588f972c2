package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/presales/internal/api"
	"github.com/dgallion1/presales/internal/config"
	"github.com/dgallion1/presales/internal/session"
	"github.com/dgallion1/presales/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The summarization client is created lazily on first use and shared
	// for the process lifetime; the stats window exists up front so the
	// stats endpoint works before the first call.
	stats := summarize.NewStats(time.Hour)
	generator := summarize.NewGenerator(summarize.Options{
		MaxChunkWords:   cfg.ChunkMaxWords,
		FastModeChunks:  cfg.FastModeChunks,
		ChunkMinWords:   cfg.SummaryMinWords,
		ChunkMaxWords:   cfg.SummaryMaxWords,
		RefineMinWords:  cfg.RefineMinWords,
		RefineMaxWords:  cfg.RefineMaxWords,
		RefineThreshold: cfg.RefineThreshold,
	}, func() summarize.Summarizer {
		return summarize.NewClient(cfg.LMBaseURL, cfg.SummaryModel, cfg.LLMTimeout, stats)
	}, log)

	store := session.NewStore(cfg.SessionTTL)
	go store.Sweep(ctx, 5*time.Minute)

	srv := api.NewServer(store, generator, stats, cfg.SummaryModel, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting presales assistant", "port", cfg.Port, "model", cfg.SummaryModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
