// jobmate-radar-service — job catalog ingestion and saved-search alerting.
//
// Pulls postings from the configured listing sources into the normalized
// catalog, then evaluates saved searches against catalog changes and queues
// at-most-once notifications per (subscription, posting) pair.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobmate/radar-service/internal/alert"
	"jobmate/radar-service/internal/catalog"
	"jobmate/radar-service/internal/config"
	"jobmate/radar-service/internal/db"
	"jobmate/radar-service/internal/events"
	"jobmate/radar-service/internal/runlog"
	"jobmate/radar-service/internal/scheduler"
	"jobmate/radar-service/internal/source"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Service: "radar-service",
		Version: "0.1.0",
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[radar-service] config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[radar-service] postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[radar-service] redis: %v", err)
	}
	defer rdb.Close()

	pub := events.NewPublisher(rdb)
	catalogStore := catalog.NewPGStore(pool)
	alertStore := alert.NewPGStore(pool)
	runStore := runlog.NewPGStore(pool)

	fetcher := source.NewHTTPFetcher(cfg.Endpoints())
	adapter := source.NewAdapter(catalogStore, fetcher, cfg.ExcludeKeywords)
	syncer := source.NewSyncer(adapter, runStore, pub, cfg.Sources, cfg.SyncParallelism)

	coordinator := alert.NewCoordinator(catalogStore, alertStore, alertStore, alertStore,
		runStore, pub, time.Duration(cfg.LookbackHours)*time.Hour)
	dispatcher := alert.NewDispatcher(alertStore, alertStore, catalogStore,
		alert.LogSender{}, pub, cfg.DryRun)

	sched := scheduler.New(syncer, coordinator, dispatcher,
		cfg.SyncIntervalHours, cfg.AlertIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[radar-service] scheduler: %v", err)
	}
	defer sched.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: mux}
	go func() {
		log.Printf("[radar-service] Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[radar-service] Fatal: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[radar-service] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[radar-service] http shutdown: %v", err)
	}
}
