package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"vidtube/internal/config"
	"vidtube/internal/db"
	"vidtube/internal/handlers"
	"vidtube/internal/middleware"
	"vidtube/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}
	cfg.ConfigureLogging()
	if err := cfg.RequireJWTSecret(); err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}
	store := db.New(conn, cfg.QueryTimeout)
	defer store.Close()

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer client.Close()

	srv := newServer(cfg, store, client, prometheus.NewRegistry())

	go func() {
		logrus.Infof("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Error during shutdown: %v", err)
	}
}

// newServer wires the HTTP stack. reg receives the HTTP and Go runtime
// collectors and is served at /metrics.
func newServer(cfg *config.Config, store handlers.Store, enqueuer tasks.TaskEnqueuer, reg *prometheus.Registry) *http.Server {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := handlers.New(store, enqueuer, cfg.BaseURL)
	auth := middleware.NewAuthenticator(cfg.JWTSecret)
	router := handlers.NewRouter(h, auth, middleware.NewMetrics(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSOrigin)(router),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
