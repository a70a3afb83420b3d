package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/backup"
	"github.com/ukydev/fleet-records/internal/config"
	"github.com/ukydev/fleet-records/internal/db"
	"github.com/ukydev/fleet-records/internal/events"
	"github.com/ukydev/fleet-records/internal/fleet"
	"github.com/ukydev/fleet-records/internal/handlers"
	"github.com/ukydev/fleet-records/internal/logger"
	"github.com/ukydev/fleet-records/internal/middleware"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// app holds everything newRouter needs.
type app struct {
	cfg      *config.Config
	records  *db.Records
	service  *fleet.Service
	registry *prometheus.Registry
}

func newRouter(a *app) *mux.Router {
	router := mux.NewRouter()

	metrics := middleware.NewMetrics(a.registry)
	limiter := middleware.NewRateLimitMiddleware()
	router.Use(
		middleware.RequestID,
		middleware.Logging,
		middleware.Recovery,
		metrics.Instrument,
		limiter.RateLimit(a.cfg.RateLimit.Requests, a.cfg.RateLimit.WindowSeconds),
	)

	router.HandleFunc("/health", healthHandler(a.records)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	handlers.NewFleetHandler(a.service, strconv.Itoa(a.cfg.Server.Port)).Register(router)
	return router
}

// healthHandler reports ready when the record store can be read.
func healthHandler(records *db.Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := records.Snapshot(r.Context()); err != nil {
			log.WithError(err).Warn("Health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	records := db.NewRecords(store, cfg.Store.StrictWrites)
	defer func() {
		if err := records.Close(); err != nil {
			log.WithError(err).Warn("Failed to close record store")
		}
	}()
	log.WithField("driver", cfg.Store.Driver).Info("Record store opened")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	publisher, err := events.Open(cfg.MQTT)
	if err != nil {
		return err
	}
	counted := events.NewCountingPublisher(publisher, registry)
	queued := events.NewAsyncPublisher(counted, cfg.MQTT.QueueSize, time.Duration(cfg.MQTT.TimeoutMS)*time.Millisecond)
	defer queued.Close()

	a := &app{
		cfg:      cfg,
		records:  records,
		service:  fleet.NewService(records, fleet.WithPublisher(queued)),
		registry: registry,
	}

	if cfg.Backup.Target != config.BackupNone {
		target, err := backup.OpenTarget(ctx, cfg.Backup)
		if err != nil {
			return err
		}
		scheduler, err := backup.NewScheduler(backup.NewJob(records, target, cfg.Backup.Prefix), cfg.Backup.Schedule)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Error("Server stopped with error")
		stop()
		os.Exit(1)
	}
	log.Info("Server stopped")
}
