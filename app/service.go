package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldserve/crewsched/api/assignments"
	"github.com/fieldserve/crewsched/config"
	"github.com/fieldserve/crewsched/core/conflict"
	"github.com/fieldserve/crewsched/core/conflict/logging"
	"github.com/fieldserve/crewsched/core/events"
	coremetrics "github.com/fieldserve/crewsched/core/metrics"
	"github.com/fieldserve/crewsched/infra/logger"
	"github.com/fieldserve/crewsched/infra/metrics"
	"github.com/fieldserve/crewsched/infra/mqtt"
	"github.com/fieldserve/crewsched/infra/store"
	"github.com/fieldserve/crewsched/internal/eventbus"
)

// Service wires the conflict manager, snapshot store, notifier and API
// server together.
type Service struct {
	Manager   *conflict.Manager
	Store     *store.Store
	bus       eventbus.EventBus
	conflicts *eventbus.TypedBus[events.ConflictEvent]
	logStore  logging.LogStore
	notifier  *mqtt.Notifier
	log       logger.Logger
	cfg       *config.Config
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var logStore logging.LogStore
	switch cfg.Logging.Backend {
	case "sqlite":
		logStore, err = logging.NewSQLiteStore(cfg.Logging.Path)
	default:
		logStore, err = logging.NewJSONLStore(cfg.Logging.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open check log: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.Influx.Enabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics.Influx))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	conflicts := eventbus.NewTyped[events.ConflictEvent]()
	mgr := conflict.NewManager(cfg.Schedule, sink, bus, conflicts, logStore, logg)

	var notifier *mqtt.Notifier
	if cfg.MQTT.Enabled {
		notifier, err = mqtt.NewNotifier(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
	}

	return &Service{
		Manager:   mgr,
		Store:     st,
		bus:       bus,
		conflicts: conflicts,
		logStore:  logStore,
		notifier:  notifier,
		log:       logg,
		cfg:       cfg,
	}, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.notifier != nil {
		go s.pumpConflicts(ctx)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/assignments/check", assignments.NewCheckHandler(s.Manager, s.Store, s.cfg.Timezone))
	mux.Handle("/api/assignments/checks", assignments.NewCheckLogHandler(s.logStore, s.cfg.HTTP.AuthToken))
	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
	}()

	s.log.Infof("API listening on %s", s.cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// pumpConflicts forwards conflict events from the typed bus to the MQTT
// notifier.
func (s *Service) pumpConflicts(ctx context.Context) {
	sub := s.conflicts.Subscribe()
	defer s.conflicts.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if err := s.notifier.PublishConflict(ev); err != nil {
				s.log.Errorf("publish conflict: %v", err)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		s.notifier.Close()
	}
	if err := s.Manager.Close(); err != nil {
		return err
	}
	return s.Store.Close()
}
