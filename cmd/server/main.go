package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"talentnet/internal/platform/config"
	"talentnet/internal/platform/httpserver"
	"talentnet/internal/platform/logger"
	platformmetrics "talentnet/internal/platform/metrics"
	"talentnet/internal/platform/postgres"
	"talentnet/internal/platform/redis"
	"talentnet/internal/session"
	httptransport "talentnet/internal/transport/http"
	"talentnet/internal/visibility/facts"
	"talentnet/internal/visibility/handler"
	"talentnet/internal/visibility/metrics"
	"talentnet/internal/visibility/ports"
	"talentnet/internal/visibility/service"
	accessstore "talentnet/internal/visibility/store/access"
	conversationstore "talentnet/internal/visibility/store/conversation"
	profilestore "talentnet/internal/visibility/store/profile"
	relationshipstore "talentnet/internal/visibility/store/relationship"
	viewstore "talentnet/internal/visibility/store/views"
	"talentnet/internal/visibility/views"
	audit "talentnet/pkg/platform/audit"
	"talentnet/pkg/platform/audit/publisher"
	kafkasink "talentnet/pkg/platform/audit/publishers/kafka"
	auditmemory "talentnet/pkg/platform/audit/store/memory"
	"talentnet/pkg/platform/circuit"
	"talentnet/pkg/platform/middleware/metadata"
)

const startupTimeout = 10 * time.Second

func main() {
	config.LoadEnv(slog.Default())
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// stores groups the persistence adapters so the rest of main does not care
// whether they are backed by Postgres or memory.
type stores struct {
	profiles      ports.ProfileStore
	access        ports.NetworkAccessLookup
	relationships ports.RelationshipLookup
	conversations ports.ConversationStore
	views         views.Store
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	checks := map[string]httptransport.HealthCheck{}

	st, db, err := openStores(startCtx, cfg.Database, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["postgres"] = db.PingContext
	}

	rdb, err := redis.New(startCtx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = rdb.Health
	}

	auditStore, closeAudit, err := openAuditStore(startCtx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	if closeAudit != nil {
		defer closeAudit()
	}
	if sink, ok := auditStore.(*kafkasink.Sink); ok {
		checks["kafka"] = sink.Ping
	}
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.Visibility.AuditBuffer),
		publisher.WithOpsSampleRate(cfg.Visibility.OpsAuditSampleRate),
		publisher.WithLogger(log),
	)
	// Drains buffered events before the sink closes.
	defer auditor.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	visMetrics := metrics.New(registry)

	gate := facts.NewGate(st.access, st.relationships,
		facts.WithLogger(log),
		facts.WithMetrics(visMetrics),
		facts.WithAuditor(auditor),
		facts.WithLookupTimeout(cfg.Visibility.FactLookupTimeout),
		facts.WithBreakers(
			newBreaker(facts.FactNetworkAccess, cfg.Visibility),
			newBreaker(facts.FactRelationship, cfg.Visibility),
		),
	)

	recorderOpts := []views.Option{
		views.WithAuditor(auditor),
		views.WithLogger(log),
		views.WithMetrics(visMetrics),
		views.WithWindow(cfg.Visibility.ViewWindow),
		views.WithTimeout(cfg.Visibility.ViewTimeout),
	}
	if rdb != nil {
		recorderOpts = append(recorderOpts, views.WithGuard(viewstore.NewRedisGuard(rdb.Client)))
	}
	recorder := views.New(st.views, recorderOpts...)

	svc := service.New(st.profiles, st.conversations, gate,
		service.WithRecorder(recorder),
		service.WithAuditor(auditor),
		service.WithLogger(log),
		service.WithMetrics(visMetrics),
		service.WithTracer(otel.Tracer("talentnet/visibility")),
	)

	proxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parse TRUSTED_PROXIES: %w", err)
	}

	jwt := session.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:         log,
		Tokens:         session.NewJWTServiceAdapter(jwt),
		Metrics:        platformmetrics.New(registry),
		Gatherer:       registry,
		Checks:         checks,
		TrustedProxies: proxies,
		CacheMaxAge:    cfg.Visibility.CacheMaxAge,
		Modules:        []httptransport.Registrar{handler.New(svc, log, cfg.Visibility.CacheMaxAge)},
	})

	srv := httpserver.New(cfg.Addr, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting talentnet", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (stores, *sql.DB, error) {
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		profiles := profilestore.NewInMemoryStore()
		return stores{
			profiles:      profiles,
			access:        accessstore.NewInMemoryStore(),
			relationships: relationshipstore.NewInMemoryStore(),
			conversations: conversationstore.NewInMemoryStore(),
			views:         viewstore.NewInMemoryStore(profiles),
		}, nil, nil
	}

	db, err := postgres.Connect(ctx, cfg)
	if err != nil {
		return stores{}, nil, err
	}
	return stores{
		profiles:      profilestore.NewPostgres(db),
		access:        accessstore.NewPostgres(db),
		relationships: relationshipstore.NewPostgres(db),
		conversations: conversationstore.NewPostgres(db),
		views:         viewstore.NewPostgres(db),
	}, db, nil
}

func openAuditStore(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, audit events kept in memory")
		return auditmemory.NewInMemoryStore(), nil, nil
	}

	sink, err := kafkasink.NewSink(cfg.Brokers, cfg.Topic, kafkasink.WithClientID(cfg.ClientID))
	if err != nil {
		return nil, nil, err
	}
	if err := sink.EnsureTopic(ctx, 3, 1); err != nil {
		sink.Close()
		return nil, nil, err
	}
	return sink, sink.Close, nil
}

func newBreaker(name string, cfg config.VisibilityConfig) *circuit.Breaker {
	return circuit.New(name,
		circuit.WithFailureThreshold(cfg.FactFailureThreshold),
		circuit.WithCooldown(cfg.FactCooldown),
	)
}
