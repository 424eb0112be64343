package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"elevator-telemetry/internal/auth"
	"elevator-telemetry/internal/config"
	datasetapp "elevator-telemetry/internal/dataset/application"
	datasetexport "elevator-telemetry/internal/dataset/interfaces/export"
	datasethttp "elevator-telemetry/internal/dataset/interfaces/http"
	"elevator-telemetry/internal/eventing"
	"elevator-telemetry/internal/observability/metrics"
	telemetryapp "elevator-telemetry/internal/telemetry/application"
	telemetryevents "elevator-telemetry/internal/telemetry/application/events"
	telemetrystore "elevator-telemetry/internal/telemetry/infrastructure/postgres"
	telemetryhttp "elevator-telemetry/internal/telemetry/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init()

	store := telemetrystore.NewEventStore(db, telemetrystore.WithDialect(telemetrystore.DialectFor(cfg.DatabaseDriver)))
	if err := store.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("schema error: %v", err)
	}

	bus := eventing.NewInMemoryBus()
	bus.Subscribe(eventing.EventTypeOf[telemetryevents.StateRecorded](), func(_ context.Context, event any) error {
		evt, ok := event.(telemetryevents.StateRecorded)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		if evt.Resting {
			logger.Printf("resting state recorded: id=%d floor=%d at=%s", evt.StateID, evt.Floor, evt.At.Format(time.RFC3339))
		}
		return nil
	})
	bus.Subscribe(eventing.EventTypeOf[telemetryevents.DemandRecorded](), func(_ context.Context, event any) error {
		evt, ok := event.(telemetryevents.DemandRecorded)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		logger.Printf("demand recorded: id=%d floor=%d at=%s", evt.DemandID, evt.Floor, evt.At.Format(time.RFC3339))
		return nil
	})

	recorder, err := telemetryapp.NewRecorder(store, bus, systemClock{})
	if err != nil {
		logger.Fatalf("recorder error: %v", err)
	}
	builder, err := datasetapp.NewBuilder(store)
	if err != nil {
		logger.Fatalf("dataset builder error: %v", err)
	}

	statesHandler, err := telemetryhttp.NewStatesHandler(recorder, logger)
	if err != nil {
		logger.Fatalf("states handler error: %v", err)
	}
	demandsHandler, err := telemetryhttp.NewDemandsHandler(recorder, logger)
	if err != nil {
		logger.Fatalf("demands handler error: %v", err)
	}
	datasetHandler, err := datasethttp.NewHandler(builder, logger)
	if err != nil {
		logger.Fatalf("dataset handler error: %v", err)
	}
	exportHandler, err := datasetexport.NewHandler(builder, logger)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/states", statesHandler)
	mux.Handle("/api/v1/demands", demandsHandler)
	mux.Handle("/api/v1/dataset", datasetHandler)
	mux.Handle("/api/v1/dataset/", datasetHandler)
	mux.Handle("/api/v1/exports/", exportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
