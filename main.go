package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/Gravitalia/feed/api"
	"github.com/Gravitalia/feed/config"
	"github.com/Gravitalia/feed/database"
	"github.com/Gravitalia/feed/feed"
	"github.com/Gravitalia/feed/helpers"
	"github.com/Gravitalia/feed/router"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes creates every route of the feed screen
func routes(screen router.Screen, registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", router.Index)
	mux.HandleFunc("/feed", router.Feed(screen))
	mux.HandleFunc("/action/", router.Action(screen))
	mux.HandleFunc("/posts/"+router.NEW, router.New(screen))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return helpers.Middleware(mux)
}

func main() {
	// Get key-value in .env file
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Debug {
		helpers.SetLogLevel(slog.LevelDebug)
	}

	// Trace outgoing and incoming requests
	tracer, err := helpers.NewTracer(helpers.NewReporter(cfg.ZipkinAddress), "feed", cfg.Port)
	if err != nil {
		log.Fatalf("Unable to create tracer: %v", err)
	}
	client, err := helpers.NewClient(tracer, cfg.APITimeout)
	if err != nil {
		log.Fatalf("Unable to create HTTP client: %v", err)
	}

	options := []feed.Option{
		feed.WithUserPolicy(cfg.UserPolicy),
		feed.WithIDPolicy(cfg.IDPolicy),
	}
	if cfg.MemURL != "" {
		options = append(options, feed.WithGuard(database.NewGuard(cfg.MemURL, cfg.SubmitGuardTTL)))
	}
	if cfg.NatsURL != "" {
		if conn, err := helpers.InitNATS(cfg.NatsURL); err == nil {
			options = append(options, feed.WithNotifier(&helpers.Publisher{Conn: conn, Subject: cfg.NatsSubject}))
		}
	}

	controller := feed.New(api.New(cfg.APIURL, client, cfg.APITimeout), options...)
	if err := controller.Mount(context.Background()); err != nil {
		helpers.Warn("feed mounted with errors", "error", err)
	}

	if cfg.RefreshSpec != "" {
		if _, err := helpers.ScheduleRefresh(cfg.RefreshSpec, controller.Refresh); err != nil {
			log.Fatalf("Invalid REFRESH_SCHEDULE: %v", err)
		}
	}

	log.Println("Server is starting on port", cfg.Port)

	// Create web server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           helpers.ServerMiddleware(tracer)(routes(controller, helpers.GetRegistry())),
		ReadHeaderTimeout: 3 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		panic(err)
	}
}
