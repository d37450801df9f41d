package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scheduleboard/config"
	"scheduleboard/internal/adapters/boardapi"
	"scheduleboard/internal/bus"
	"scheduleboard/internal/components"
	delivery "scheduleboard/internal/delivery/http"
	"scheduleboard/internal/delivery/http/middleware"
	"scheduleboard/internal/repository/postgres"

	_ "github.com/lib/pq"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("scheduleboard: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	// The store handle is constructed once here and passed by reference
	// into everything that needs it; there is no package-level instance.
	store := postgres.NewScheduleStore(db)
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = store.Init(initCtx)
	cancel()
	if err != nil {
		return err
	}

	signalBus := bus.New()
	remote := boardapi.NewClient(cfg.BoardAPIURL, &http.Client{Timeout: cfg.FetchTimeout})

	registry := components.NewRegistry()
	registry.Register("schedule-loader", func() components.Component {
		return components.NewScheduleLoader(store, remote, signalBus, logger, cfg.FetchTimeout)
	})
	registry.Register("session-loader", func() components.Component {
		return components.NewSessionLoader(store, remote, signalBus, logger, cfg.FetchTimeout)
	})
	registry.Register("session-scheduler", func() components.Component {
		return components.NewSessionScheduler(store, signalBus, logger)
	})
	logger.Info("components registered", "names", registry.Names())

	// When an event id is configured, keep its schedule synced from the
	// remote source for the lifetime of the process.
	if eventID := cfg.BoardEventID; eventID != "" {
		scheduleLoader, err := registry.New("schedule-loader")
		if err != nil {
			return err
		}
		sessionLoader, err := registry.New("session-loader")
		if err != nil {
			return err
		}
		scheduleLoader.SetEventID(context.Background(), eventID)
		sessionLoader.SetEventID(context.Background(), eventID)

		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				scheduleLoader.(*components.ScheduleLoader).Refresh(context.Background())
				sessionLoader.(*components.SessionLoader).Refresh(context.Background())
			}
		}()
		logger.Info("background sync started", "event_id", eventID)
	}

	controller := delivery.NewBoardController(logger, store)
	router := delivery.NewRouter(controller)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, router))

	server := &http.Server{Addr: ":" + cfg.Port, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
