package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/jusunglee/mta-board/api/handlers"
	"github.com/jusunglee/mta-board/internal/board"
	"github.com/jusunglee/mta-board/pkg/mta"
)

func main() {
	var (
		port           = flag.String("port", "8080", "Server port")
		apiKey         = flag.String("api-key", "", "MTA API key")
		updateInterval = flag.Duration("update-interval", 60*time.Second, "Feed update interval")
		configPath     = flag.String("config", "", "Board YAML file (built-in board when empty)")
		jsonLogs       = flag.Bool("log-json", false, "Log as JSON")
	)
	flag.Parse()

	if *jsonLogs {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	// Check for API key in environment if not provided
	if *apiKey == "" {
		*apiKey = os.Getenv("MTA_API_KEY")
	}

	config := mta.Config{
		APIKey:         *apiKey,
		UpdateInterval: *updateInterval,
		ConfigPath:     *configPath,
	}

	boardCfg, err := config.LoadBoard()
	if err != nil {
		slog.Error("Failed to load board config", "error", err)
		os.Exit(1)
	}

	b, err := board.New(boardCfg.Stations, board.DefaultPalette())
	if err != nil {
		slog.Error("Invalid board", "error", err)
		os.Exit(1)
	}

	client, err := mta.NewLocal(config, boardCfg)
	if err != nil {
		slog.Error("Failed to create MTA client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	r := mux.NewRouter()
	h := handlers.NewHandler(client, b)
	h.RegisterRoutes(r)

	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "uri", r.RequestURI, "took", time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
