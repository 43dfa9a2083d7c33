package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/cliparse"
	"github.com/ST10291541/ToastAPI/db"
	"github.com/ST10291541/ToastAPI/middleware"
	"github.com/ST10291541/ToastAPI/router"
	"github.com/ST10291541/ToastAPI/store"
)

const (
	tokenTTL        = 30 * 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	// A missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.IssueToken != "" {
		if err := printToken(cfg); err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}
		return
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := aggregate.NewService(st, logger, cfg.BaseURL)
	mux := router.NewRouter(svc, cfg)

	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("failed to listen", "addr", server.Addr, "error", err)
		return
	}

	slog.Info("Listening", "port", cfg.Port, "store", cfg.DatabaseType, "base_url", cfg.BaseURL)
	if err := serve(&server, ln, ctrlc, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")
}

// serve runs server on ln until stop fires, then drains in-flight requests
// for up to timeout. It returns only once the drain has finished.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := <-stop; !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	err := server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Serve returns as soon as Shutdown starts
	<-done
	return nil
}

// openStore picks the Store for cfg.DatabaseType. SQL stores get their
// schema created before the first request.
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	driver := db.DriverSQLite
	if cfg.DatabaseType == cliparse.DatabasePostgres {
		driver = db.DriverPostgres
	}

	conn, err := db.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "driver", driver)

	return store.NewSQLStore(conn), func() { conn.Close() }, nil
}

func printToken(cfg cliparse.Config) error {
	id, err := auth.ParseIdentity(cfg.IssueToken)
	if err != nil {
		return err
	}

	token, err := auth.IssueToken(id, cfg.AuthSecret, tokenTTL)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
