package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/uroom/uroom-server/internal/api"
	"github.com/uroom/uroom-server/internal/config"
	"github.com/uroom/uroom-server/internal/database"
	"github.com/uroom/uroom-server/internal/server"
	"github.com/uroom/uroom-server/internal/stats"
	"github.com/uroom/uroom-server/internal/store"
)

const defaultSigningKey = "wT0phFUusHZIrDhL9bUKPUhwaxKhpi/SaI6PtgB+MgU="

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	storagePath    string
	signingKey     string
	allowedOrigins stringSliceFlag
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("load .env:", err)
	}

	flag.StringVar(&addr, "addr", envOr("UROOM_ADDR", "localhost:8000"), "server address")
	flag.StringVar(&storagePath, "storage-path", envOr("UROOM_STORAGE_PATH", "uroom.db"), "path to the session storage file")
	flag.StringVar(&signingKey, "signing-key", envOr("UROOM_SIGNING_KEY", defaultSigningKey), "base64 encoded signing key")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	logger := log.New(os.Stderr, "[uroom] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, storagePath, signingKey, allowedOrigins)
	if err != nil {
		logger.Fatal("config:", err)
	}

	sessions, err := database.NewSqliteSessionRepository(cfg.StoragePath)
	if err != nil {
		logger.Fatal("open session storage:", err)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Fatal("close session storage:", err)
		}
	}()

	appStore := store.NewAppStore(logger, sessions, store.DefaultSeed())

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	chatServer, err := server.NewChatServer(logger, appStore, statsUpdater)
	if err != nil {
		logger.Fatal("new chat server:", err)
	}

	srv := api.NewUroomApp(mux, logger, chatServer, appStore, sessions, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	go chatServer.Run()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutting down chat server...")
	if err := chatServer.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("chat server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
