package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/tomz197/pinball/internal/config"
	loopconfig "github.com/tomz197/pinball/internal/loop/config"
	"github.com/tomz197/pinball/internal/loop/server"
	"github.com/tomz197/pinball/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("Load config", "err", err)
	}
	logger := config.SetupLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	var origins []string
	if raw := config.GetEnv("WEB_ALLOWED_ORIGINS", ""); raw != "" {
		origins = strings.Split(raw, ",")
	}

	if config.GetEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	table, err := config.Table()
	if err != nil {
		logger.Fatal("Invalid table config", "err", err)
	}
	tables, err := server.NewServer(table)
	if err != nil {
		logger.Fatal("Create table server", "err", err)
	}
	ctx, cancelTables := context.WithCancel(context.Background())
	go tables.Run(ctx)

	handler := web.NewHandler(tables, web.Options{
		AllowedOrigins: origins,
		SSHHost:        sshHost,
		FadeDuration:   loopconfig.IconFadeDuration,
	})
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done
	logger.Info("Shutting down server...")

	tables.Shutdown(5 * time.Second)
	cancelTables()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
	logger.Info("Server stopped")
}
