package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/deckapi"
)

var CLI struct {
	Addr     string `short:"a" default:":8081" help:"Address to listen on"`
	Seed     int64  `help:"RNG seed for shuffles, 0 for random"`
	LogLevel string `short:"l" default:"info" help:"Log level"`
	EnvFile  string `default:".env" help:"dotenv file to load"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("deckd"),
		kong.Description("In-memory card-supply service"),
		kong.UsageOnError(),
	)

	if err := config.LoadDotEnv(CLI.EnvFile); err != nil {
		ctx.FatalIfErrorf(err)
	}

	level, err := log.ParseLevel(CLI.LogLevel)
	if err != nil {
		ctx.FatalIfErrorf(err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	srv := deckapi.NewServer(CLI.Addr, CLI.Seed, logger)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-sigCtx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ctx.FatalIfErrorf(srv.Shutdown(shutdownCtx))
	case err := <-serverErr:
		ctx.FatalIfErrorf(err)
	}
}
