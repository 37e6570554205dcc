package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/shobi-backend/pkg/config"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	root, cleanup := newRootCmd(os.Stdout, config.Load)
	err := root.ExecuteContext(ctx)
	if closeErr := cleanup(); closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// cliLogger writes warnings to stderr so table output stays clean.
func cliLogger(cfg *config.Config) *logger.Logger {
	level := "warn"
	if cfg != nil && cfg.App.LogLevel == "debug" {
		level = "debug"
	}
	return logger.New(logger.Options{
		ServiceName: "shobi",
		Level:       logger.ParseLevel(level),
		Output:      os.Stderr,
	})
}
