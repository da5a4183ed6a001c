package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dunamismax/go-cli/app"
	"github.com/dunamismax/go-cli/store"
	"github.com/dunamismax/go-cli/tasks"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	closeLog, err := app.SetupLogging(cfg.LogsDir, "worker", cfg.Debug)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer closeLog()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", cfg.DBPath, err)
	}
	defer st.Close()

	dispatcher := tasks.NewDispatcher(st, cfg.Worker.Count,
		time.Duration(cfg.Worker.PollInterval)*time.Second)
	tasks.RegisterBuiltins(dispatcher, st, tasks.Options{
		Retain: time.Duration(cfg.Worker.RetainDays) * 24 * time.Hour,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("worker error: %v", err)
	}
}
