package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/room-reservations-go/reservations/httpapi"
	"github.com/AntonStoeckl/room-reservations-go/reservations/service"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell/config"
	"github.com/AntonStoeckl/room-reservations-go/reservations/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("reservations server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	if cfg, err = applyFlags(cfg, os.Args[1:]); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventStore, closeEventStore, err := openEventStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeEventStore()

	if cfg.EnsureSchema {
		if err = eventStore.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	svc := service.NewService(
		store.NewReservationStore(eventStore),
		store.NewAvailabilityChecker(eventStore),
		service.WithLogger(logger),
	)

	server := httpapi.NewServer(cfg.HTTPAddr, svc, httpapi.WithLogger(logger))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start()
	}()

	logger.Info("reservations server started",
		"addr", cfg.HTTPAddr,
		"adapter", string(cfg.AdapterType),
		"events_table", cfg.EventsTable,
	)

	select {
	case err = <-serverDone:
		return err

	case <-ctx.Done():
		logger.Info("shutting down reservations server")
	}

	if err = server.Stop(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("stopping the server failed: %w", err)
	}

	if err = <-serverDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
