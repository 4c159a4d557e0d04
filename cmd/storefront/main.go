package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/storefront/internal/storefront/app"
)

func main() {
	cfg := app.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	runErr := application.Run(ctx, os.Args[1:])
	if err := application.Close(); err != nil {
		log.Printf("failed to close application: %v", err)
	}

	if runErr != nil {
		if !errors.Is(runErr, app.ErrUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		} else {
			fmt.Fprintln(os.Stderr, runErr)
		}
		os.Exit(1)
	}
}
