package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		a.Log.Fatal("server error", "error", err)
	}
}
