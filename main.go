package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/felixbrock/partnerdash/internal/app"
)

func config() app.Config {
	port := os.Getenv("GOPORT")
	if port == "" {
		port = "8000"
	}

	rateLimit := 10.0
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
			slog.Warn(fmt.Sprintf("Invalid RATE_LIMIT %q, using %v", v, rateLimit))
		} else {
			rateLimit = parsed
		}
	}

	rateBurst := 20
	if v := os.Getenv("RATE_BURST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			slog.Warn(fmt.Sprintf("Invalid RATE_BURST %q, using %d", v, rateBurst))
		} else {
			rateBurst = parsed
		}
	}

	return app.Config{Port: port, RateLimit: rateLimit, RateBurst: rateBurst}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.App{Config: config()}

	err := a.Start(ctx)
	if err != nil {
		slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		os.Exit(1)
	}
}
