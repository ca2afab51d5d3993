package main

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/benefit-slides/app/cfg"
	"github.com/lysyi3m/benefit-slides/app/slideshow"
)

func main() {
	clientCfg, err := cfg.LoadClient()
	if err != nil {
		os.Exit(1)
	}
	if clientCfg == nil {
		return
	}

	level := slog.LevelWarn
	if clientCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case commands <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	client := slideshow.NewClient(clientCfg.Endpoint, clientCfg.Timeout, clientCfg.Version)
	player := slideshow.NewPlayer(client, os.Stdout)

	if err := player.Run(ctx, commands); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Slideshow stopped", "error", err)
		os.Exit(1)
	}
}
