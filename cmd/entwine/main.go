package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"entwine/adapter/tcellui"
	adapterws "entwine/adapter/websocket"
	"entwine/application"
	"entwine/domain"
)

func main() {
	var (
		listenFlag  = flag.String("listen", "", "host a game on this address (this side runs the simulation), e.g. :8080")
		connectFlag = flag.String("connect", "", "join a hosted game, e.g. ws://host:8080/ws")
		nameFlag    = flag.String("name", "", "display name")
		sideFlag    = flag.Int("side", 20, "grid side length")
		levelFlag   = flag.String("log-level", "warn", "log level: debug|info|warn|error")
	)
	flag.Parse()

	if err := run(*listenFlag, *connectFlag, *nameFlag, *sideFlag, *levelFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(listen, connect, name string, side int, level string) error {
	if (listen == "") == (connect == "") {
		return errors.New("exactly one of -listen or -connect is required")
	}
	if name == "" {
		return errors.New("-name is required")
	}
	if side < 5 {
		return errors.New("-side must be at least 5")
	}

	setupLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		link *domain.Link
		err  error
	)
	if listen != "" {
		fmt.Printf("waiting for a peer on %s ...\n", listen)
		link, err = adapterws.Host(ctx, listen, name)
	} else {
		link, err = adapterws.Dial(ctx, connect, name)
	}
	if err != nil {
		return fmt.Errorf("establish channel: %w", err)
	}

	ui, err := tcellui.New()
	if err != nil {
		return fmt.Errorf("terminal is required: %w", err)
	}
	defer ui.Fini()

	endpoint, err := domain.NewEndpoint(link.Transport)
	if err != nil {
		return err
	}
	defer endpoint.Close()
	go func() {
		if err := endpoint.Run(); err != nil {
			slog.Warn("endpoint stopped", "err", err)
		}
	}()

	gameCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go ui.Run(gameCtx)
	go func() {
		<-ui.Quit()
		cancel()
	}()

	session := domain.NewSession(link.LocalName)
	renderer := application.NewRenderer(ui)

	if link.Owner {
		engine := application.NewEngine(nil)
		owner := application.NewOwner(session, endpoint, engine, renderer, ui.Keys(), side)
		err = owner.Run(gameCtx)
	} else {
		follower := application.NewFollower(session, endpoint, renderer, ui.Keys())
		err = follower.Run(gameCtx)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func setupLogger(level string) {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "info":
		lv = slog.LevelInfo
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}
