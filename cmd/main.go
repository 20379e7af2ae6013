package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/pflag"

	"chat-relay/internal"
	"chat-relay/moderation"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the relay lifecycle, and centralizes
// error reporting, so defers execute and the entry point stays testable.
func run() error {
	// 1. Flags & environment
	envFile := pflag.String("env-file", "", "optional .env file loaded before reading the environment")
	addrOverride := pflag.String("addr", "", "bind address override (host:port)")
	pflag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("loading %s: %w", *envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	// 2. Configuration & Logger
	config, err := internal.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	addr := config.Addr()
	if *addrOverride != "" {
		addr = *addrOverride
	}

	// 3. Moderation (optional)
	var moderator *moderation.Moderator
	if config.EnableModeration {
		replacement, err := internal.CharacterRune(config.CharReplacement)
		if err != nil {
			return err
		}
		moderator, err = runtime.LoadModerator(log, replacement)
		if err != nil {
			return err
		}
	}

	// 4. Core wiring
	roster := runtime.NewRoster()
	dispatcher := runtime.NewDispatcher(log, roster, moderator)
	server := transport.NewServer(log, addr, transport.HandlerFunc(
		func(peer *transport.Peer, connID string) {
			dispatcher.Handle(peer, connID)
		}))

	// 5. Supervision & signals
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(server, workers.NewHealthWorker(log, roster, config.MetricInterval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting relay and all supervised workers")
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
