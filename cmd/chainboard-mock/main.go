package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chainboard/internal/mockapi"
)

// stringSlice implements flag.Value for repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ", ") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		addr     string
		verbose  bool
		unloaded stringSlice
	)
	flag.StringVar(&addr, "addr", mockapi.DefaultAddr, "listen address")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Var(&unloaded, "unload", "start with this model unloaded (repeatable: supplier, shipment, inventory)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chainboard-mock [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serves a deterministic stand-in for the supply chain backend so the\n")
		fmt.Fprintf(os.Stderr, "dashboard can be developed and demoed offline. Unloaded models make\n")
		fmt.Fprintf(os.Stderr, "their endpoints fail the way the real backend does.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(addr, unloaded); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(addr string, unloaded []string) error {
	backend := mockapi.NewBackend()
	for _, name := range unloaded {
		backend.SetModelLoaded(name, false)
		slog.Info("model unloaded", "model", name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mockapi.NewServer(backend, addr).Run(ctx)
}
