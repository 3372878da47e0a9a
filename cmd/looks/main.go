// FILE: lixenwraith/looks/cmd/looks/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/looks"
)

// Usage: looks [-profile P] [-properties FILE] [-table] [-watch] [-- --P.controlFont=...]
// Arguments after "--" are property overrides.
func main() {
	fs := flag.NewFlagSet("looks", flag.ExitOnError)
	profile := fs.String("profile", "Windows", "profile to resolve")
	file := fs.String("properties", "", "properties file (discovered when empty)")
	dumpTable := fs.Bool("table", false, "dump the defaults table as TOML")
	watch := fs.Bool("watch", false, "re-resolve when the properties file changes")
	hints := fs.String("hints", "", "font size hints (LARGE, SYSTEM, MIXED2, MIXED, SMALL, FIXED)")
	fs.Parse(os.Args[1:])

	logger := log.New(os.Stderr, "looks: ", log.LstdFlags)

	builder := looks.NewBuilder(*profile).
		WithArgs(fs.Args()).
		WithLogger(logger)
	if *file != "" {
		builder = builder.WithFile(*file)
	} else {
		builder = builder.WithFileDiscovery(looks.DefaultDiscoveryOptions("looks"))
	}
	if *hints != "" {
		h, err := looks.ParseFontSizeHints(*hints)
		if err != nil {
			logger.Fatalf("invalid -hints: %v", err)
		}
		builder = builder.WithFontSizeHints(h)
	}

	look, err := builder.Build()
	if err != nil && !errors.Is(err, looks.ErrConfigNotFound) {
		logger.Fatalf("activate %s: %v", *profile, err)
	}

	if err := report(look, *dumpTable); err != nil {
		logger.Fatalf("print: %v", err)
	}

	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	changes, err := look.Properties().Watch(ctx, looks.DefaultWatchOptions())
	if err != nil {
		logger.Fatalf("watch: %v", err)
	}
	defer look.Properties().StopWatching()

	logger.Printf("watching %s", look.Properties().FilePath())
	for key := range changes {
		logger.Printf("changed: %s", key)
		if err := look.Refresh(); err != nil {
			logger.Printf("refresh failed, keeping previous settings: %v", err)
			continue
		}
		if err := report(look, *dumpTable); err != nil {
			logger.Printf("print: %v", err)
		}
	}
}

func report(look *looks.Look, dumpTable bool) error {
	fmt.Printf("# profile %s (%s)\n", look.Profile(), look.Environment())
	if err := look.FontSet().Dump(os.Stdout); err != nil {
		return err
	}
	if !dumpTable {
		return nil
	}
	fmt.Println()
	return look.Table().Dump(os.Stdout)
}
