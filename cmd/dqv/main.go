// Package main implements the command-line interface for the dataset validator (dqv).
// It reads configuration, loads the check suite (or the built-in default),
// runs every case through the executor and reports the results.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"dqv/pkg/config"
	"dqv/pkg/dataset"
	"dqv/pkg/executor"
	"dqv/pkg/reporter"
	"dqv/pkg/suite"
)

func main() {
	configPath := flag.String("config", "", "Path to a dqv config file (default: ./dqv.yaml if present)")
	suitePath := flag.String("p", "", "Path to a check suite YAML file (default: built-in suite)")
	datasetPath := flag.String("f", "", "Path to the dataset file (overrides the suite)")
	format := flag.String("format", "", "Dataset format: csv, tsv, html, xml (default: from extension)")
	policy := flag.String("policy", "", "What a failed check does: continue (print and pass) or fail")
	workers := flag.Int("workers", 0, "Number of cases to run concurrently")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags win over config file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Suite = *suitePath
		case "f":
			cfg.Dataset = *datasetPath
		case "format":
			cfg.Format = *format
		case "policy":
			cfg.Policy = *policy
		case "workers":
			cfg.Workers = *workers
		case "log-level":
			cfg.LogLevel = *logLevel
		case "no-color":
			cfg.NoColor = *noColor
		}
	})
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if cfg.NoColor {
		color.NoColor = true
	}

	failurePolicy, err := executor.ParseFailurePolicy(cfg.Policy)
	if err != nil {
		slog.Error("Invalid failure policy", "error", err)
		os.Exit(1)
	}
	dataFormat, err := dataset.ParseFormat(cfg.Format)
	if err != nil {
		slog.Error("Invalid dataset format", "error", err)
		os.Exit(1)
	}

	// 1. Load suite
	var s *suite.Suite
	if cfg.Suite != "" {
		slog.Info("Loading suite", "path", cfg.Suite)
		s, err = suite.LoadSuiteFromFile(cfg.Suite)
		if err != nil {
			slog.Error("Failed to load suite", "path", cfg.Suite, "error", err)
			os.Exit(1)
		}
		if isSet("f") || s.Dataset.Path == "" {
			s.Dataset.Path = cfg.Dataset
		}
	} else {
		s = suite.DefaultSuite(cfg.Dataset)
	}

	// 2. Execute suite
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := executor.DefaultOptions()
	options.Policy = failurePolicy
	options.Workers = cfg.Workers
	options.Load = dataset.Options{Format: dataFormat}

	result, err := executor.Execute(ctx, s, options)

	// 3. Report results
	reporter.PrintResult(result, os.Stdout)

	if err != nil {
		slog.Error("Execution encountered an error", "error", err)
		stop()
		os.Exit(1)
	}
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
