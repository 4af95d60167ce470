package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/pipeline"
	"git.home.luguber.info/inful/llmstxt/internal/selection"
	"git.home.luguber.info/inful/llmstxt/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"llmstxt.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		Output string `short:"o" help:"Override the configured output directory"`
	} `cmd:"" help:"Generate llms.txt artifacts from configured documentation roots"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Discover struct{} `cmd:"" help:"List the document corpus without generating artifacts"`

	Watch struct {
		Output string `short:"o" help:"Override the configured output directory"`
	} `cmd:"" help:"Regenerate artifacts whenever documentation sources change"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	switch kctx.Command() {
	case "generate":
		err = runGenerate(CLI.Generate.Output)
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	case "discover":
		err = runDiscover()
	case "watch":
		err = runWatch(CLI.Watch.Output)
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runGenerate(outputOverride string) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if outputOverride != "" {
		cfg.OutputDir = outputOverride
	}

	ctx, stop := signalContext()
	defer stop()

	return pipeline.NewDriver(cfg).Run(ctx)
}

func runDiscover() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	corpus, err := pipeline.NewDriver(cfg).DiscoverCorpus(ctx)
	if err != nil {
		return err
	}

	for _, p := range corpus {
		fmt.Println(p)
	}
	slog.Info("Discovery complete", "count", len(corpus))

	for _, target := range cfg.Targets() {
		selected := selection.Select(corpus, selection.Rules{
			Include:              target.IncludePatterns,
			Ignore:               target.IgnorePatterns,
			Order:                target.OrderPatterns,
			IncludeUnmatchedLast: target.IncludeUnmatchedLast,
		})
		slog.Info("Target selection", "target", target.Name, "count", len(selected))
	}
	return nil
}

func runWatch(outputOverride string) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if outputOverride != "" {
		cfg.OutputDir = outputOverride
	}

	ctx, stop := signalContext()
	defer stop()

	driver := pipeline.NewDriver(cfg)
	if err := driver.Run(ctx); err != nil {
		return err
	}

	watcher, err := watch.New(driver.LocalRootDirs(), driver.Run)
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
