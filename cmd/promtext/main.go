package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/promtext"
	"git.home.luguber.info/inful/promtext/internal/config"
	"git.home.luguber.info/inful/promtext/internal/history"
	"git.home.luguber.info/inful/promtext/internal/publish"
	"git.home.luguber.info/inful/promtext/internal/watch"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Render struct {
		File        string        `arg:"" help:"Render spec file (YAML)"`
		Output      string        `short:"o" help:"Write output to this file instead of stdout"`
		Watch       bool          `help:"Re-render whenever the spec file changes"`
		Every       time.Duration `help:"Re-render on a fixed interval (e.g. 30s)"`
		NatsURL     string        `name:"nats-url" env:"PROMTEXT_NATS_URL" help:"Publish rendered output to this NATS server"`
		NatsSubject string        `name:"nats-subject" env:"PROMTEXT_NATS_SUBJECT" default:"promtext.render" help:"Subject for published output"`
		History     string        `help:"Record each render in this SQLite database"`
	} `cmd:"" help:"Render a spec file into Prometheus exposition text"`

	Validator struct {
		File    string `arg:"" help:"Validator stats file (JSON)"`
		Chain   string `required:"" help:"Value for the chain label"`
		Network string `required:"" help:"Value for the network label"`
		Account string `required:"" help:"Value for the account label"`
	} `cmd:"" help:"Render validator stats using the fixed metric schema"`
}

func main() {
	// .env values feed the env-tagged flags, so load before parsing.
	_ = godotenv.Load()
	ctx := kong.Parse(&CLI)

	// Logs go to stderr; stdout carries the rendered exposition text.
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	var err error
	switch ctx.Command() {
	case "render <file>":
		err = runRender()
	case "validator <file>":
		err = runValidator()
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes bad spec input from runtime trouble so scripts can
// branch on it.
func exitCode(err error) int {
	var typeErr *promtext.InvalidMetricTypeError
	var undefErr *promtext.UndefinedMetricError
	if errors.As(err, &typeErr) || errors.As(err, &undefErr) {
		return 2
	}
	return 1
}

func runRender() error {
	var pub *publish.NATSPublisher
	if CLI.Render.NatsURL != "" {
		p, err := publish.NewNATSPublisher(CLI.Render.NatsURL, CLI.Render.NatsSubject)
		if err != nil {
			return err
		}
		pub = p
		defer pub.Close()
	}

	var store *history.Store
	if CLI.Render.History != "" {
		s, err := history.Open(CLI.Render.History)
		if err != nil {
			return err
		}
		store = s
		defer store.Close()
	}

	render := func() error {
		spec, err := config.Load(CLI.Render.File)
		if err != nil {
			return err
		}
		g := promtext.NewGenerator()
		if err := spec.Apply(g); err != nil {
			return err
		}
		out := g.Output()
		runID := uuid.NewString()

		if CLI.Render.Output != "" {
			if err := os.WriteFile(CLI.Render.Output, []byte(out+"\n"), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		} else if out != "" {
			fmt.Println(out)
		}
		if pub != nil {
			if err := pub.Publish(runID, []byte(out)); err != nil {
				return err
			}
		}
		if store != nil {
			if err := store.Record(context.Background(), runID, CLI.Render.File, out); err != nil {
				return err
			}
		}
		slog.Debug("Render complete", "run_id", runID, "lines", g.Len())
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !CLI.Render.Watch && CLI.Render.Every == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rerender := func() {
		if err := render(); err != nil {
			slog.Error("Render failed", "error", err)
		}
	}

	if CLI.Render.Watch {
		w, err := watch.New(CLI.Render.File, rerender)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	if CLI.Render.Every > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		if _, err := scheduler.NewJob(
			gocron.DurationJob(CLI.Render.Every),
			gocron.NewTask(rerender),
			gocron.WithName("periodic-render"),
		); err != nil {
			return fmt.Errorf("schedule periodic render: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("Periodic render scheduled", "interval", CLI.Render.Every)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	slog.Info("Shutting down")
	return nil
}

func runValidator() error {
	data, err := os.ReadFile(CLI.Validator.File)
	if err != nil {
		return fmt.Errorf("read stats file: %w", err)
	}
	var stats promtext.ValidatorStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("parse stats file %s: %w", CLI.Validator.File, err)
	}

	g := promtext.NewGenerator()
	if err := g.AppendValidatorStats(stats, CLI.Validator.Chain, CLI.Validator.Network, CLI.Validator.Account); err != nil {
		return err
	}
	if out := g.Output(); out != "" {
		fmt.Println(out)
	}
	return nil
}
