package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lucasjlepore/gait-analyzer/config"
)

var (
	configPath string
	logLevel   string
	cfg        = config.Default()
)

func main() {
	// Operation failures exit 1 inside Run; whatever reaches here is a usage error.
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("app.Run", "err", err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "gaitool",
		Usage:   "segment gait cycles in motion capture exports",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "YAML settings file",
				Destination: &configPath,
				Value:       config.DefaultPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "debug|info|warn|error (overrides log_level)",
				Destination: &logLevel,
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			filterCommand(),
			exportCommand(),
			swriteCommand(),
			concatCommand(),
			splitCommand(),
			checkCommand(),
			cleanCommand(),
			diffCommand(),
			batchCommand(),
			analyzeCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("configuration loaded", "path", configPath, "percent", cfg.Percent, "format", cfg.Format)
	return nil
}

// fail logs err under op and exits 1 without printing it twice.
func fail(op string, err error) error {
	slog.Error(op, "err", err)
	return cli.Exit("", 1)
}

func usage(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), 2)
}
