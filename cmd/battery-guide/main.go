package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/battery-guide/internal/config"
)

var (
	configPath = "battery-guide.yaml"
	logLevel   = ""

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand builds the root command with all subcommands attached
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battery-guide",
		Short: "battery-guide serves a reference catalog of battery specifications",
		Long: `battery-guide serves a reference catalog of battery specifications.

Battery data lives in JSON files under data/<category>/<type>.json. The
server exposes the catalog, search, SVG schematics and a sitemap over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.Log.Level = logLevel
			}
			if err := setupLogger(loaded.Log.Level); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "path to the YAML config file")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", logLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(
		NewServeCommand(),
		NewGenerateCommand(),
		NewSitemapCommand(),
		NewSchematicCommand(),
		NewExportCommand(),
	)

	return cmd
}

// setupLogger installs a JSON slog handler on stderr, so documents written
// to stdout by the sitemap and schematic commands stay clean.
func setupLogger(level string) error {
	l, err := config.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: l,
	}))
	slog.SetDefault(logger)
	return nil
}
