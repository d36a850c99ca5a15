package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/sitemap"
)

func NewSitemapCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Render sitemap.xml for the current data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := sitemap.NewBuilder(cfg.Site.BaseURL).Build(catalog.NewLoader(cfg.Data.Dir).AllCategories())
			if err != nil {
				return err
			}

			if err := writeOutput(cmd, out, body); err != nil {
				return fmt.Errorf("failed to write sitemap: %w", err)
			}
			if out != "" {
				slog.Info("sitemap written", "file", out, "bytes", len(body))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to stdout)")
	return cmd
}
