package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/terra-clan/battery-guide/internal/generator"
)

func NewGenerateCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the built-in battery table as JSON data files",
		Long: `Write the built-in battery table as JSON data files.

Existing files with the same name are overwritten; other files are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dataDir == "" {
				dataDir = cfg.Data.Dir
			}

			paths, err := generator.Generate(dataDir)
			for _, p := range paths {
				cmd.Printf("%s generated %s\n", color.New(color.Bold, color.FgGreen).Sprint("✔"), p)
			}
			if err != nil {
				return fmt.Errorf("failed to generate battery data: %w", err)
			}

			cmd.Printf("\n%s\n", color.New(color.Bold).Sprintf("Battery data generation complete: %d files in %s", len(paths), dataDir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "data directory (defaults to data.dir from the config)")
	return cmd
}
