package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/models"
	"github.com/terra-clan/battery-guide/internal/schematic"
)

func NewSchematicCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schematic <category> <type>",
		Short: "Render the SVG schematic of a battery",
		Long: `Render the SVG schematic of a battery.

The type may be given as shown ("CR-V3") or as its page slug ("cr-v3").`,
		Example: `  battery-guide schematic traditional 9V --out 9v.svg`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, batteryType := args[0], args[1]

			battery, err := catalog.NewLoader(cfg.Data.Dir).FindBySlug(category, models.Slug(batteryType))
			if err != nil {
				return err
			}
			if battery == nil {
				return fmt.Errorf("battery %q not found in %s", batteryType, category)
			}

			if !schematic.CanGenerate(battery) {
				slog.Warn("battery has insufficient dimensions, rendering placeholder", "type", battery.Type)
			}

			return writeOutput(cmd, out, []byte(schematic.Generate(battery)))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to stdout)")
	return cmd
}
