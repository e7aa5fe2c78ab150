// rubik3d - 3x3x3 puzzle visualisation harness.
//
// Controls:
//
//	Left/Right  - Pick the cubie, group or camera to edit
//	Tab         - Focus the next axis field
//	Enter       - Apply the focused field
//	Esc         - Leave the fields
//	R           - Reset the camera to the origin
//	F           - Step the fan group by 30 degrees
package main

import (
	"fmt"
	"os"

	"github.com/smasonuk/rubik3d"
	"github.com/spf13/cobra"
)

var (
	configPath string
	variant    string
	shift      int
)

func main() {
	cmd := &cobra.Command{
		Use:   "rubik3d",
		Short: "3x3x3 puzzle visualisation harness",
		Long: `rubik3d - 3x3x3 puzzle visualisation harness

Shows the cubies of a 3x3x3 puzzle and lets you set per-axis rotations on
single cubies, pivot groups and the whole assembly.

Controls:
  Left/Right  - Pick the cubie, group or camera to edit
  Tab         - Focus the next axis field
  Enter       - Apply the focused field
  Esc         - Leave the fields
  R           - Reset the camera to the origin
  F           - Step the fan group by 30 degrees`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&variant, "variant", "", "Scene to show (single, fan, grid)")

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the cubie layout table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
	layoutCmd.Flags().IntVar(&shift, "shift", rubik3d.DefaultLayoutShift, "Offset added to every coordinate")
	cmd.AddCommand(layoutCmd)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (rubik3d.Config, error) {
	cfg, err := rubik3d.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if variant != "" {
		cfg.Variant = variant
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return rubik3d.Run(cfg)
}

func runLayout() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := cfg.Scene().LayoutTable()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	fmt.Printf("%-6s %-14s %s\n", "Cubie", "Base", "Shifted")
	for _, i := range table.Indices() {
		base, _ := table.Position(i)
		moved, _ := table.Shifted(i, shift)
		fmt.Printf("%-6d (%2d, %2d, %2d)   (%2d, %2d, %2d)\n", i, base.X, base.Y, base.Z, moved.X, moved.Y, moved.Z)
	}
	return nil
}
