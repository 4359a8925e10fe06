package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schovi/mdsh/internal/ansi"
	"github.com/schovi/mdsh/internal/config"
)

var (
	configFlag string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "mdsh",
	Short: "Markdown shell - show what a terminal would display",
	Long: `mdsh interprets ANSI escape sequences the way a terminal does and prints the
settled text: spinners collapse to their final frame, progress bars to their
last state, and colour codes disappear.

Quick start:
  printf 'Loading\033[2K\033[0GDone\n' | mdsh render   # Render stdin
  mdsh render --input '\e[31mred\e[0m'                # Render a string
  mdsh run "npm install"                              # Run under a pty, render live
  mdsh analyze "ls --color=always"                    # Inspect raw sequences
  mdsh selftest                                       # Check built-in scenarios`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default $XDG_CONFIG_HOME/mdsh/config.yaml)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(versionCmd)
}

// processorOptions builds processor options from the --cr and --tab-width
// flags of cmd, falling back to the config file for flags not given.
func processorOptions(cmd *cobra.Command, crFlag string, tabWidthFlag int) ([]ansi.Option, error) {
	cr := cfg.CarriageReturn
	if cmd.Flags().Changed("cr") {
		cr = crFlag
	}
	tabWidth := cfg.TabWidth
	if cmd.Flags().Changed("tab-width") {
		tabWidth = tabWidthFlag
	}
	if tabWidth < 1 {
		return nil, fmt.Errorf("--tab-width requires a positive integer")
	}

	var mode ansi.CarriageReturn
	switch cr {
	case "overwrite", "":
		mode = ansi.CROverwrite
	case "clear":
		mode = ansi.CRClearLine
	default:
		return nil, fmt.Errorf("--cr must be overwrite or clear, got %q", cr)
	}
	return []ansi.Option{ansi.WithCarriageReturn(mode), ansi.WithTabWidth(tabWidth)}, nil
}
