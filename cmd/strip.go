package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schovi/mdsh/internal/ansi"
)

var stripCmd = &cobra.Command{
	Use:   "strip [file]",
	Short: "Remove ANSI escape sequences without interpreting them",
	Long: `Remove every escape sequence and keep all other characters, including
carriage returns and backspaces, in their original order.

Reads the named file, stdin, or the --input string.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStrip,
}

var stripInputFlag string

func init() {
	stripCmd.Flags().StringVarP(&stripInputFlag, "input", "i", "", "Strip this string instead of a file or stdin")
}

func runStrip(cmd *cobra.Command, args []string) error {
	text, err := readInput(stripInputFlag, args)
	if err != nil {
		return err
	}
	fmt.Print(ansi.Strip(text))
	return nil
}
