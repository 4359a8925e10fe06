package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/schovi/mdsh/internal/decode"
	"github.com/schovi/mdsh/internal/escape"
)

// readInput returns the text to process: the --input string with escapes
// interpreted, else the named file, else stdin.
func readInput(inputFlag string, args []string) (string, error) {
	if inputFlag != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("--input cannot be combined with a file argument")
		}
		text, err := escape.Interpret(inputFlag)
		if err != nil {
			return "", fmt.Errorf("interpret --input: %w", err)
		}
		return text, nil
	}

	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return decode.Auto(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return decode.Auto(data), nil
}
