package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/schovi/mdsh/internal/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check the processor against built-in scenarios",
	Long: `Render every built-in scenario (colours, cursor movement, erasing, progress
bars, spinners, prompts) and compare the result with the expected screen.

Exits non-zero when any scenario fails.`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

var (
	selftestVerboseFlag    bool
	selftestFailingFlag    bool
	selftestBenchmarkFlag  bool
	selftestIterationsFlag int
	selftestJsonFlag       bool
)

func init() {
	selftestCmd.Flags().BoolVarP(&selftestVerboseFlag, "verbose", "v", false, "Show input and output for every scenario")
	selftestCmd.Flags().BoolVarP(&selftestFailingFlag, "failing", "f", false, "Show only failing scenarios")
	selftestCmd.Flags().BoolVarP(&selftestBenchmarkFlag, "benchmark", "b", false, "Also time repeated processing")
	selftestCmd.Flags().IntVar(&selftestIterationsFlag, "iterations", 1000, "Benchmark iterations")
	selftestCmd.Flags().BoolVar(&selftestJsonFlag, "json", false, "Output as JSON")
}

type selftestFailure struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Want     string `json:"want"`
	Got      string `json:"got"`
}

func runSelftest(cmd *cobra.Command, args []string) error {
	if selftestIterationsFlag <= 0 {
		return fmt.Errorf("--iterations requires a positive integer")
	}

	var w io.Writer = os.Stdout
	if selftestJsonFlag {
		w = io.Discard
	}
	summary := selftest.Run(w, selftest.Scenarios(), selftest.Options{
		Verbose:     selftestVerboseFlag,
		FailingOnly: selftestFailingFlag,
	})

	var bench *selftest.BenchResult
	if selftestBenchmarkFlag {
		b := selftest.Benchmark(selftestIterationsFlag)
		bench = &b
	}

	if selftestJsonFlag {
		failures := []selftestFailure{}
		for _, r := range summary.Results {
			if !r.Passed {
				failures = append(failures, selftestFailure{
					Category: r.Scenario.Category,
					Name:     r.Scenario.Name,
					Want:     r.Scenario.Want,
					Got:      r.Got,
				})
			}
		}
		data, err := json.MarshalIndent(map[string]interface{}{
			"summary":      summary,
			"success_rate": summary.SuccessRate(),
			"failures":     failures,
			"benchmark":    bench,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		fmt.Println(string(data))
	} else if bench != nil {
		fmt.Println()
		fmt.Println(bench.String())
	}

	if !summary.OK() {
		return fmt.Errorf("%d of %d scenarios failed", summary.Failed, summary.Run)
	}
	return nil
}
