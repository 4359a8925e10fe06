// Package selftest runs the processor against built-in captures of real
// shell output and reports which ones render as a terminal would.
package selftest

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/schovi/mdsh/internal/ansi"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

type Options struct {
	Verbose bool
	// FailingOnly suppresses everything but failures and the summary.
	FailingOnly bool
}

type Result struct {
	Scenario Scenario
	Got      string
	Stripped string
	Passed   bool
}

type Summary struct {
	Run      int           `json:"run"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
	Results  []Result      `json:"-"`
}

func (s Summary) OK() bool {
	return s.Failed == 0
}

// SuccessRate is the passed percentage, 0 when nothing ran.
func (s Summary) SuccessRate() float64 {
	if s.Run == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Run) * 100
}

// Check renders one scenario.
func Check(sc Scenario) Result {
	got := ansi.Render(sc.Input, sc.Options...)
	return Result{
		Scenario: sc,
		Got:      got,
		Stripped: ansi.Strip(sc.Input),
		Passed:   got == sc.Want,
	}
}

// Run checks every scenario and writes a report to w.
func Run(w io.Writer, scenarios []Scenario, opts Options) Summary {
	start := time.Now()
	var sum Summary

	category := ""
	for _, sc := range scenarios {
		if sc.Category != category {
			category = sc.Category
			if !opts.FailingOnly {
				fmt.Fprintf(w, "%s\n", titleStyle.Render("Testing "+category+"..."))
			}
		}

		res := Check(sc)
		sum.Run++
		sum.Results = append(sum.Results, res)
		if res.Passed {
			sum.Passed++
			if opts.Verbose && !opts.FailingOnly {
				fmt.Fprintf(w, "%s %s\n", passStyle.Render("PASS"), sc.Name)
				writeDetail(w, res, false)
			}
			continue
		}
		sum.Failed++
		fmt.Fprintf(w, "%s %s\n", failStyle.Render("FAIL"), sc.Name)
		writeDetail(w, res, true)
	}

	sum.Duration = time.Since(start)
	writeSummary(w, sum)
	return sum
}

func writeDetail(w io.Writer, res Result, failed bool) {
	if res.Scenario.Description != "" {
		fmt.Fprintf(w, "   %s\n", res.Scenario.Description)
	}
	fmt.Fprintf(w, "   Input:    %s\n", strconv.Quote(res.Scenario.Input))
	if failed {
		fmt.Fprintf(w, "   Expected: %s\n", strconv.Quote(res.Scenario.Want))
		fmt.Fprintf(w, "   Got:      %s\n", strconv.Quote(res.Got))
	} else {
		fmt.Fprintf(w, "   Output:   %s\n", strconv.Quote(res.Got))
	}
	fmt.Fprintf(w, "   Stripped: %s\n\n", strconv.Quote(res.Stripped))
}

func writeSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, titleStyle.Render("Test Results Summary"))
	fmt.Fprintf(w, "Passed: %d\n", s.Passed)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "Total:  %d\n", s.Run)
	fmt.Fprintf(w, "Success Rate: %.1f%%\n", s.SuccessRate())
	fmt.Fprintf(w, "Runtime: %s\n", s.Duration.Round(time.Microsecond))
	if s.OK() {
		fmt.Fprintln(w, passStyle.Render("All scenarios passed."))
	} else {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("%d scenario(s) failed.", s.Failed)))
	}
}

type BenchResult struct {
	Iterations int           `json:"iterations"`
	Total      time.Duration `json:"total"`
	PerOp      time.Duration `json:"per_op"`
	InputLen   int           `json:"input_len"`
}

func (b BenchResult) String() string {
	return fmt.Sprintf("Processed %d sequences in %s\nAverage: %s per sequence\nInput length: %d bytes",
		b.Iterations, b.Total.Round(time.Microsecond), b.PerOp, b.InputLen)
}

// Benchmark processes BenchmarkInput iterations times with one reused
// processor.
func Benchmark(iterations int) BenchResult {
	if iterations <= 0 {
		iterations = 1000
	}
	input := BenchmarkInput()
	p := ansi.New()

	start := time.Now()
	for i := 0; i < iterations; i++ {
		p.Process(input)
	}
	total := time.Since(start)

	return BenchResult{
		Iterations: iterations,
		Total:      total,
		PerOp:      total / time.Duration(iterations),
		InputLen:   len(input),
	}
}
