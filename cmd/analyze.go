package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/schovi/mdsh/internal/analyze"
	"github.com/schovi/mdsh/internal/ansi"
	"github.com/schovi/mdsh/internal/logger"
	"github.com/schovi/mdsh/internal/ptyrun"
	"github.com/schovi/mdsh/internal/vterm"
	"github.com/schovi/mdsh/internal/wait"
)

var analyzeLog = logger.New("cmd:analyze")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <command>",
	Short: "Run a command and report the escape sequences it emits",
	Long: `Run a command under a pseudo-terminal and report its raw output, every escape
sequence found with a description, and the processed and stripped renderings
side by side with a full terminal emulator's screen.

The command is stopped after --timeout seconds, or earlier once its output
matches --wait or stops changing for --settle milliseconds.

Reports are saved to the log directory unless --no-log is given or logging
is disabled in the config.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeHexFlag         bool
	analyzeNoCompareFlag   bool
	analyzeNoReferenceFlag bool
	analyzeTimeoutFlag     int
	analyzeWaitFlag        string
	analyzeSettleFlag      int
	analyzeNoLogFlag       bool
	analyzeLogDirFlag      string
	analyzeJsonFlag        bool
	analyzeColsFlag        int
	analyzeCRFlag          string
	analyzeTabWidthFlag    int
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeHexFlag, "hex", false, "Include a hex dump of the raw output")
	analyzeCmd.Flags().BoolVar(&analyzeNoCompareFlag, "no-compare", false, "Skip the comparison section")
	analyzeCmd.Flags().BoolVar(&analyzeNoReferenceFlag, "no-reference", false, "Skip the terminal emulator rendering")
	analyzeCmd.Flags().IntVar(&analyzeTimeoutFlag, "timeout", 5, "Stop the command after N seconds")
	analyzeCmd.Flags().StringVar(&analyzeWaitFlag, "wait", "", "Stop once the output matches this regex")
	analyzeCmd.Flags().IntVar(&analyzeSettleFlag, "settle", 0, "Stop once output is unchanged for N ms")
	analyzeCmd.Flags().BoolVar(&analyzeNoLogFlag, "no-log", false, "Do not save the report")
	analyzeCmd.Flags().StringVar(&analyzeLogDirFlag, "log-dir", "", "Directory for saved reports (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJsonFlag, "json", false, "Output as JSON")
	analyzeCmd.Flags().IntVar(&analyzeColsFlag, "cols", vterm.DefaultCols, "Terminal width for the command and the emulator")
	analyzeCmd.Flags().StringVar(&analyzeCRFlag, "cr", "overwrite", "Carriage return handling: overwrite or clear")
	analyzeCmd.Flags().IntVar(&analyzeTabWidthFlag, "tab-width", ansi.DefaultTabWidth, "Distance between tab stops")
}

// outputBuffer collects decoded output for the wait poller.
type outputBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (o *outputBuffer) write(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.b.WriteString(text)
	return nil
}

func (o *outputBuffer) read() (string, int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.b.String()
	return s, len(s), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeTimeoutFlag <= 0 {
		return fmt.Errorf("--timeout requires a positive integer")
	}
	if analyzeSettleFlag < 0 {
		return fmt.Errorf("--settle requires a non-negative integer")
	}
	if analyzeColsFlag <= 0 {
		return fmt.Errorf("--cols requires a positive integer")
	}
	if analyzeWaitFlag != "" {
		if _, err := regexp.Compile(analyzeWaitFlag); err != nil {
			return fmt.Errorf("invalid --wait pattern: %w", err)
		}
	}

	opts, err := processorOptions(cmd, analyzeCRFlag, analyzeTabWidthFlag)
	if err != nil {
		return err
	}

	command := strings.Join(args, " ")
	rows := cfg.Rows
	if rows <= 0 {
		rows = 24
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf outputBuffer
	var wg conc.WaitGroup
	if analyzeWaitFlag != "" || analyzeSettleFlag > 0 {
		wg.Go(func() {
			_, _, err := wait.ForOutput(ctx, buf.read, wait.Config{
				Pattern:  analyzeWaitFlag,
				SettleMs: analyzeSettleFlag,
			})
			if err == nil {
				analyzeLog.Print("wait condition met, stopping command")
				cancel()
			} else if !errors.Is(err, context.Canceled) {
				analyzeLog.Printf("wait: %v", err)
			}
		})
	}

	res, runErr := ptyrun.Run(ctx, ptyrun.Config{
		Command:       command,
		Shell:         cfg.ShellOrDefault(),
		Mode:          ptyrun.ModePTY,
		Timeout:       time.Duration(analyzeTimeoutFlag) * time.Second,
		Cols:          analyzeColsFlag,
		Rows:          rows,
		AnswerQueries: true,
	}, buf.write)
	cancel()
	wg.Wait()
	if res == nil {
		return fmt.Errorf("run %q: %w", command, runErr)
	}
	if runErr != nil {
		analyzeLog.Printf("run error: %v", runErr)
	}

	a := analyze.Analyze(command, res.Output, res.ExitCode, analyze.Options{
		Reference: !analyzeNoReferenceFlag,
		Cols:      analyzeColsFlag,
		TimedOut:  res.TimedOut,
		Processor: opts,
	})
	report := analyze.Report(a, analyze.ReportOptions{
		Hex:     analyzeHexFlag,
		Compare: !analyzeNoCompareFlag,
	})

	var logPath string
	if cfg.Logging && !analyzeNoLogFlag {
		dir := cfg.LogDir
		if analyzeLogDirFlag != "" {
			dir = analyzeLogDirFlag
		}
		logPath, err = analyze.NewLogWriter(dir).Write(a, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mdsh: save report: %v\n", err)
		}
	}

	if analyzeJsonFlag {
		data, err := json.MarshalIndent(struct {
			*analyze.Analysis
			LogFile string `json:"log_file,omitempty"`
		}{a, logPath}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(report)
	if logPath != "" {
		fmt.Printf("\nReport saved to %s\n", logPath)
	}
	return nil
}
