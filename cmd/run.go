package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/schovi/mdsh/internal/ansi"
	"github.com/schovi/mdsh/internal/decode"
	"github.com/schovi/mdsh/internal/ptyrun"
	"github.com/schovi/mdsh/internal/render"
	"github.com/schovi/mdsh/internal/stream"
)

var runCmd = &cobra.Command{
	Use:   "run [command]",
	Short: "Run a command and render its output live",
	Long: `Run a command under a pseudo-terminal and print what the terminal would
display, line by line as the output settles.

Without a command, an interactive shell is started.

Modes (--mode, or the --pipe and --capture shortcuts):
  pty      the command sees a terminal, colours and spinners included (default)
  pipe     stdout and stderr merged through a pipe, rendered per chunk
  capture  run to completion, then render stdout; stderr is printed after

Capture mode stops the command after the configured timeout (default 30s).`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

var (
	runModeFlag     string
	runPipeFlag     bool
	runCaptureFlag  bool
	runTimeoutFlag  int
	runMarkdownFlag bool
	runColsFlag     int
	runRowsFlag     int
	runCRFlag       string
	runTabWidthFlag int
	runJsonFlag     bool
)

func init() {
	runCmd.Flags().StringVar(&runModeFlag, "mode", "pty", "Run mode: pty, pipe or capture")
	runCmd.Flags().BoolVar(&runPipeFlag, "pipe", false, "Run through a pipe instead of a pseudo-terminal")
	runCmd.Flags().BoolVar(&runCaptureFlag, "capture", false, "Run to completion, then render the captured output")
	runCmd.Flags().IntVar(&runTimeoutFlag, "timeout", 0, "Stop the command after N seconds (0 = no limit, capture uses config)")
	runCmd.Flags().BoolVar(&runMarkdownFlag, "markdown", false, "Render output as markdown")
	runCmd.Flags().IntVar(&runColsFlag, "cols", 0, "Terminal width when stdin is not a terminal")
	runCmd.Flags().IntVar(&runRowsFlag, "rows", 0, "Terminal height when stdin is not a terminal")
	runCmd.Flags().StringVar(&runCRFlag, "cr", "overwrite", "Carriage return handling: overwrite or clear")
	runCmd.Flags().IntVar(&runTabWidthFlag, "tab-width", ansi.DefaultTabWidth, "Distance between tab stops")
	runCmd.Flags().BoolVar(&runJsonFlag, "json", false, "Print a JSON result instead of live output")
}

func runRun(cmd *cobra.Command, args []string) error {
	mode, err := runMode(cmd)
	if err != nil {
		return err
	}
	if runTimeoutFlag < 0 {
		return fmt.Errorf("--timeout requires a non-negative integer")
	}

	opts, err := processorOptions(cmd, runCRFlag, runTabWidthFlag)
	if err != nil {
		return err
	}

	command := strings.Join(args, " ")
	if command == "" {
		command = cfg.ShellOrDefault()
	}

	timeout := time.Duration(runTimeoutFlag) * time.Second
	if !cmd.Flags().Changed("timeout") && mode == ptyrun.ModeCapture {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}

	cols, rows := cfg.Cols, cfg.Rows
	if cmd.Flags().Changed("cols") {
		cols = runColsFlag
	}
	if cmd.Flags().Changed("rows") {
		rows = runRowsFlag
	}

	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))

	// The child owns the terminal in raw mode while it runs.
	var out io.Writer = os.Stdout
	if mode == ptyrun.ModePTY && stdinTTY {
		out = render.NewCRLF(os.Stdout)
	}

	var onChunk ptyrun.ChunkFunc
	var renderer *stream.Renderer
	if !runJsonFlag {
		sink, err := newSink(cmd, out, runMarkdownFlag)
		if err != nil {
			return err
		}
		streamMode := stream.ModeLine
		if mode == ptyrun.ModePipe {
			streamMode = stream.ModeChunk
		}
		renderer = stream.NewRenderer(sink, streamMode, opts...)
		onChunk = renderer.Write
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := ptyrun.Run(ctx, ptyrun.Config{
		Command:       command,
		Shell:         cfg.ShellOrDefault(),
		Mode:          mode,
		Timeout:       timeout,
		Cols:          cols,
		Rows:          rows,
		Stdin:         os.Stdin,
		AnswerQueries: !stdinTTY,
	}, onChunk)
	if renderer != nil {
		if cerr := renderer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("run %q: %w", command, err)
	}

	if runJsonFlag {
		output := decode.Bytes(res.Output)
		data, err := json.MarshalIndent(map[string]interface{}{
			"command":     command,
			"mode":        mode.String(),
			"exit_code":   res.ExitCode,
			"timed_out":   res.TimedOut,
			"duration_ms": res.Duration.Milliseconds(),
			"output":      ansi.Render(output, opts...),
			"stderr":      ansi.Render(decode.Bytes(res.Stderr), opts...),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(res.Stderr) > 0 {
		if err := render.NewConsole(os.Stderr).Emit(ansi.Render(decode.Bytes(res.Stderr), opts...)); err != nil {
			return err
		}
	}
	if res.TimedOut {
		fmt.Fprintf(os.Stderr, "mdsh: %q timed out after %s\n", command, timeout)
	}
	if res.ExitCode != 0 {
		fmt.Fprintf(os.Stderr, "mdsh: %q exited with code %d\n", command, res.ExitCode)
	}
	return nil
}

// newSink returns a markdown sink when requested by flag or config, else a
// plain console sink.
func newSink(cmd *cobra.Command, w io.Writer, markdownFlag bool) (stream.Sink, error) {
	markdown := markdownFlag || (!cmd.Flags().Changed("markdown") && cfg.Markdown)
	if !markdown {
		return render.NewConsole(w), nil
	}
	sink, err := render.NewMarkdown(w, 0)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return sink, nil
}

// runMode resolves --mode and its --pipe/--capture shortcuts.
func runMode(cmd *cobra.Command) (ptyrun.Mode, error) {
	shortcuts := 0
	mode := ptyrun.ModePTY
	if runPipeFlag {
		shortcuts++
		mode = ptyrun.ModePipe
	}
	if runCaptureFlag {
		shortcuts++
		mode = ptyrun.ModeCapture
	}
	if !cmd.Flags().Changed("mode") {
		if shortcuts > 1 {
			return mode, fmt.Errorf("--pipe and --capture are mutually exclusive")
		}
		return mode, nil
	}
	if shortcuts > 0 {
		return mode, fmt.Errorf("--mode cannot be combined with --pipe or --capture")
	}
	parsed, err := ptyrun.ParseMode(runModeFlag)
	if err != nil {
		return mode, fmt.Errorf("--mode: %w", err)
	}
	return parsed, nil
}
