package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/schovi/mdsh/internal/ansi"
	"github.com/schovi/mdsh/internal/logger"
	"github.com/schovi/mdsh/internal/stream"
	"github.com/schovi/mdsh/internal/textutil"
)

var renderLog = logger.New("cmd:render")

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render text containing ANSI sequences",
	Long: `Render text the way a terminal would display it.

Reads the named file, stdin, or the --input string. Escapes such as \e, \033
and \x1b are interpreted in --input only.

Carriage return handling (--cr):
  overwrite  return to column 0 and overwrite in place (default, like a terminal)
  clear      return to column 0 and clear the line first

Use --watch with a file to re-render whenever it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderInputFlag    string
	renderStripFlag    bool
	renderMarkdownFlag bool
	renderCRFlag       string
	renderTabWidthFlag int
	renderHeadFlag     int
	renderTailFlag     int
	renderJsonFlag     bool
	renderWatchFlag    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFlag, "input", "i", "", "Render this string instead of a file or stdin")
	renderCmd.Flags().BoolVar(&renderStripFlag, "strip", false, "Only remove escape sequences, do not interpret them")
	renderCmd.Flags().BoolVar(&renderMarkdownFlag, "markdown", false, "Render the result as markdown")
	renderCmd.Flags().StringVar(&renderCRFlag, "cr", "overwrite", "Carriage return handling: overwrite or clear")
	renderCmd.Flags().IntVar(&renderTabWidthFlag, "tab-width", ansi.DefaultTabWidth, "Distance between tab stops")
	renderCmd.Flags().IntVar(&renderHeadFlag, "head", 0, "Print only the first N lines")
	renderCmd.Flags().IntVar(&renderTailFlag, "tail", 0, "Print only the last N lines")
	renderCmd.Flags().BoolVar(&renderJsonFlag, "json", false, "Output as JSON")
	renderCmd.Flags().BoolVarP(&renderWatchFlag, "watch", "w", false, "Re-render the file whenever it changes")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderHeadFlag < 0 || renderTailFlag < 0 {
		return fmt.Errorf("--head and --tail require positive integers")
	}
	if renderHeadFlag > 0 && renderTailFlag > 0 {
		return fmt.Errorf("--head and --tail are mutually exclusive")
	}
	if renderWatchFlag && (len(args) == 0 || args[0] == "-") {
		return fmt.Errorf("--watch requires a file argument")
	}
	if renderWatchFlag && renderJsonFlag {
		return fmt.Errorf("--watch cannot be combined with --json")
	}

	opts, err := processorOptions(cmd, renderCRFlag, renderTabWidthFlag)
	if err != nil {
		return err
	}

	var sink stream.Sink
	if !renderJsonFlag && (renderMarkdownFlag || (!cmd.Flags().Changed("markdown") && cfg.Markdown)) {
		if sink, err = newSink(cmd, os.Stdout, true); err != nil {
			return err
		}
	}

	once := func() error {
		text, err := readInput(renderInputFlag, args)
		if err != nil {
			return err
		}
		return printRendered(text, opts, sink)
	}

	if !renderWatchFlag {
		return once()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFile(ctx, args[0], once)
}

func printRendered(text string, opts []ansi.Option, sink stream.Sink) error {
	var out string
	if renderStripFlag {
		out = ansi.Strip(text)
	} else {
		out = ansi.Render(text, opts...)
	}
	out = textutil.LimitLines(out, renderHeadFlag, renderTailFlag)

	if renderJsonFlag {
		data, err := json.MarshalIndent(map[string]interface{}{
			"output": out,
			"lines":  lineCount(out),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if sink != nil {
		return sink.Emit(out)
	}
	fmt.Print(out)
	return nil
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}

// watchFile calls fn now and after every change to path until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are followed.
func watchFile(ctx context.Context, path string, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	redraw := func() {
		fmt.Print("\x1b[2J\x1b[H")
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
		}
	}
	redraw()

	const debounce = 100 * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			renderLog.Printf("change: %s", ev)
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		case <-timer.C:
			redraw()
		}
	}
}
