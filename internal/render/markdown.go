package render

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/schovi/mdsh/internal/logger"
)

var log = logger.New("render")

const (
	defaultWidth = 80
	gutter       = 2
	minWrap      = 10
)

// Markdown renders each unit as markdown. Units that fail to render are
// written as plain text.
type Markdown struct {
	plain    *Console
	w        io.Writer
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a markdown sink wrapping at width columns. A width of
// zero uses the terminal width of stdout, or 80 when stdout is not a terminal.
func NewMarkdown(w io.Writer, width int) (*Markdown, error) {
	if width <= 0 {
		width = TerminalWidth()
	}
	wrap := max(width-gutter, minWrap)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	return &Markdown{plain: NewConsole(w), w: w, renderer: r}, nil
}

func (m *Markdown) Emit(text string) error {
	out, err := m.renderer.Render(text)
	if err != nil {
		log.Printf("markdown render failed, writing plain text: %v", err)
		return m.plain.Emit(text)
	}
	return m.plain.Emit(out)
}

// TerminalWidth returns the column count of stdout, or 80.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
