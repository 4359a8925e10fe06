package analyze

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	maxSequences   = 10
	maxHexLines    = 20
	maxVisualLines = 10
	maxSectionRows = 5
	sectionWidth   = 55
	visualWidth    = 60
	maxQuoted      = 500
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("243")).
			Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type ReportOptions struct {
	Hex     bool
	Compare bool
}

// Report renders the analysis as boxed sections.
func Report(a *Analysis, opts ReportOptions) string {
	var sections []string
	add := func(s string) { sections = append(sections, s) }

	add(titleStyle.Render("Raw ANSI Analyzer") + "\n" + strings.Join([]string{
		"Command:    " + a.Command,
		exitLine(a),
		fmt.Sprintf("Raw Length: %d bytes", len(a.RawBytes)),
		dimStyle.Render("Run ID:     " + a.RunID),
	}, "\n"))

	add(sequenceSection(a.Sequences))
	add(outputSection("Raw Output (with ANSI sequences)", a.Raw))
	if a.Reference != nil {
		add(outputSection("Reference Output (VT emulator)", *a.Reference))
	}
	add(outputSection("Processed Output", a.Processed))
	add(outputSection("Stripped Output (ANSI sequences removed)", a.Stripped))

	if opts.Compare {
		add(comparisonSection(a.Comparison))
	}
	if opts.Hex {
		add(hexSection(a.RawBytes))
	}
	add(visualSection(a))

	if len(a.Sequences) == 0 && len(a.RawBytes) > 50 {
		add(dimStyle.Render("Note: some commands only emit colour when they detect a terminal.\n" +
			"Try explicit sequences, e.g. printf '\\033[31mRed\\033[0m'."))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func exitLine(a *Analysis) string {
	line := fmt.Sprintf("Exit Code:  %d", a.ExitCode)
	if a.TimedOut {
		line += warnStyle.Render(" (timed out)")
	}
	return line
}

func box(title string, lines []string) string {
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}
	return titleStyle.Render(title) + "\n" + boxStyle.Render(strings.Join(lines, "\n"))
}

func sequenceSection(seqs []SequenceInfo) string {
	title := fmt.Sprintf("ANSI Sequences Found: %d", len(seqs))
	if len(seqs) == 0 {
		return titleStyle.Render(title)
	}
	var lines []string
	for i, s := range seqs[:min(len(seqs), maxSequences)] {
		lines = append(lines, fmt.Sprintf("%2d. %-20s → %s", i+1, s.Escaped, s.Description))
	}
	if rest := len(seqs) - maxSequences; rest > 0 {
		lines = append(lines, fmt.Sprintf("    ... and %d more sequences", rest))
	}
	return box(title, lines)
}

func outputSection(title, content string) string {
	if content == "" {
		return box(title, nil)
	}
	rows := strings.Split(content, "\n")
	if len(rows) <= maxSectionRows {
		return box(title, []string{runewidth.Truncate(strconv.Quote(content), maxQuoted, "...")})
	}
	var lines []string
	for _, row := range rows[:maxSectionRows] {
		lines = append(lines, runewidth.Truncate(strconv.Quote(row), sectionWidth, "..."))
	}
	lines = append(lines, fmt.Sprintf("... and %d more lines", len(rows)-maxSectionRows))
	return box(title, lines)
}

func comparisonSection(c Comparison) string {
	lines := []string{
		fmt.Sprintf("Raw == Processed:       %v", c.RawEqualsProcessed),
		fmt.Sprintf("Raw == Stripped:        %v", c.RawEqualsStripped),
		fmt.Sprintf("Processed == Stripped:  %v", c.ProcessedEqualsStripped),
		fmt.Sprintf("Strip == x/ansi Strip:  %v", c.StripAgreesWithReference),
	}
	if c.ReferenceEqualsProcessed != nil {
		lines = append(lines,
			fmt.Sprintf("Reference == Processed: %v", *c.ReferenceEqualsProcessed),
			fmt.Sprintf("Reference == Stripped:  %v", *c.ReferenceEqualsStripped),
		)
		if *c.ReferenceEqualsProcessed {
			lines = append(lines, goodStyle.Render("Processor matches the VT emulator"))
		} else {
			lines = append(lines, warnStyle.Render("Processor differs from the VT emulator"))
		}
	}
	lines = append(lines, fmt.Sprintf("Processing Changed Output: %v", c.Changed()))
	return box("Comparison", lines)
}

func hexSection(raw []byte) string {
	lines := strings.Split(HexDump(raw, 16), "\n")
	if len(lines) > maxHexLines {
		rest := len(lines) - maxHexLines
		lines = append(lines[:maxHexLines], fmt.Sprintf("... and %d more lines", rest))
	}
	return box("Hex Dump", lines)
}

func visualSection(a *Analysis) string {
	text := a.Processed
	if strings.TrimSpace(text) == "" {
		text = a.Stripped
	}
	if strings.TrimSpace(text) == "" {
		return box("Visual Output", []string{"(no visible output)"})
	}

	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var lines []string
	for _, row := range rows[:min(len(rows), maxVisualLines)] {
		lines = append(lines, runewidth.Truncate(row, visualWidth, "..."))
	}
	if rest := len(rows) - maxVisualLines; rest > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more lines", rest))
	}
	return box("Visual Output", lines)
}
