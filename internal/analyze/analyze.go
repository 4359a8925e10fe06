// Package analyze captures how a command's raw output is interpreted: which
// escape sequences it contains and what each renderer makes of it.
package analyze

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/schovi/mdsh/internal/ansi"
	"github.com/schovi/mdsh/internal/decode"
	"github.com/schovi/mdsh/internal/vterm"
)

type SequenceInfo struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Kind        string `json:"kind"`
	Escaped     string `json:"escaped"`
	Description string `json:"description"`
}

// Comparison records which renderings agree. The reference fields are nil
// when no reference rendering was made.
type Comparison struct {
	RawEqualsProcessed       bool  `json:"raw_equals_processed"`
	RawEqualsStripped        bool  `json:"raw_equals_stripped"`
	ProcessedEqualsStripped  bool  `json:"processed_equals_stripped"`
	StripAgreesWithReference bool  `json:"strip_agrees_with_reference"`
	ReferenceEqualsProcessed *bool `json:"reference_equals_processed,omitempty"`
	ReferenceEqualsStripped  *bool `json:"reference_equals_stripped,omitempty"`
}

// Changed reports whether processing altered the output at all.
func (c Comparison) Changed() bool {
	return !c.RawEqualsProcessed
}

type Analysis struct {
	RunID     string `json:"run_id"`
	Command   string `json:"command"`
	ExitCode  int    `json:"exit_code"`
	TimedOut  bool   `json:"timed_out"`
	RawBytes  []byte `json:"-"`
	Raw       string `json:"raw"`
	Processed string `json:"processed"`
	Stripped  string `json:"stripped"`
	// ReferenceStrip is the raw output stripped by an independent parser.
	ReferenceStrip string `json:"reference_strip"`
	// Reference is the screen a full VT emulator shows, if requested.
	Reference  *string        `json:"reference,omitempty"`
	Sequences  []SequenceInfo `json:"sequences"`
	Comparison Comparison     `json:"comparison"`
}

type Options struct {
	// Reference renders the output through the VT emulator as well.
	Reference bool
	Cols      int
	TimedOut  bool
	Processor []ansi.Option
}

func Analyze(command string, raw []byte, exitCode int, opts Options) *Analysis {
	text := decode.Auto(raw)

	a := &Analysis{
		RunID:          uuid.NewString(),
		Command:        command,
		ExitCode:       exitCode,
		TimedOut:       opts.TimedOut,
		RawBytes:       raw,
		Raw:            text,
		Processed:      ansi.Render(text, opts.Processor...),
		Stripped:       ansi.Strip(text),
		ReferenceStrip: xansi.Strip(text),
	}

	for _, seq := range ansi.Scan(text) {
		a.Sequences = append(a.Sequences, SequenceInfo{
			Start:       seq.Start,
			End:         seq.End,
			Kind:        seq.Kind.String(),
			Escaped:     escaped(seq.Raw),
			Description: ansi.Describe(seq),
		})
	}

	if opts.Reference {
		ref := vterm.Render(text, opts.Cols)
		a.Reference = &ref
	}
	a.Comparison = compare(a)
	return a
}

func compare(a *Analysis) Comparison {
	c := Comparison{
		RawEqualsProcessed:       a.Raw == a.Processed,
		RawEqualsStripped:        a.Raw == a.Stripped,
		ProcessedEqualsStripped:  a.Processed == a.Stripped,
		StripAgreesWithReference: a.Stripped == a.ReferenceStrip,
	}
	if a.Reference != nil {
		ref := screen(*a.Reference)
		processed := screen(a.Processed)
		stripped := screen(a.Stripped)
		eqProcessed := ref == processed
		eqStripped := ref == stripped
		c.ReferenceEqualsProcessed = &eqProcessed
		c.ReferenceEqualsStripped = &eqStripped
	}
	return c
}

// screen normalises text for comparison with the emulator's screen, which
// has no trailing spaces, blank trailing lines or carriage returns.
func screen(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// escaped quotes s with ESC shown as \x1b, trimming the surrounding quotes.
func escaped(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
