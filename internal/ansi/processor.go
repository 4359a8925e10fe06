package ansi

import (
	"strings"
	"unicode/utf8"
)

// CarriageReturn selects what a bare carriage return does to the line it
// returns to.
type CarriageReturn int

const (
	// CROverwrite moves to column 0 and leaves the line alone, like a real
	// terminal. Shorter text written afterwards leaves the old tail visible.
	CROverwrite CarriageReturn = iota
	// CRClearLine moves to column 0 and clears the line, so each
	// \r-separated update replaces the previous one entirely.
	CRClearLine
)

// DefaultTabWidth is the distance between tab stops.
const DefaultTabWidth = 8

// Cursor is a zero-based screen position.
type Cursor struct {
	Row int
	Col int
}

// Processor interprets text containing ANSI control sequences against a
// virtual screen and reports what a terminal would display.
//
// A Processor is not safe for concurrent use. Process resets all state, so a
// single instance can be reused for unrelated streams one after another.
type Processor struct {
	lines    [][]rune
	cur      Cursor
	saved    Cursor
	crMode   CarriageReturn
	tabWidth int
}

type Option func(*Processor)

func WithCarriageReturn(mode CarriageReturn) Option {
	return func(p *Processor) {
		p.crMode = mode
	}
}

func WithTabWidth(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.tabWidth = n
		}
	}
}

func New(opts ...Option) *Processor {
	p := &Processor{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p
}

// Render processes text with a fresh Processor.
func Render(text string, opts ...Option) string {
	return New(opts...).Process(text)
}

// Reset clears the screen to a single empty line with the cursor and the
// saved cursor at the origin.
func (p *Processor) Reset() {
	p.lines = [][]rune{nil}
	p.cur = Cursor{}
	p.saved = Cursor{}
}

// Process resets the processor, interprets text and returns the rendered
// screen. Leading and trailing empty lines are dropped; a trailing newline is
// kept only when the visible input ended with one.
func (p *Processor) Process(text string) string {
	p.Reset()
	p.feed(text)
	return p.result(strings.HasSuffix(Strip(text), "\n"))
}

func (p *Processor) Cursor() Cursor {
	return p.cur
}

// Lines returns a copy of the screen buffer.
func (p *Processor) Lines() []string {
	out := make([]string, len(p.lines))
	for i, l := range p.lines {
		out[i] = string(l)
	}
	return out
}

func (p *Processor) feed(text string) {
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == esc:
			seq := scanAt(text, i)
			p.apply(seq)
			i = seq.End
		case c == '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				p.lineFeed()
				i += 2
				continue
			}
			p.carriageReturn()
			i++
		case c == '\n':
			p.lineFeed()
			i++
		case c == '\t':
			p.cur.Col = (p.cur.Col/p.tabWidth + 1) * p.tabWidth
			i++
		case c == '\b':
			p.cur.Col = max(0, p.cur.Col-1)
			i++
		case c < 0x20 || c == 0x7F:
			i++
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			p.put(r)
			i += size
		}
	}
}

func (p *Processor) apply(seq Sequence) {
	switch seq.Kind {
	case KindPartial:
		// The stream ended mid-sequence: show what was received, minus ESC.
		p.feed(seq.Raw[1:])
		return
	case KindCSI, KindEscape:
	default:
		return
	}

	switch lookup(seq) {
	case cmdCursorUp:
		p.cur.Row = max(0, p.cur.Row-count(seq))
	case cmdCursorDown:
		p.cur.Row += count(seq)
		p.ensureRow(p.cur.Row)
	case cmdCursorForward:
		p.cur.Col += count(seq)
	case cmdCursorBack:
		p.cur.Col = max(0, p.cur.Col-count(seq))
	case cmdNextLine:
		p.cur.Row += count(seq)
		p.cur.Col = 0
		p.ensureRow(p.cur.Row)
	case cmdPrevLine:
		p.cur.Row = max(0, p.cur.Row-count(seq))
		p.cur.Col = 0
	case cmdColumn:
		p.cur.Col = max(0, seq.Param(0, 1)-1)
	case cmdRow:
		p.cur.Row = max(0, seq.Param(0, 1)-1)
		p.ensureRow(p.cur.Row)
	case cmdPosition:
		p.cur.Row = max(0, seq.Param(0, 1)-1)
		p.cur.Col = max(0, seq.Param(1, 1)-1)
		p.ensureRow(p.cur.Row)
	case cmdEraseDisplay:
		p.eraseDisplay(seq.Param(0, 0))
	case cmdEraseLine:
		p.eraseLine(seq.Param(0, 0))
	case cmdEraseChars:
		p.eraseChars(count(seq))
	case cmdDeleteChars:
		p.deleteChars(count(seq))
	case cmdInsertChars:
		p.insertChars(count(seq))
	case cmdSaveCursor:
		p.saved = p.cur
	case cmdRestoreCursor:
		p.cur = Cursor{Row: max(0, p.saved.Row), Col: max(0, p.saved.Col)}
		p.ensureRow(p.cur.Row)
	case cmdIndex:
		p.cur.Row++
		p.ensureRow(p.cur.Row)
	case cmdReverseIndex:
		p.cur.Row = max(0, p.cur.Row-1)
	case cmdReset:
		p.Reset()
	}
}

// count is the repeat parameter of relative commands, where 0 means 1.
func count(seq Sequence) int {
	n := seq.Param(0, 1)
	if n < 1 {
		return 1
	}
	return n
}

func (p *Processor) ensureRow(row int) {
	for len(p.lines) <= row {
		p.lines = append(p.lines, nil)
	}
}

func (p *Processor) lineFeed() {
	p.cur.Row++
	p.cur.Col = 0
	p.ensureRow(p.cur.Row)
}

func (p *Processor) carriageReturn() {
	p.cur.Col = 0
	if p.crMode == CRClearLine {
		p.ensureRow(p.cur.Row)
		p.lines[p.cur.Row] = nil
	}
}

// put overwrites the cell under the cursor, padding the line with spaces
// when the cursor is past its end.
func (p *Processor) put(r rune) {
	p.ensureRow(p.cur.Row)
	line := p.lines[p.cur.Row]
	for len(line) < p.cur.Col {
		line = append(line, ' ')
	}
	if p.cur.Col == len(line) {
		line = append(line, r)
	} else {
		line[p.cur.Col] = r
	}
	p.lines[p.cur.Row] = line
	p.cur.Col++
}

func (p *Processor) eraseDisplay(mode int) {
	p.ensureRow(p.cur.Row)
	switch mode {
	case 0:
		p.truncateLine()
		p.lines = p.lines[:p.cur.Row+1]
	case 1:
		for i := 0; i < p.cur.Row; i++ {
			p.lines[i] = nil
		}
		p.blankToCursor()
	case 2, 3:
		p.lines = [][]rune{nil}
		p.cur = Cursor{}
	}
}

func (p *Processor) eraseLine(mode int) {
	p.ensureRow(p.cur.Row)
	switch mode {
	case 0:
		p.truncateLine()
	case 1:
		p.blankToCursor()
	case 2:
		p.lines[p.cur.Row] = nil
	}
}

func (p *Processor) truncateLine() {
	line := p.lines[p.cur.Row]
	if p.cur.Col < len(line) {
		p.lines[p.cur.Row] = line[:p.cur.Col]
	}
}

// blankToCursor blanks from column 0 through the cursor column inclusive,
// without extending the line.
func (p *Processor) blankToCursor() {
	line := p.lines[p.cur.Row]
	end := min(p.cur.Col+1, len(line))
	for i := 0; i < end; i++ {
		line[i] = ' '
	}
}

func (p *Processor) eraseChars(n int) {
	p.ensureRow(p.cur.Row)
	line := p.lines[p.cur.Row]
	end := min(p.cur.Col+n, len(line))
	for i := p.cur.Col; i < end; i++ {
		line[i] = ' '
	}
}

func (p *Processor) deleteChars(n int) {
	p.ensureRow(p.cur.Row)
	line := p.lines[p.cur.Row]
	if p.cur.Col >= len(line) {
		return
	}
	end := min(p.cur.Col+n, len(line))
	p.lines[p.cur.Row] = append(line[:p.cur.Col], line[end:]...)
}

func (p *Processor) insertChars(n int) {
	p.ensureRow(p.cur.Row)
	line := p.lines[p.cur.Row]
	if p.cur.Col >= len(line) {
		return
	}
	blanks := []rune(strings.Repeat(" ", n))
	out := make([]rune, 0, len(line)+n)
	out = append(out, line[:p.cur.Col]...)
	out = append(out, blanks...)
	out = append(out, line[p.cur.Col:]...)
	p.lines[p.cur.Row] = out
}

func (p *Processor) result(trailingNewline bool) string {
	first, last := 0, len(p.lines)-1
	for first <= last && len(p.lines[first]) == 0 {
		first++
	}
	for last >= first && len(p.lines[last]) == 0 {
		last--
	}
	if first > last {
		return ""
	}

	var b strings.Builder
	for i := first; i <= last; i++ {
		if i > first {
			b.WriteByte('\n')
		}
		b.WriteString(string(p.lines[i]))
	}
	if trailingNewline {
		b.WriteByte('\n')
	}
	return b.String()
}
