package ptyrun

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/schovi/mdsh/internal/ansi"
)

// queryResponder answers terminal capability queries found in pty output by
// writing replies to the pty master, where the command reads them as input.
// Answered queries are removed from the output.
type queryResponder struct {
	mu   sync.Mutex
	w    io.Writer
	cols int
	rows int
}

func newQueryResponder(w io.Writer, cols, rows int) *queryResponder {
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	return &queryResponder{w: w, cols: cols, rows: rows}
}

// Filter replies to every query in data and returns data without them.
// Queries split across reads pass through unanswered.
func (r *queryResponder) Filter(data []byte) []byte {
	if !strings.ContainsRune(string(data), 0x1B) {
		return data
	}

	s := string(data)
	var out strings.Builder
	last := 0
	for _, seq := range ansi.Scan(s) {
		reply, ok := r.reply(seq)
		if !ok {
			continue
		}
		out.WriteString(s[last:seq.Start])
		last = seq.End
		r.send(reply)
	}
	if last == 0 {
		return data
	}
	out.WriteString(s[last:])
	return []byte(out.String())
}

func (r *queryResponder) reply(seq ansi.Sequence) (string, bool) {
	if seq.Kind != ansi.KindCSI {
		return "", false
	}
	switch {
	case seq.Final == 'c' && seq.Private == 0 && (seq.Params == "" || seq.Params == "0"):
		// DA1: VT220 with the usual capabilities.
		return "\x1b[?62;1;2;6;7;8;9;15;22c", true
	case seq.Final == 'c' && seq.Private == '>' && (seq.Params == "" || seq.Params == "0"):
		// DA2
		return "\x1b[>1;1;0c", true
	case seq.Final == 'n' && seq.Private == 0 && seq.Params == "6":
		return "\x1b[1;1R", true
	case seq.Final == 'n' && seq.Private == 0 && seq.Params == "5":
		return "\x1b[0n", true
	case seq.Final == 't' && seq.Private == 0 && seq.Params == "18":
		r.mu.Lock()
		defer r.mu.Unlock()
		return fmt.Sprintf("\x1b[8;%d;%dt", r.rows, r.cols), true
	case seq.Final == 'u' && seq.Private == '?' && seq.Params == "":
		// Kitty keyboard protocol: no flags.
		return "\x1b[?0u", true
	case seq.Final == 'p' && seq.Private == '?' && strings.HasSuffix(seq.Raw, "$p"):
		// DECRQM: report every mode as not recognised.
		return fmt.Sprintf("\x1b[?%s;0$y", seq.Params), true
	}
	return "", false
}

func (r *queryResponder) send(reply string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, reply); err != nil {
		log.Printf("query reply: %v", err)
	}
}
