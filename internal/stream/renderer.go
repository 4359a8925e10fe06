// Package stream renders live process output through the ANSI processor.
//
// Output arrives in arbitrary chunks. Each renderable unit gets a fresh
// processor, so control sequences in one unit never affect another.
package stream

import (
	"strings"

	"github.com/schovi/mdsh/internal/ansi"
	"github.com/schovi/mdsh/internal/logger"
)

var log = logger.New("stream")

// Sink receives rendered text.
type Sink interface {
	Emit(text string) error
}

// Mode selects how incoming chunks are grouped before rendering.
type Mode int

const (
	// ModeLine renders complete lines, holding partial lines back.
	ModeLine Mode = iota
	// ModeChunk renders every chunk as soon as it arrives. An escape
	// sequence cut off at the end of a chunk waits for the next one.
	ModeChunk
)

type Renderer struct {
	sink    Sink
	mode    Mode
	opts    []ansi.Option
	chunker *Chunker
	held    string
}

func NewRenderer(sink Sink, mode Mode, opts ...ansi.Option) *Renderer {
	return &Renderer{
		sink:    sink,
		mode:    mode,
		opts:    opts,
		chunker: NewChunker(DefaultMaxPending),
	}
}

// Write feeds one chunk of decoded output.
func (r *Renderer) Write(text string) error {
	if r.mode == ModeChunk {
		text = r.held + text
		cut := heldSequenceStart(text)
		r.held = text[cut:]
		return r.emit(text[:cut])
	}
	for _, unit := range r.chunker.Push(text) {
		if err := r.emit(unit); err != nil {
			return err
		}
	}
	return nil
}

// Close renders whatever is still held back.
func (r *Renderer) Close() error {
	rest := r.chunker.Flush() + r.held
	r.held = ""
	if rest != "" {
		return r.emit(rest)
	}
	return nil
}

func (r *Renderer) emit(unit string) error {
	if strings.TrimSpace(unit) == "" {
		return nil
	}
	out := ansi.Render(unit, r.opts...)
	if strings.TrimSpace(out) == "" {
		log.Printf("unit rendered empty: %q", unit)
		return nil
	}
	return r.sink.Emit(out)
}
