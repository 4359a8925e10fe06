package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schovi/mdsh/internal/ansi"
)

type recordSink struct {
	got []string
	err error
}

func (s *recordSink) Emit(text string) error {
	if s.err != nil {
		return s.err
	}
	s.got = append(s.got, text)
	return nil
}

func TestRenderer_LineMode(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeLine)

	require.NoError(t, r.Write("\x1b[32mok"))
	assert.Empty(t, sink.got, "partial line held")

	require.NoError(t, r.Write("\x1b[0m\nLoading\x1b[2K\x1b[0GDone\n"))
	assert.Equal(t, []string{"ok\n", "Done\n"}, sink.got)

	require.NoError(t, r.Write("tail"))
	require.NoError(t, r.Close())
	assert.Equal(t, []string{"ok\n", "Done\n", "tail"}, sink.got)
}

func TestRenderer_ChunkMode(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeChunk)

	require.NoError(t, r.Write("a\x1b[31mb"))
	require.NoError(t, r.Write("c\n"))
	require.NoError(t, r.Close())
	assert.Equal(t, []string{"ab", "c\n"}, sink.got)
}

func TestRenderer_ChunkModeHoldsSplitSequence(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeChunk)

	require.NoError(t, r.Write("\x1b[3"))
	assert.Empty(t, sink.got, "incomplete sequence waits for the next chunk")

	require.NoError(t, r.Write("1mRed text\x1b[0m\n"))
	assert.Equal(t, []string{"Red text\n"}, sink.got)
}

func TestRenderer_ChunkModeSplitAfterText(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeChunk)

	require.NoError(t, r.Write("ok \x1b]0;tit"))
	require.NoError(t, r.Write("le\x07done\n"))
	require.NoError(t, r.Close())
	assert.Equal(t, []string{"ok ", "done\n"}, sink.got)
}

func TestRenderer_ChunkModeCloseFlushesHeld(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeChunk)

	require.NoError(t, r.Write("end\x1b[31"))
	require.NoError(t, r.Close())
	assert.Equal(t, []string{"end", "[31"}, sink.got)
}

func TestRenderer_SkipsBlankUnits(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeLine)

	require.NoError(t, r.Write("\n   \n\x1b[?25l\x1b[2J\n"))
	require.NoError(t, r.Close())
	assert.Empty(t, sink.got)
}

func TestRenderer_UnitsAreIndependent(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeLine)

	require.NoError(t, r.Write("first\x1b[s\n\x1b[uX\n"))
	assert.Equal(t, []string{"first\n", "X\n"}, sink.got)
}

func TestRenderer_PassesOptions(t *testing.T) {
	sink := &recordSink{}
	r := NewRenderer(sink, ModeLine, ansi.WithCarriageReturn(ansi.CRClearLine))

	require.NoError(t, r.Write("long text\rshort\n"))
	assert.Equal(t, []string{"short\n"}, sink.got)
}

func TestRenderer_SinkError(t *testing.T) {
	boom := errors.New("closed")
	r := NewRenderer(&recordSink{err: boom}, ModeLine)

	err := r.Write("line\n")
	assert.ErrorIs(t, err, boom)
}
