package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe returns a human readable explanation of seq, used when listing the
// sequences found in captured output.
func Describe(seq Sequence) string {
	switch seq.Kind {
	case KindOSC:
		return "OSC (Operating System Command): " + seq.Params
	case KindString:
		return fmt.Sprintf("String sequence ESC %c (ignored)", seq.Final)
	case KindMalformed:
		return "Malformed sequence (discarded)"
	case KindPartial:
		return "Incomplete sequence at end of input"
	case KindEscape:
		return describeEscape(seq)
	}
	return describeCSI(seq)
}

func describeEscape(seq Sequence) string {
	if seq.Private != 0 {
		return fmt.Sprintf("Character set ESC %c %c", seq.Private, seq.Final)
	}
	switch lookup(seq) {
	case cmdSaveCursor:
		return "Save Cursor (DECSC)"
	case cmdRestoreCursor:
		return "Restore Cursor (DECRC)"
	case cmdIndex:
		return "Index (down 1 line)"
	case cmdNextLine:
		return "Next Line"
	case cmdReverseIndex:
		return "Reverse Index (up 1 line)"
	case cmdReset:
		return "Full Reset (RIS)"
	}
	return fmt.Sprintf("Other ANSI sequence: ESC %c", seq.Final)
}

func describeCSI(seq Sequence) string {
	n := paramOr(seq, 0, "1")
	switch lookup(seq) {
	case cmdCursorUp:
		return "Cursor Up " + n + " lines"
	case cmdCursorDown:
		return "Cursor Down " + n + " lines"
	case cmdCursorForward:
		return "Cursor Forward " + n + " columns"
	case cmdCursorBack:
		return "Cursor Back " + n + " columns"
	case cmdNextLine:
		return "Cursor Next Line " + n
	case cmdPrevLine:
		return "Cursor Previous Line " + n
	case cmdColumn:
		return "Cursor Horizontal Absolute column " + n
	case cmdRow:
		return "Line Position Absolute row " + n
	case cmdPosition:
		return fmt.Sprintf("Cursor Position row %s, col %s", n, paramOr(seq, 1, "1"))
	case cmdEraseDisplay:
		return "Erase Display " + paramOr(seq, 0, "0") + " (0=cursor to end, 1=start to cursor, 2=entire screen)"
	case cmdEraseLine:
		return "Erase Line " + paramOr(seq, 0, "0") + " (0=cursor to end, 1=start to cursor, 2=entire line)"
	case cmdEraseChars:
		return "Erase " + n + " characters"
	case cmdDeleteChars:
		return "Delete " + n + " characters"
	case cmdInsertChars:
		return "Insert " + n + " blank characters"
	case cmdSaveCursor:
		return "Save Cursor Position"
	case cmdRestoreCursor:
		return "Restore Cursor Position"
	case cmdSetMode:
		return "Set Mode " + privatePrefix(seq) + seq.Params
	case cmdResetMode:
		return "Reset Mode " + privatePrefix(seq) + seq.Params
	case cmdGraphics:
		if seq.Params == "" || seq.Params == "0" {
			return "Reset Graphics Mode"
		}
		return "Set Graphics Mode " + seq.Params
	}
	return fmt.Sprintf("CSI %c with params %q (ignored)", seq.Final, privatePrefix(seq)+seq.Params)
}

func paramOr(seq Sequence, i int, def string) string {
	fields := strings.Split(seq.Params, ";")
	if seq.Params == "" || i >= len(fields) || fields[i] == "" {
		return def
	}
	if _, err := strconv.Atoi(fields[i]); err != nil {
		return def
	}
	return fields[i]
}

func privatePrefix(seq Sequence) string {
	if seq.Private == 0 {
		return ""
	}
	return string(seq.Private)
}
