package ansi

// command is the action a recognised sequence maps to.
type command int

const (
	cmdNone command = iota
	cmdCursorUp
	cmdCursorDown
	cmdCursorForward
	cmdCursorBack
	cmdNextLine
	cmdPrevLine
	cmdColumn
	cmdRow
	cmdPosition
	cmdEraseDisplay
	cmdEraseLine
	cmdEraseChars
	cmdDeleteChars
	cmdInsertChars
	cmdSaveCursor
	cmdRestoreCursor
	cmdSetMode
	cmdResetMode
	cmdGraphics
	cmdIndex
	cmdReverseIndex
	cmdReset
)

// csiCommands maps a CSI final byte to its command. Final bytes missing from
// the table are absorbed without effect.
var csiCommands = [128]command{
	'A': cmdCursorUp,
	'B': cmdCursorDown,
	'C': cmdCursorForward,
	'D': cmdCursorBack,
	'E': cmdNextLine,
	'F': cmdPrevLine,
	'G': cmdColumn,
	'`': cmdColumn,
	'd': cmdRow,
	'H': cmdPosition,
	'f': cmdPosition,
	'J': cmdEraseDisplay,
	'K': cmdEraseLine,
	'X': cmdEraseChars,
	'P': cmdDeleteChars,
	'@': cmdInsertChars,
	's': cmdSaveCursor,
	'u': cmdRestoreCursor,
	'h': cmdSetMode,
	'l': cmdResetMode,
	'm': cmdGraphics,
}

// escCommands maps the byte after a bare ESC to its command.
var escCommands = [128]command{
	'7': cmdSaveCursor,
	'8': cmdRestoreCursor,
	'D': cmdIndex,
	'E': cmdNextLine,
	'M': cmdReverseIndex,
	'c': cmdReset,
}

// lookup resolves the command for a complete sequence.
func lookup(seq Sequence) command {
	if seq.Final >= 128 {
		return cmdNone
	}
	switch seq.Kind {
	case KindCSI:
		cmd := csiCommands[seq.Final]
		// CSI ? s / CSI ? u are xterm private mode save/restore, not cursor.
		if seq.Private != 0 && (cmd == cmdSaveCursor || cmd == cmdRestoreCursor) {
			return cmdNone
		}
		return cmd
	case KindEscape:
		if seq.Private != 0 {
			return cmdNone
		}
		return escCommands[seq.Final]
	}
	return cmdNone
}
