package selftest

import (
	"strings"

	"github.com/schovi/mdsh/internal/ansi"
)

// Scenario is one captured piece of real terminal output and the text a
// terminal leaves on screen for it.
type Scenario struct {
	Category    string
	Name        string
	Description string
	Input       string
	Want        string
	Options     []ansi.Option
}

// Scenarios returns the built-in cases, grouped by category in run order.
func Scenarios() []Scenario {
	return []Scenario{
		{"colors", "Red Text", "Basic red color with reset",
			"\033[31mRed text\033[0m\n", "Red text\n", nil},
		{"colors", "Green Text", "Basic green color with reset",
			"\033[32mGreen text\033[0m\n", "Green text\n", nil},
		{"colors", "Bold Blue Text", "Bold blue color combination",
			"\033[1;34mBold blue text\033[0m\n", "Bold blue text\n", nil},
		{"colors", "Yellow on Red Background", "Foreground and background colors",
			"\033[33;41mYellow on red background\033[0m\n", "Yellow on red background\n", nil},

		{"cursor", "Cursor to Column 1", "Go to column 1 overwrites from the start",
			"Hello\033[1GWorld\n", "World\n", nil},
		{"cursor", "Complex Cursor Movement", "Back 2, up 1 (clamped), write X",
			"ABC\033[2D\033[1AX\n", "AXC\n", nil},
		{"cursor", "Multi-line Cursor Update", "Update text on the previous line at a column",
			"Line1\nLine2\033[1A\033[6GUpdated\n", "Line1Updated\nLine2\n", nil},
		{"cursor", "Absolute Positioning", "tput cup 5 10; echo; tput cup 0 0",
			"\033[6;11HPositioned text\n\033[1;1H", "          Positioned text\n", nil},

		{"clearing", "Clear to End of Line", "Column 6 then erase to end",
			"Hello World\033[6G\033[K\n", "Hello\n", nil},
		{"clearing", "Clear Line and Rewrite", "Erase whole line then write",
			"Hello World\033[2K\033[0GNew\n", "New\n", nil},
		{"clearing", "Clear Screen", "Erase screen, home, write",
			"\033[2J\033[HClean screen\n", "Clean screen\n", nil},

		{"progress", "Loading Spinner", "Spinner frames leave the final result",
			"Loading\033[2K\033[0G⠋ Loading\033[2K\033[0G⠙ Loading\033[2K\033[0G✓ Done!\n", "✓ Done!\n", nil},
		{"progress", "Progress Bar", "Bar redrawn from column 1",
			"[████░░░░░░] 40%\033[1G[██████░░░░] 60%\033[1G[██████████] 100%\n", "[██████████] 100%\n", nil},

		{"complex", "OSC Window Title", "Title is dropped, text kept",
			"\033]0;Window Title\007Text after OSC\n", "Text after OSC\n", nil},
		{"complex", "Save/Restore Cursor", "Restore goes back to the saved origin and overwrites",
			"\033[s\033[2J\033[H\033[32mSaved state\033[u restored\n", " restoredte\n", nil},
		{"complex", "Carriage Returns", "Each return overwrites in place, like a terminal",
			"Multi\rCarriage\rReturn\rTest\n", "Testrnge\n", nil},
		{"complex", "Carriage Returns (clear)", "Each return clears the line",
			"Multi\rCarriage\rReturn\rTest\n", "Test\n", []ansi.Option{ansi.WithCarriageReturn(ansi.CRClearLine)}},
		{"complex", "Hide/Show Cursor", "Only control sequences leave nothing",
			"\033[?25l\033[s\033[H\033[2J\033[u\033[?25h\n", "", nil},

		{"apps", "Box Drawing", "Unicode box characters pass through",
			"┌─ Status ─┐\n│ Ready!   │\n└──────────┘\n", "┌─ Status ─┐\n│ Ready!   │\n└──────────┘\n", nil},
		{"apps", "Complex Box with ANSI", "Box after clear and home",
			"\033[2J\033[H╭─────────────╮\n│ Test Window │\n╰─────────────╯\n", "╭─────────────╮\n│ Test Window │\n╰─────────────╯\n", nil},

		{"interactive", "Hidden Text", "Concealed attribute is ignored",
			"Enter password: \033[8m[hidden]\033[0m\n", "Enter password: [hidden]\n", nil},
		{"interactive", "Command Line Simulation", "Erase from column 9 removes the last letter",
			"\033[1;1H\033[2K> command\033[1;9H\033[K typed\n", "> comman typed\n", nil},

		{"ls", "ls --color Output", "Real ls output with color codes",
			"\033[34m__pycache__\033[39;49m\033[0m\n\033[31mcheckRefs.py\033[39;49m\033[0m\n", "__pycache__\ncheckRefs.py\n", nil},

		{"prompts", "Oh-My-Zsh Prompt", "Colored prompt keeps its trailing space",
			"\033[1;32m➜\033[0m \033[1;34m~\033[0m \n", "➜ ~ \n", nil},
		{"prompts", "256-Color Prompt", "256-color prompt with a unicode symbol",
			"\033[38;5;196m❯\033[0m test prompt\n", "❯ test prompt\n", nil},
	}
}

// BenchmarkInput is a heavy synthetic stream: a clear, 100 coloured words,
// 50 column moves and 25 line erases before the final text.
func BenchmarkInput() string {
	return "\033[2J\033[H" +
		strings.Repeat("\033[31mRed\033[0m ", 100) +
		strings.Repeat("\033[1G", 50) +
		strings.Repeat("\033[2K", 25) +
		"Final text\n"
}
