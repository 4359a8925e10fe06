// Package wait polls growing process output until it matches a pattern or
// stops changing.
package wait

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/schovi/mdsh/internal/ansi"
)

const DefaultPollInterval = 50 * time.Millisecond

// ErrTimeout is returned when neither the pattern nor the settle condition
// was met in time.
var ErrTimeout = errors.New("timeout")

// ReadFunc returns the output captured so far and its length.
type ReadFunc func() (output string, position int, err error)

type Config struct {
	// Pattern is matched against the new output with escape sequences
	// stripped, so colour codes never split a match.
	Pattern string
	// SettleMs returns once output has not grown for this long.
	SettleMs      int
	TimeoutSec    int
	StartPosition int
	PollInterval  time.Duration
}

// ForOutput polls readFn until the new output (everything after
// StartPosition) matches Pattern or settles. A position that goes backwards
// means the output was reset; the new output then starts at zero.
func ForOutput(ctx context.Context, readFn ReadFunc, cfg Config) (string, int, error) {
	var re *regexp.Regexp
	if cfg.Pattern != "" {
		var err error
		re, err = regexp.Compile(cfg.Pattern)
		if err != nil {
			return "", 0, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if cfg.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSec)*time.Second)
		defer cancel()
	}
	settle := time.Duration(cfg.SettleMs) * time.Millisecond

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	start := cfg.StartPosition
	lastPos := -1
	lastChange := time.Now()
	var out string
	var pos int

	for {
		output, p, err := readFn()
		if err != nil {
			return "", 0, err
		}
		pos = p
		if pos < lastPos && pos < start {
			start = 0
		}
		if pos != lastPos {
			lastPos = pos
			lastChange = time.Now()
		}
		out = since(output, start)

		if re != nil && re.MatchString(ansi.Strip(out)) {
			return out, pos, nil
		}
		if settle > 0 && pos > start && time.Since(lastChange) >= settle {
			return out, pos, nil
		}

		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return out, pos, ctx.Err()
			}
			if re != nil {
				return out, pos, fmt.Errorf("%w waiting for pattern %q", ErrTimeout, cfg.Pattern)
			}
			return out, pos, fmt.Errorf("%w waiting for output to settle", ErrTimeout)
		case <-ticker.C:
		}
	}
}

func since(output string, start int) string {
	if start < 0 || start >= len(output) {
		return ""
	}
	return output[start:]
}
