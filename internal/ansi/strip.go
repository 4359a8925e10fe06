package ansi

import "strings"

// Strip removes escape sequences from s and returns every other character,
// control characters included, in its original order. Sequences interrupted
// by an unexpected byte are removed as well; a sequence cut off by the end of
// s is kept literally.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, seq := range Scan(s) {
		b.WriteString(s[last:seq.Start])
		if seq.Kind == KindPartial {
			b.WriteString(seq.Raw)
		}
		last = seq.End
	}
	b.WriteString(s[last:])
	return b.String()
}
