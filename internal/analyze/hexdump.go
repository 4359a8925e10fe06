package analyze

import (
	"fmt"
	"strings"
)

// HexDump formats data as "offset: hex bytes |ascii|" lines, width bytes
// per line. Bytes outside printable ASCII show as '.' in the ascii column.
func HexDump(data []byte, width int) string {
	if len(data) == 0 {
		return "No data"
	}
	if width <= 0 {
		width = 16
	}

	var b strings.Builder
	for off := 0; off < len(data); off += width {
		chunk := data[off:min(off+width, len(data))]

		hex := make([]string, len(chunk))
		ascii := make([]byte, len(chunk))
		for i, c := range chunk {
			hex[i] = fmt.Sprintf("%02x", c)
			if c >= 32 && c <= 126 {
				ascii[i] = c
			} else {
				ascii[i] = '.'
			}
		}

		if off > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%08x: %-*s |%s|", off, width*3-1, strings.Join(hex, " "), ascii)
	}
	return b.String()
}
