package report

import (
	"fmt"
	"io"
	"strings"
)

// Cell markers. The trailing spaces are part of the column layout.
const (
	check = "✓  "
	cross = "×  "
	lts   = "LTS"
)

// tableWriter writes lines to w and remembers the first error, so a table
// can be written without checking every line.
type tableWriter struct {
	w   io.Writer
	err error
}

func (t *tableWriter) line(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, s+"\n")
}

func (t *tableWriter) linef(format string, args ...any) {
	t.line(fmt.Sprintf(format, args...))
}

// repeat is strings.Repeat that treats negative counts as zero.
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
