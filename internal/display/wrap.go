package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to width columns. Words longer than a line are
// broken at the limit.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = DefaultWidth
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		line = strings.TrimRight(line, " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
