package display

import "slices"

// MessagesToKeep bounds the console history.
const MessagesToKeep = 150

// Console is a scrolling log of text messages shown in a fixed-size area.
// Only the most recent lines that fit are visible.
type Console struct {
	width    int
	height   int
	messages []string
	lines    []string
}

func NewConsole(width, height int) *Console {
	return &Console{width: width, height: height}
}

// Resize changes the visible area.
func (c *Console) Resize(width, height int) {
	c.width = width
	c.height = height
	c.lines = nil
}

// Add appends a message. History is trimmed back to MessagesToKeep once it
// grows ten percent past it.
func (c *Console) Add(message string) {
	c.messages = append(c.messages, message)
	if len(c.messages) > MessagesToKeep+MessagesToKeep/10 {
		c.messages = slices.Clone(c.messages[len(c.messages)-MessagesToKeep:])
	}
	c.lines = nil
}

func (c *Console) Len() int {
	return len(c.messages)
}

// Lines returns the wrapped lines that fit in the console, oldest first.
func (c *Console) Lines() []string {
	if c.lines != nil {
		return c.lines
	}

	var lines []string
	for i := len(c.messages) - 1; i >= 0 && len(lines) < c.height; i-- {
		lines = append(Wrap(c.messages[i], c.width), lines...)
	}
	if len(lines) > c.height {
		lines = lines[len(lines)-c.height:]
	}
	c.lines = lines
	return lines
}
