package console

import (
	"fmt"
	"time"
)

// DefaultMaxLines bounds the scrollback kept in memory.
const DefaultMaxLines = 500

// Console is the application's diagnostic sink. Command dispatch brackets
// every execution with an Open/Close pair; output produced inside such a
// span marks the console dirty so the host can raise its overlay. Spans
// nest, and spans that produce no output are fine.
type Console struct {
	depth    int
	lines    []string
	dirty    bool
	maxLines int
}

func New() *Console {
	return &Console{maxLines: DefaultMaxLines}
}

// Open begins an output span. Spans nest; every Open is balanced by a Close.
func (c *Console) Open() {
	c.depth++
}

// Close ends the innermost output span. Extra Closes are ignored so the
// depth never goes negative.
func (c *Console) Close() {
	if c.depth > 0 {
		c.depth--
	}
}

// Depth returns the current span nesting depth.
func (c *Console) Depth() int {
	return c.depth
}

// Printf appends a timestamped line to the scrollback. Output written
// inside an open span marks the console dirty.
func (c *Console) Printf(format string, args ...any) {
	line := time.Now().Format("15:04:05") + " " + fmt.Sprintf(format, args...)
	c.lines = append(c.lines, line)
	if len(c.lines) > c.maxLines {
		c.lines = c.lines[len(c.lines)-c.maxLines:]
	}
	if c.depth > 0 {
		c.dirty = true
	}
}

// ConsumeDirty reports whether span output arrived since the last call and
// resets the flag. The host checks this after every dispatch to decide
// whether to raise the console overlay.
func (c *Console) ConsumeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// Lines returns a copy of the scrollback, oldest first.
func (c *Console) Lines() []string {
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the scrollback holds no lines.
func (c *Console) Empty() bool {
	return len(c.lines) == 0
}

// Clear drops the scrollback. The span depth is untouched.
func (c *Console) Clear() {
	c.lines = nil
	c.dirty = false
}
