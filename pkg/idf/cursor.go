package idf

// lineCursor walks a materialized line slice. peek looks one line ahead
// without moving, so a failed lookahead never consumes a line.
type lineCursor struct {
	lines []string
	pos   int
}

// next returns the line under the cursor and advances past it.
func (c *lineCursor) next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// peek returns the line that the following call to next would return.
func (c *lineCursor) peek() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos], true
}
