package view

// Camera maps text coordinates (visual column, line) to screen cells. X and Y
// are the scroll offsets. The text area starts at column Left (after the
// gutter) and row Top (below the top bar).
type Camera struct {
	X, Y          int
	Width, Height int
	Top, Left     int
	MarginX       int
	MarginY       int
}

// TextWidth is the number of columns available for text.
func (c *Camera) TextWidth() int {
	if w := c.Width - c.Left; w > 0 {
		return w
	}
	return 0
}

// TextHeight is the number of rows available for text.
func (c *Camera) TextHeight() int {
	if h := c.Height - c.Top; h > 0 {
		return h
	}
	return 0
}

// WorldToScreen subtracts the scroll offset and adds the chrome.
func (c *Camera) WorldToScreen(x, y int) (int, int) {
	return x - c.X + c.Left, y - c.Y + c.Top
}

// Follow scrolls by the smallest amount that brings (x, y) back inside the
// margin-inset text area. Offsets never go negative.
func (c *Camera) Follow(x, y int) {
	c.X = follow(c.X, x, c.TextWidth(), c.MarginX)
	c.Y = follow(c.Y, y, c.TextHeight(), c.MarginY)
}

func follow(offset, pos, size, margin int) int {
	if size <= 0 {
		return max(pos, 0)
	}
	if margin > (size-1)/2 {
		margin = (size - 1) / 2
	}
	if margin < 0 {
		margin = 0
	}
	if pos < offset+margin {
		offset = pos - margin
	}
	if pos > offset+size-1-margin {
		offset = pos - size + 1 + margin
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// VisibleRange returns the first and last line index on screen for a buffer
// of lineCount lines. last is inclusive; for an empty buffer last < first.
func (c *Camera) VisibleRange(lineCount int) (first, last int) {
	first = max(0, c.Y)
	last = min(lineCount-1, c.Y+c.TextHeight()-1)
	return first, last
}
