package report

// PageCursor is the manual pagination state of a report document. The
// renderer disables the PDF library's automatic page breaks and threads a
// cursor instead, so every break point is an explicit decision.
type PageCursor struct {
	Page   int     // 1-based current page; 0 before the first page
	Y      float64 // current write position, mm from the page top
	Top    float64 // content area start
	Bottom float64 // content area end; nothing is drawn below it
}

// Room returns the vertical space left on the current page.
func (c PageCursor) Room() float64 {
	return c.Bottom - c.Y
}

// Fits reports whether a block of the given height fits on the current page.
func (c PageCursor) Fits(h float64) bool {
	return c.Y+h <= c.Bottom
}

// Advanced returns the cursor moved down by h.
func (c PageCursor) Advanced(h float64) PageCursor {
	c.Y += h
	return c
}

// NextPage returns the cursor at the top of a fresh page.
func (c PageCursor) NextPage() PageCursor {
	c.Page++
	c.Y = c.Top
	return c
}
