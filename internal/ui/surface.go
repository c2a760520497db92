package ui

import "github.com/charmbracelet/bubbles/viewport"

// viewportSurface maps pixel scroll positions onto viewport lines
type viewportSurface struct {
	vp            *viewport.Model
	pixelsPerLine int
}

func (s *viewportSurface) ScrollTo(position int) {
	s.vp.SetYOffset(position / s.pixelsPerLine)
}

// position returns the viewport offset in pixels
func (s *viewportSurface) position() int {
	return s.vp.YOffset * s.pixelsPerLine
}

// maxLines is how far the viewport can scroll
func (s *viewportSurface) maxLines() int {
	return max(0, s.vp.TotalLineCount()-s.vp.Height)
}
