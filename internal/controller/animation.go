package controller

// Animation defaults in pixels
const (
	DefaultAnimationRange = 500
	DefaultMaxOffset      = 20.0
)

// AnimationParams is the style an element should render with
type AnimationParams struct {
	ElementID    string
	Opacity      float64
	OffsetPixels float64
}

// Visible reports whether the element has started to appear
func (p AnimationParams) Visible() bool {
	return p.Opacity > 0
}

// AnimationCurve maps scroll distance past a threshold to an entrance
// animation. Progress is linear over Range pixels.
type AnimationCurve struct {
	Range     int
	MaxOffset float64
}

// DefaultCurve returns the 500px / 20px entrance curve
func DefaultCurve() AnimationCurve {
	return AnimationCurve{Range: DefaultAnimationRange, MaxOffset: DefaultMaxOffset}
}

// At computes the animation for an element whose entrance starts at
// startThreshold when the document is scrolled to scroll.
func (c AnimationCurve) At(elementID string, scroll, startThreshold int) AnimationParams {
	rng := c.Range
	if rng <= 0 {
		rng = DefaultAnimationRange
	}
	maxOffset := c.MaxOffset
	if maxOffset < 0 {
		maxOffset = 0
	}

	progress := clamp(float64(scroll-startThreshold)/float64(rng), 0, 1)
	return AnimationParams{
		ElementID:    elementID,
		Opacity:      progress,
		OffsetPixels: maxOffset * (1 - progress),
	}
}

// Animate applies the default curve
func Animate(elementID string, scroll, startThreshold int) AnimationParams {
	return DefaultCurve().At(elementID, scroll, startThreshold)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
