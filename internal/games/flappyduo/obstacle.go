package flappyduo

import "github.com/vovakirdan/flappy-duo/internal/core"

// Obstacle is a pipe pair with a passable gap, scrolling right to left.
type Obstacle struct {
	x         int
	gapTop    int
	gapHeight int
	width     int
	// bottomEdge is the y the bottom pipe must reach; it lies past the
	// field floor so nothing can slip under a pipe.
	bottomEdge int
	passed     bool
}

// NewObstacle creates an obstacle with its left edge at x.
func NewObstacle(x, gapTop, gapHeight, width, bottomEdge int) *Obstacle {
	return &Obstacle{
		x:          x,
		gapTop:     gapTop,
		gapHeight:  gapHeight,
		width:      width,
		bottomEdge: bottomEdge,
	}
}

// Advance scrolls the obstacle left by speed.
func (o *Obstacle) Advance(speed int) {
	o.x -= speed
}

// IsOffscreen reports whether the obstacle has fully left the field.
func (o *Obstacle) IsOffscreen() bool {
	return o.x+o.width < 0
}

// TopBounds is the solid region above the gap.
func (o *Obstacle) TopBounds() core.Rect {
	return core.NewRect(o.x, 0, o.width, o.gapTop)
}

// BottomBounds is the solid region below the gap, down to bottomEdge.
func (o *Obstacle) BottomBounds() core.Rect {
	top := o.gapTop + o.gapHeight
	return core.NewRect(o.x, top, o.width, max(o.bottomEdge-top, 0))
}

// Collides reports whether r touches either solid region.
func (o *Obstacle) Collides(r core.Rect) bool {
	return r.Intersects(o.TopBounds()) || r.Intersects(o.BottomBounds())
}

// TrailingEdge returns the x of the right edge.
func (o *Obstacle) TrailingEdge() int {
	return o.x + o.width
}

// MarkPassed flags the obstacle as passed. It returns true only the first
// time, so an obstacle is scored at most once.
func (o *Obstacle) MarkPassed() bool {
	if o.passed {
		return false
	}
	o.passed = true
	return true
}

// Passed reports whether the obstacle has crossed the scoring line.
func (o *Obstacle) Passed() bool { return o.passed }

// X returns the left edge.
func (o *Obstacle) X() int { return o.x }

// GapTop returns the y where the gap starts.
func (o *Obstacle) GapTop() int { return o.gapTop }

// GapHeight returns the gap height.
func (o *Obstacle) GapHeight() int { return o.gapHeight }

// Width returns the obstacle width.
func (o *Obstacle) Width() int { return o.width }
