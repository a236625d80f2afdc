package tui

import (
	"fmt"

	"github.com/vovakirdan/flappy-duo/internal/core"
	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

// Visual characters for rendering
const (
	birdBody      = '●'
	birdBeak      = '▶'
	birdDead      = '✕'
	pipeChar      = '█'
	pipeCapTop    = '▄'
	pipeCapBottom = '▀'
	groundChar    = '═'
	starChar      = '·'
	sparkChar     = '*'
	fadedSpark    = '.'
)

// skyline is one tile of the background silhouette, repeated across the
// bottom of the field.
var skyline = []rune("▁▂▂▅▅▃▁▁▆▆▆▂▃▃▇▇▂▁▄▄▁")

// Projection maps world units onto the terminal. Row 0 is the HUD and the
// last row is the ground; the field fills the rows between.
type Projection struct {
	fieldW, fieldH int
	cols, rows     int
}

// NewProjection fits a fieldW x fieldH world into a screenW x screenH
// terminal.
func NewProjection(fieldW, fieldH, screenW, screenH int) Projection {
	return Projection{
		fieldW: fieldW,
		fieldH: fieldH,
		cols:   max(screenW, 0),
		rows:   max(screenH-2, 0),
	}
}

// X converts a world x to a screen column.
func (p Projection) X(x int) int {
	return core.Scale(x, p.fieldW, p.cols)
}

// Y converts a world y to a screen row.
func (p Projection) Y(y int) int {
	return 1 + core.Scale(y, p.fieldH, p.rows)
}

// Top is the first field row.
func (p Projection) Top() int { return 1 }

// Bottom is the last field row.
func (p Projection) Bottom() int { return p.rows }

// DrawScene renders a game snapshot and its particles into dst.
func DrawScene(dst *core.Screen, snap flappyduo.Snapshot, particles []flappyduo.Particle) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 4 {
		return
	}
	p := NewProjection(snap.FieldW, snap.FieldH, dst.Width(), dst.Height())

	drawBackground(dst, p, snap.Tick)
	for _, o := range snap.Obstacles {
		drawObstacle(dst, p, o)
	}
	for _, pt := range particles {
		drawParticle(dst, p, pt)
	}
	for i, a := range snap.Actors {
		drawBird(dst, p, i, a)
	}

	groundY := dst.Height() - 1
	for x := range dst.Width() {
		dst.SetColored(x, groundY, groundChar, core.ColorPipeEdge)
	}
	drawHUD(dst, snap)

	switch {
	case snap.Phase == flappyduo.PhaseGameOver:
		drawMessageBox(dst, "GAME OVER", resultLine(snap), "enter: menu   q: quit")
	case snap.Paused:
		drawMessageBox(dst, "PAUSED", "press P to resume")
	}
}

// drawBackground draws slowly drifting stars and a skyline along the floor.
func drawBackground(dst *core.Screen, p Projection, tick int) {
	w := dst.Width()
	rows := p.Bottom() - p.Top() + 1
	if rows <= 0 {
		return
	}

	drift := tick / 10
	for i := range w / 3 {
		x := ((i*37+11-drift)%w + w) % w
		y := p.Top() + (i*53+7)%rows
		dst.SetColored(x, y, starChar, core.ColorStar)
	}

	scroll := tick / 4
	for x := range w {
		r := skyline[(x+scroll)%len(skyline)]
		dst.SetColored(x, p.Bottom(), r, core.ColorSkyline)
	}
}

func drawObstacle(dst *core.Screen, p Projection, o flappyduo.ObstacleState) {
	x0 := p.X(o.X)
	x1 := max(p.X(o.X+o.Width)-1, x0)
	gapTop := p.Y(o.GapTop)
	gapBottom := p.Y(o.GapTop + o.GapHeight)

	for x := x0; x <= x1; x++ {
		for y := p.Top(); y < gapTop; y++ {
			dst.SetColored(x, y, pipeChar, core.ColorPipe)
		}
		if gapTop > p.Top() {
			dst.SetColored(x, gapTop-1, pipeCapTop, core.ColorPipeEdge)
		}

		for y := gapBottom; y <= p.Bottom(); y++ {
			dst.SetColored(x, y, pipeChar, core.ColorPipe)
		}
		if gapBottom <= p.Bottom() {
			dst.SetColored(x, gapBottom, pipeCapBottom, core.ColorPipeEdge)
		}
	}
}

func drawBird(dst *core.Screen, p Projection, player int, a flappyduo.ActorState) {
	x, y := p.X(a.X), p.Y(a.Y+a.Size/2)
	y = core.Clamp(y, p.Top(), p.Bottom())

	if !a.Alive {
		dst.SetColored(x, y, birdDead, core.ColorDead)
		return
	}
	c := core.PlayerColor(player)
	dst.SetColored(x, y, birdBody, c)
	dst.SetColored(x+1, y, birdBeak, c)
}

func drawParticle(dst *core.Screen, p Projection, pt flappyduo.Particle) {
	x, y := p.X(int(pt.X)), p.Y(int(pt.Y))
	if y < p.Top() || y > p.Bottom() {
		return
	}
	r := sparkChar
	if pt.Alpha() < 0.5 {
		r = fadedSpark
	}
	dst.SetColored(x, y, r, pt.Color)
}

// drawHUD writes both players' names and scores plus the current speed.
func drawHUD(dst *core.Screen, snap flappyduo.Snapshot) {
	for x := range dst.Width() {
		dst.Set(x, 0, ' ')
	}

	left := hudEntry(snap.Actors[0], snap.Scores[0])
	dst.DrawText(1, 0, left, colorFor(0, snap.Actors[0].Alive))

	right := hudEntry(snap.Actors[1], snap.Scores[1])
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right, colorFor(1, snap.Actors[1].Alive))

	dst.DrawTextCentered(0, fmt.Sprintf("speed %d", snap.Speed), core.ColorText)
}

func hudEntry(a flappyduo.ActorState, score int) string {
	if !a.Alive {
		return fmt.Sprintf("%s %d (out)", a.Name, score)
	}
	return fmt.Sprintf("%s %d", a.Name, score)
}

func colorFor(player int, alive bool) core.Color {
	if !alive {
		return core.ColorDead
	}
	return core.PlayerColor(player)
}

// resultLine names the winner, or reports a draw.
func resultLine(snap flappyduo.Snapshot) string {
	s1, s2 := snap.Scores[0], snap.Scores[1]
	switch {
	case s1 > s2:
		return fmt.Sprintf("%s wins %d-%d", snap.Actors[0].Name, s1, s2)
	case s2 > s1:
		return fmt.Sprintf("%s wins %d-%d", snap.Actors[1].Name, s2, s1)
	default:
		return fmt.Sprintf("draw %d-%d", s1, s2)
	}
}

// drawMessageBox draws a framed message in the center of the screen.
func drawMessageBox(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorText)
	dst.DrawBox(box, core.ColorText)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i*2, l, core.ColorText)
	}
}
