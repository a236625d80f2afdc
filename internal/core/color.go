package core

// Color is a foreground color for a screen cell.
// The terminal layer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the two-player game.
const (
	ColorDefault Color = iota
	ColorPlayer1       // neon pink
	ColorPlayer2       // neon cyan
	ColorPipe          // pipe body
	ColorPipeEdge      // pipe border
	ColorText          // HUD text
	ColorDead          // crashed bird
	ColorSpark         // jump particles
	ColorStar          // background stars
	ColorSkyline       // city silhouette
)

// PlayerColor returns the color assigned to a player index (0 or 1).
func PlayerColor(player int) Color {
	if player == 0 {
		return ColorPlayer1
	}
	return ColorPlayer2
}
