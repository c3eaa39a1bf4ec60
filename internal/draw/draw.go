// Package draw renders to ANSI terminals: a scaled half-block pixel canvas
// plus buffered text output.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockLeftHalf  = '▌'
	BlockRightHalf = '▐'
)

// ANSI SGR sequences used for text overlays.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorFaint       = "\033[2m"
	ColorReverse     = "\033[7m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightWhite = "\033[97m"
	ColorYellow      = "\033[33m"
	ColorMagenta     = "\033[35m"
	ColorRed         = "\033[31m"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
