package cube

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Color represents a sticker color. None marks an orientation slot without
// a face.
type Color byte

const (
	None   Color = 0
	White  Color = 1 // Down face when solved
	Yellow Color = 2 // Up face when solved
	Red    Color = 3 // Front face when solved
	Orange Color = 4 // Back face when solved
	Green  Color = 5 // Right face when solved
	Blue   Color = 6 // Left face when solved
)

// Palette lists the six sticker colors.
var Palette = []Color{White, Yellow, Red, Orange, Green, Blue}

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Green:
		return "G"
	case Blue:
		return "B"
	case None:
		return "."
	default:
		return "?"
	}
}

// Name returns the lower-case color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

// RGB returns the render color.
func (c Color) RGB() mgl32.Vec3 {
	switch c {
	case White:
		return mgl32.Vec3{1, 1, 1}
	case Yellow:
		return mgl32.Vec3{1, 1, 0}
	case Red:
		return mgl32.Vec3{1, 0, 0}
	case Orange:
		return mgl32.Vec3{0.9, 0.4, 0.2}
	case Green:
		return mgl32.Vec3{0.3, 0.6, 0.3}
	case Blue:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{}
	}
}

// Hex returns the render color as #rrggbb.
func (c Color) Hex() string {
	rgb := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", int(rgb[0]*255+0.5), int(rgb[1]*255+0.5), int(rgb[2]*255+0.5))
}

// Polar reports whether c is one of the two colors solved on the Up and
// Down faces.
func (c Color) Polar() bool {
	return c == White || c == Yellow
}
