package cube

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the piece type of a cubie. It never changes.
type Kind byte

const (
	Corner Kind = 0
	Edge   Kind = 1
	Center Kind = 2
)

func (k Kind) String() string {
	switch k {
	case Corner:
		return "corner"
	case Edge:
		return "edge"
	case Center:
		return "center"
	default:
		return "?"
	}
}

// FaceCount returns how many stickers a cubie of this kind carries.
func (k Kind) FaceCount() int {
	switch k {
	case Corner:
		return 3
	case Edge:
		return 2
	case Center:
		return 1
	default:
		return 0
	}
}

// Cubie is one of the 26 visible small cubes.
//
// Orient[i] is the direction the sticker Colors[i] currently faces. Slots
// are indexed by the axis they faced in the solved layout (0=X, 1=Y, 2=Z);
// unused slots hold a zero vector and None.
type Cubie struct {
	ID     int
	Pos    Vec
	Orient [3]Vec
	Colors [3]Color
	Kind   Kind
}

// ColorToward returns the color facing dir, or None.
func (c *Cubie) ColorToward(dir Vec) Color {
	for i := 0; i < 3; i++ {
		if c.Colors[i] != None && c.Orient[i] == dir {
			return c.Colors[i]
		}
	}
	return None
}

// DirectionOf returns the direction the given color faces, or the zero
// vector if the cubie does not carry it.
func (c *Cubie) DirectionOf(color Color) Vec {
	if color == None {
		return Vec{}
	}
	for i := 0; i < 3; i++ {
		if c.Colors[i] == color {
			return c.Orient[i]
		}
	}
	return Vec{}
}

// Has reports whether the cubie carries color.
func (c *Cubie) Has(color Color) bool {
	return !c.DirectionOf(color).IsZero()
}

// StickerColors returns the non-empty colors in slot order.
func (c *Cubie) StickerColors() []Color {
	colors := make([]Color, 0, 3)
	for _, col := range c.Colors {
		if col != None {
			colors = append(colors, col)
		}
	}
	return colors
}

// Faces returns the directions of the non-empty slots in slot order.
func (c *Cubie) Faces() []Vec {
	dirs := make([]Vec, 0, 3)
	for i, col := range c.Colors {
		if col != None {
			dirs = append(dirs, c.Orient[i])
		}
	}
	return dirs
}

// OtherDirection returns the first sticker direction of the cubie that is
// not dir. Used for edges, where it is the direction of the second color.
func (c *Cubie) OtherDirection(dir Vec) Vec {
	for _, d := range c.Faces() {
		if d != dir {
			return d
		}
	}
	return Vec{}
}

// Transform applies a rigid rotation to the position and all orientation
// vectors, snapping the results back onto the integer grid.
func (c *Cubie) Transform(m mgl32.Mat4) {
	c.Pos = Round(m.Mul4x1(c.Pos.GL().Vec4(1)).Vec3())
	n := m.Mat3()
	for i := range c.Orient {
		c.Orient[i] = Round(n.Mul3x1(c.Orient[i].GL()))
	}
}

// Validate checks the per-cubie invariants: the sticker count matches the
// kind and the number of outer coordinates of Pos, every sticker faces an
// axis-aligned unit direction pointing out of the cube at Pos, and no two
// stickers share an axis.
func (c *Cubie) Validate() error {
	var dirs []Vec
	for i, col := range c.Colors {
		if col == None {
			continue
		}
		d := c.Orient[i]
		if !d.IsUnit() {
			return fmt.Errorf("%w: cubie %d slot %d orientation %v", ErrCorruptState, c.ID, i, d)
		}
		if c.Pos.Dot(d) != 1 {
			return fmt.Errorf("%w: cubie %d at %v has a sticker facing %v", ErrCorruptState, c.ID, c.Pos, d)
		}
		for _, prev := range dirs {
			if prev.Dot(d) != 0 {
				return fmt.Errorf("%w: cubie %d has stickers facing %v and %v", ErrCorruptState, c.ID, prev, d)
			}
		}
		dirs = append(dirs, d)
	}

	n := c.Kind.FaceCount()
	if len(dirs) != n {
		return fmt.Errorf("%w: cubie %d is a %v with %d stickers", ErrCorruptState, c.ID, c.Kind, len(dirs))
	}
	if outer := c.Pos.Dot(c.Pos); outer != n {
		return fmt.Errorf("%w: %v cubie %d at %v", ErrCorruptState, c.Kind, c.ID, c.Pos)
	}
	return nil
}

func (c *Cubie) String() string {
	return fmt.Sprintf("%v#%d%v%v", c.Kind, c.ID, c.Pos, c.StickerColors())
}
