package cube

import "fmt"

// Face is one of the six fixed outward directions. Membership is derived
// from cubie orientations, so a Face never changes.
type Face struct {
	Direction Vec
}

// The six faces.
var (
	UpFace    = Face{Up}
	RightFace = Face{Right}
	LeftFace  = Face{Left}
	FrontFace = Face{Front}
	BackFace  = Face{Back}
	DownFace  = Face{Down}
)

// Faces lists all six faces, Up first and Down last.
var Faces = []Face{UpFace, RightFace, LeftFace, FrontFace, BackFace, DownFace}

// Sides lists the four faces around the vertical axis.
var Sides = []Face{RightFace, LeftFace, FrontFace, BackFace}

// FaceFor returns the face whose direction is dir.
func FaceFor(dir Vec) (Face, bool) {
	for _, f := range Faces {
		if f.Direction == dir {
			return f, true
		}
	}
	return Face{}, false
}

func (f Face) String() string {
	switch f.Direction {
	case Up:
		return "U"
	case Down:
		return "D"
	case Right:
		return "R"
	case Left:
		return "L"
	case Front:
		return "F"
	case Back:
		return "B"
	default:
		return "?"
	}
}

// IsSide reports whether f is one of the four vertical faces.
func (f Face) IsSide() bool {
	return f.Direction.Y == 0 && !f.Direction.IsZero()
}

// Contains reports whether any sticker of cb faces this direction.
func (f Face) Contains(cb *Cubie) bool {
	return cb.ColorToward(f.Direction) != None
}

// Cubies returns the nine cubies currently on the face.
func (f Face) Cubies(c *Cube) []*Cubie {
	return c.Find(f.Contains)
}

// CenterOf returns the center cubie facing this direction.
func (f Face) CenterOf(c *Cube) (*Cubie, error) {
	res := c.Find(func(cb *Cubie) bool { return cb.Kind == Center && cb.Pos == f.Direction })
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: center of face %v", ErrNotFound, f)
	}
	return res[0], nil
}

// CenterColor returns the color of the face's center.
func (f Face) CenterColor(c *Cube) (Color, error) {
	center, err := f.CenterOf(c)
	if err != nil {
		return None, err
	}
	return center.ColorToward(f.Direction), nil
}

// IsUniform reports whether every cubie on the face shows color toward it.
func (f Face) IsUniform(color Color, c *Cube) bool {
	for _, cb := range f.Cubies(c) {
		if cb.ColorToward(f.Direction) != color {
			return false
		}
	}
	return true
}

// IsSolved reports whether the face shows a single color.
func (f Face) IsSolved(c *Cube) bool {
	color, err := f.CenterColor(c)
	if err != nil {
		return false
	}
	return f.IsUniform(color, c)
}
