// Package cube provides a cubie model of a 3x3x3 Rubik's cube: 26 small
// cubes, each with a grid position, three orientation vectors and up to
// three sticker colors.
package cube

import (
	"fmt"
	"sort"
	"strings"
)

// NumCubies is the number of visible cubies. The invisible core is omitted.
const NumCubies = 26

// Layer ids along the vertical axis.
const (
	LayerOne   = -1 // bottom
	LayerTwo   = 0  // middle
	LayerThree = 1  // top
)

// axisColors is the color each direction shows in the solved layout.
var axisColors = map[Vec]Color{
	Right: Green,
	Left:  Blue,
	Up:    Yellow,
	Down:  White,
	Front: Red,
	Back:  Orange,
}

// SolvedColor returns the color of the face in direction dir in the
// canonical solved layout.
func SolvedColor(dir Vec) Color {
	return axisColors[dir]
}

// Cube is the 26-cubie container. The array is never resized; only the
// per-cubie fields change, and only through moves.
type Cube struct {
	Cubies [NumCubies]Cubie
}

// New creates a solved cube with Yellow up and Red in front.
func New() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// Reset restores the canonical solved layout. Cubie IDs follow the layout
// order: front slab first, top row first, left to right.
func (c *Cube) Reset() {
	id := 0
	for _, z := range []int{1, 0, -1} {
		for _, y := range []int{1, 0, -1} {
			for _, x := range []int{-1, 0, 1} {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				c.Cubies[id] = solvedCubie(id, Vec{x, y, z})
				id++
			}
		}
	}
}

func solvedCubie(id int, pos Vec) Cubie {
	cb := Cubie{ID: id, Pos: pos}
	axes := [3]Vec{{pos.X, 0, 0}, {0, pos.Y, 0}, {0, 0, pos.Z}}
	n := 0
	for i, dir := range axes {
		if dir.IsZero() {
			continue
		}
		cb.Orient[i] = dir
		cb.Colors[i] = axisColors[dir]
		n++
	}
	switch n {
	case 3:
		cb.Kind = Corner
	case 2:
		cb.Kind = Edge
	default:
		cb.Kind = Center
	}
	return cb
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes hold identical cubie records.
func (c *Cube) Equal(o *Cube) bool {
	return c.Cubies == o.Cubies
}

// Find returns every cubie matching pred, in array order.
func (c *Cube) Find(pred func(*Cubie) bool) []*Cubie {
	var res []*Cubie
	for i := range c.Cubies {
		if pred(&c.Cubies[i]) {
			res = append(res, &c.Cubies[i])
		}
	}
	return res
}

// ByID returns the cubie with the given stable id.
func (c *Cube) ByID(id int) (*Cubie, error) {
	for i := range c.Cubies {
		if c.Cubies[i].ID == id {
			return &c.Cubies[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// CubeAt returns the cubie at pos.
func (c *Cube) CubeAt(pos Vec) (*Cubie, error) {
	for i := range c.Cubies {
		if c.Cubies[i].Pos == pos {
			return &c.Cubies[i], nil
		}
	}
	return nil, fmt.Errorf("%w: position %v", ErrNotFound, pos)
}

// Layer returns the cubies whose Y coordinate equals id.
func (c *Cube) Layer(id int) ([]*Cubie, error) {
	if id < LayerOne || id > LayerThree {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLayer, id)
	}
	return c.Find(func(cb *Cubie) bool { return cb.Pos.Y == id }), nil
}

// Center returns the center cubie of the given color.
func (c *Cube) Center(color Color) (*Cubie, error) {
	res := c.Find(func(cb *Cubie) bool { return cb.Kind == Center && cb.Has(color) })
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: %s center", ErrNotFound, color.Name())
	}
	return res[0], nil
}

// EdgesAround returns the four edges sharing a face with center.
func (c *Cube) EdgesAround(center *Cubie) ([]*Cubie, error) {
	return c.around(center, Edge)
}

// CornersAround returns the four corners sharing a face with center.
func (c *Cube) CornersAround(center *Cubie) ([]*Cubie, error) {
	return c.around(center, Corner)
}

func (c *Cube) around(center *Cubie, kind Kind) ([]*Cubie, error) {
	if center.Kind != Center {
		return nil, fmt.Errorf("%w: %v", ErrNotCenter, center)
	}
	face := Face{Direction: center.Faces()[0]}
	return c.Find(func(cb *Cubie) bool { return cb.Kind == kind && face.Contains(cb) }), nil
}

// EdgesOf returns the edges carrying color.
func (c *Cube) EdgesOf(color Color) []*Cubie {
	return c.Find(func(cb *Cubie) bool { return cb.Kind == Edge && cb.Has(color) })
}

// CornersOf returns the corners carrying color.
func (c *Cube) CornersOf(color Color) []*Cubie {
	return c.Find(func(cb *Cubie) bool { return cb.Kind == Corner && cb.Has(color) })
}

// FindBy returns the cubie whose color set is exactly colors. Color
// identity survives every move, so this relocates a piece regardless of
// where it currently sits.
func (c *Cube) FindBy(colors ...Color) (*Cubie, error) {
	if len(colors) == 0 || len(colors) > 3 {
		return nil, fmt.Errorf("%w: %d colors", ErrNotFound, len(colors))
	}
	want := sortedColors(colors)
	res := c.Find(func(cb *Cubie) bool {
		have := sortedColors(cb.StickerColors())
		if len(have) != len(want) {
			return false
		}
		for i := range have {
			if have[i] != want[i] {
				return false
			}
		}
		return true
	})
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: colors %v", ErrNotFound, colors)
	}
	return res[0], nil
}

func sortedColors(colors []Color) []Color {
	out := append([]Color(nil), colors...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stickers counts every sticker color on the cube. Moves permute stickers
// but never change this count.
func (c *Cube) Stickers() map[Color]int {
	counts := make(map[Color]int, len(Palette))
	for i := range c.Cubies {
		for _, col := range c.Cubies[i].StickerColors() {
			counts[col]++
		}
	}
	return counts
}

// Validate checks every cubie invariant plus the grid: 26 distinct
// non-core positions and 26 distinct ids.
func (c *Cube) Validate() error {
	seenPos := make(map[Vec]bool, NumCubies)
	seenID := make(map[int]bool, NumCubies)
	for i := range c.Cubies {
		cb := &c.Cubies[i]
		if err := cb.Validate(); err != nil {
			return err
		}
		p := cb.Pos
		if p.IsZero() || abs(p.X) > 1 || abs(p.Y) > 1 || abs(p.Z) > 1 {
			return fmt.Errorf("%w: cubie %d at %v", ErrCorruptState, cb.ID, p)
		}
		if seenPos[p] {
			return fmt.Errorf("%w: two cubies at %v", ErrCorruptState, p)
		}
		if cb.ID < 0 || cb.ID >= NumCubies || seenID[cb.ID] {
			return fmt.Errorf("%w: bad cubie id %d", ErrCorruptState, cb.ID)
		}
		seenPos[p] = true
		seenID[cb.ID] = true
	}
	return nil
}

// facelet returns the sticker at (row, col) of the face in direction dir,
// as seen looking at that face with Up (or Back/Front for the polar faces)
// at the top.
func (c *Cube) facelet(dir Vec, row, col int) Color {
	var pos Vec
	switch dir {
	case Front:
		pos = Vec{col - 1, 1 - row, 1}
	case Back:
		pos = Vec{1 - col, 1 - row, -1}
	case Right:
		pos = Vec{1, 1 - row, 1 - col}
	case Left:
		pos = Vec{-1, 1 - row, col - 1}
	case Up:
		pos = Vec{col - 1, 1, row - 1}
	case Down:
		pos = Vec{col - 1, -1, 1 - row}
	}
	cb, err := c.CubeAt(pos)
	if err != nil {
		return None
	}
	return cb.ColorToward(dir)
}

// Facelets returns the 3x3 sticker grid of a face.
func (c *Cube) Facelets(dir Vec) [3][3]Color {
	var grid [3][3]Color
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			grid[row][col] = c.facelet(dir, row, col)
		}
	}
	return grid
}

// String returns the unfolded net:
//
//	      U
//	L F R B
//	      D
func (c *Cube) String() string {
	var b strings.Builder

	writeRow := func(dir Vec, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c.facelet(dir, row, col).String())
			b.WriteString(" ")
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(Up, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, dir := range []Vec{Left, Front, Right, Back} {
			writeRow(dir, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(Down, row)
		b.WriteString("\n")
	}

	return b.String()
}
