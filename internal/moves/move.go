// Package moves implements the move engine: face turns, double-layer turns
// and whole-cube spins applied to a cube.Cube as rigid rotations.
package moves

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Kind distinguishes how a move selects the cubies it rotates.
type Kind int

const (
	SingleLayer Kind = iota // the nine cubies on one face
	DoubleLayer             // a face plus the slice behind it
	WholeCube               // every cubie; a re-framing, not a scrambling move
)

func (k Kind) String() string {
	switch k {
	case SingleLayer:
		return "single"
	case DoubleLayer:
		return "double"
	case WholeCube:
		return "spin"
	default:
		return "unknown"
	}
}

// Move is an immutable move descriptor. Moves are compared by value.
//
// Angle is in degrees about Axis; negative is clockwise when looking at the
// face the axis points to.
type Move struct {
	Name     string   // "R", "R'", "r", "spin right"
	Notation string   // "R", "R'", "r", "y"
	Kind     Kind     // selection rule
	Face     cube.Vec // selector; zero for whole-cube spins
	Axis     cube.Vec // rotation axis
	Angle    float32  // degrees, always ±90
}

func (m Move) String() string {
	return m.Notation
}

// IsSpin reports whether m only re-frames the cube.
func (m Move) IsSpin() bool {
	return m.Kind == WholeCube
}

// IsPrime reports whether m turns counter-clockwise.
func (m Move) IsPrime() bool {
	return m.Angle > 0
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	if m.Kind == WholeCube {
		return newSpin(m.Axis, -m.Angle)
	}
	return newTurn(m.Kind, m.Face, !m.IsPrime())
}

// Matrix returns the rotation for the given fraction of the move, 0 being
// identity and 1 the full quarter turn. Renderers use partial fractions to
// animate an in-flight move.
func (m Move) Matrix(fraction float32) mgl32.Mat4 {
	if fraction == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(m.Angle*fraction), m.Axis.GL())
}

// Rotate returns where the direction v points after m.
func (m Move) Rotate(v cube.Vec) cube.Vec {
	return cube.Round(m.Matrix(1).Mat3().Mul3x1(v.GL()))
}

// Affects reports whether cb is rotated when m is applied to c.
func (m Move) Affects(c *cube.Cube, cb *cube.Cubie) bool {
	face := cube.Face{Direction: m.Face}
	switch m.Kind {
	case SingleLayer:
		return face.Contains(cb)
	case DoubleLayer:
		if face.Contains(cb) {
			return true
		}
		outer, err := c.CubeAt(cb.Pos.Add(m.Face))
		if err != nil {
			return false
		}
		return face.Contains(outer)
	default:
		return true
	}
}

// Apply rotates the affected cubies of c. Every transformed vector is
// snapped back to the integer grid.
func (m Move) Apply(c *cube.Cube) {
	rot := m.Matrix(1)
	for _, cb := range m.selection(c) {
		cb.Transform(rot)
	}
}

// selection gathers the cubies to rotate before any of them moves. For a
// double-layer move each face cubie pulls in its neighbor one layer deeper;
// neighbors are deduplicated by ID so no cubie turns twice.
func (m Move) selection(c *cube.Cube) []*cube.Cubie {
	if m.Kind == WholeCube {
		return c.Find(func(*cube.Cubie) bool { return true })
	}

	face := cube.Face{Direction: m.Face}
	selected := c.Find(face.Contains)
	if m.Kind == SingleLayer {
		return selected
	}

	seen := make(map[int]bool, len(selected)*2)
	for _, cb := range selected {
		seen[cb.ID] = true
	}
	primary := len(selected)
	for _, cb := range selected[:primary] {
		pos := cb.Pos.Sub(m.Face)
		if pos.IsZero() {
			continue
		}
		neighbor, err := c.CubeAt(pos)
		if err != nil || seen[neighbor.ID] {
			continue
		}
		seen[neighbor.ID] = true
		selected = append(selected, neighbor)
	}
	return selected
}

func newTurn(kind Kind, face cube.Vec, prime bool) Move {
	letter := faceLetter(face)
	name := letter
	if kind == DoubleLayer {
		name = strings.ToLower(letter)
	}
	angle := float32(-90)
	if prime {
		name += "'"
		angle = 90
	}
	return Move{
		Name:     name,
		Notation: name,
		Kind:     kind,
		Face:     face,
		Axis:     face,
		Angle:    angle,
	}
}

func newSpin(axis cube.Vec, angle float32) Move {
	var name, notation string
	switch {
	case axis == cube.Up && angle < 0:
		name, notation = "spin right", "y"
	case axis == cube.Up:
		name, notation = "spin left", "y'"
	case axis == cube.Right && angle < 0:
		name, notation = "spin up", "x"
	case axis == cube.Right:
		name, notation = "spin down", "x'"
	default:
		panic(fmt.Sprintf("moves: no spin about %v", axis))
	}
	return Move{
		Name:     name,
		Notation: notation,
		Kind:     WholeCube,
		Axis:     axis,
		Angle:    angle,
	}
}

func faceLetter(dir cube.Vec) string {
	f, ok := cube.FaceFor(dir)
	if !ok {
		panic(fmt.Sprintf("moves: %v is not a face direction", dir))
	}
	return f.String()
}
