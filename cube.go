package gocube

import (
	"context"
	"math/rand"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Color represents a sticker color.
type Color = cube.Color

const (
	White  = cube.White  // Down face when solved
	Yellow = cube.Yellow // Up face when solved
	Red    = cube.Red    // Front face when solved
	Orange = cube.Orange // Back face when solved
	Green  = cube.Green  // Right face when solved
	Blue   = cube.Blue   // Left face when solved
)

// Direction is a unit vector naming a face of the cube.
type Direction = cube.Vec

// Face directions, for Facelets.
var (
	FaceU = cube.Up
	FaceD = cube.Down
	FaceF = cube.Front
	FaceB = cube.Back
	FaceR = cube.Right
	FaceL = cube.Left
)

// Cube represents a 3x3 Rubik's cube.
type Cube struct {
	c *cube.Cube
}

// NewCube creates a solved cube.
func NewCube() *Cube {
	return &Cube{c: cube.New()}
}

// LoadCube reads a cube from a state file written by Save.
func LoadCube(path string) (*Cube, error) {
	c, err := cube.Load(path)
	if err != nil {
		return nil, err
	}
	return &Cube{c: c}, nil
}

// Save writes the cube to a state file.
func (c *Cube) Save(path string) error {
	return c.c.Save(path)
}

// Clone returns an independent copy.
func (c *Cube) Clone() *Cube {
	return &Cube{c: c.c.Clone()}
}

// Equal reports whether both cubes have the same layout.
func (c *Cube) Equal(o *Cube) bool {
	return c.c.Equal(o.c)
}

// Reset restores the solved layout.
func (c *Cube) Reset() {
	c.c.Reset()
}

// Apply applies moves in order.
func (c *Cube) Apply(ms ...Move) {
	moves.Sequence(ms).Apply(c.c)
}

// ApplyNotation parses notation and applies it. Nothing is applied if any
// token is invalid.
func (c *Cube) ApplyNotation(notation string) error {
	seq, err := moves.ParseSequence(notation)
	if err != nil {
		return err
	}
	seq.Apply(c.c)
	return nil
}

// Scramble applies n random moves from rng and returns them.
func (c *Cube) Scramble(rng *rand.Rand, n int) Sequence {
	return moves.ScrambleCube(c.c, rng, n, moves.DefaultScrambleOptions)
}

// IsSolved reports whether every face shows one color.
func (c *Cube) IsSolved() bool {
	return c.c.IsSolved()
}

// Phase returns the furthest solving phase the cube has reached. A cube
// that fails validation reports PhaseScrambled.
func (c *Cube) Phase() Phase {
	p, err := solver.Detect(c.c)
	if err != nil {
		return PhaseScrambled
	}
	return p
}

// Facelets returns the nine stickers of a face as seen from outside.
func (c *Cube) Facelets(face Direction) [3][3]Color {
	return c.c.Facelets(face)
}

// Validate checks the cubie invariants.
func (c *Cube) Validate() error {
	return c.c.Validate()
}

// String returns the cube as an unfolded net.
func (c *Cube) String() string {
	return c.c.String()
}

// MarshalBinary encodes the cube in the state file format.
func (c *Cube) MarshalBinary() ([]byte, error) {
	return c.c.MarshalBinary()
}

// UnmarshalBinary decodes a cube written by MarshalBinary.
func (c *Cube) UnmarshalBinary(data []byte) error {
	if c.c == nil {
		c.c = cube.New()
	}
	return c.c.UnmarshalBinary(data)
}

// Solution is a solve result.
type Solution = solver.Result

// Solve finds a move sequence that takes the cube to the solved state. The
// cube is not modified.
func (c *Cube) Solve(ctx context.Context, opts ...Option) (*Solution, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return solver.New(cfg.opts...).Solve(ctx, c.c)
}
