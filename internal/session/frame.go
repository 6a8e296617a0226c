package session

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// CubieFrame is what a renderer needs to draw one cubie.
type CubieFrame struct {
	ID     int
	Kind   cube.Kind
	Pos    cube.Vec
	Orient [3]cube.Vec
	Colors [3]mgl32.Vec3
	Faces  [3]cube.Color

	// Model rotates the cubie by the in-flight move's progress, or is the
	// identity when the move does not touch it.
	Model mgl32.Mat4
}

// Frame is a snapshot of the live cube for drawing.
type Frame struct {
	Cubies [cube.NumCubies]CubieFrame

	// Move is the move being animated, if any; Progress is its turned
	// fraction in [0, 1).
	Move     *moves.Move
	Progress float32
}

// Frame returns the current render snapshot.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f Frame
	var rot mgl32.Mat4
	if s.inFlight != nil {
		m := *s.inFlight
		f.Move = &m
		f.Progress = s.angle / QuarterTurn
		rot = m.Matrix(f.Progress)
	}

	for i := range s.cube.Cubies {
		cb := &s.cube.Cubies[i]
		cf := CubieFrame{
			ID:     cb.ID,
			Kind:   cb.Kind,
			Pos:    cb.Pos,
			Orient: cb.Orient,
			Faces:  cb.Colors,
			Model:  mgl32.Ident4(),
		}
		for j, color := range cb.Colors {
			cf.Colors[j] = color.RGB()
		}
		if f.Move != nil && f.Move.Affects(s.cube, cb) {
			cf.Model = rot
		}
		f.Cubies[i] = cf
	}
	return f
}
