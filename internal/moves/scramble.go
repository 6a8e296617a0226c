package moves

import (
	"math/rand"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// ScrambleOptions selects which kinds of moves a scramble may draw from.
// Face turns are always included.
type ScrambleOptions struct {
	Spins       bool
	DoubleLayer bool
}

// DefaultScrambleOptions draws from face turns and spins.
var DefaultScrambleOptions = ScrambleOptions{Spins: true}

// Pool returns the moves a scramble with these options draws from.
func (o ScrambleOptions) Pool() []Move {
	pool := OfKind(SingleLayer)
	if o.DoubleLayer {
		pool = append(pool, OfKind(DoubleLayer)...)
	}
	if o.Spins {
		pool = append(pool, OfKind(WholeCube)...)
	}
	return pool
}

// Scramble draws n moves uniformly from the pool selected by opts.
func Scramble(rng *rand.Rand, n int, opts ScrambleOptions) Sequence {
	pool := opts.Pool()
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = pool[rng.Intn(len(pool))]
	}
	return seq
}

// ScrambleCube draws a scramble and applies it to c.
func ScrambleCube(c *cube.Cube, rng *rand.Rand, n int, opts ScrambleOptions) Sequence {
	seq := Scramble(rng, n, opts)
	seq.Apply(c)
	return seq
}
