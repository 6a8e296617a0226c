package moves

import (
	"fmt"
	"sync"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Face turns. Unprimed is clockwise looking at the face.
var (
	R      = newTurn(SingleLayer, cube.Right, false)
	RPrime = newTurn(SingleLayer, cube.Right, true)
	L      = newTurn(SingleLayer, cube.Left, false)
	LPrime = newTurn(SingleLayer, cube.Left, true)
	U      = newTurn(SingleLayer, cube.Up, false)
	UPrime = newTurn(SingleLayer, cube.Up, true)
	D      = newTurn(SingleLayer, cube.Down, false)
	DPrime = newTurn(SingleLayer, cube.Down, true)
	F      = newTurn(SingleLayer, cube.Front, false)
	FPrime = newTurn(SingleLayer, cube.Front, true)
	B      = newTurn(SingleLayer, cube.Back, false)
	BPrime = newTurn(SingleLayer, cube.Back, true)
)

// Whole-cube spins, named after where the front face goes.
var (
	SpinRight = newSpin(cube.Up, -90)    // y: the right face comes to the front
	SpinLeft  = newSpin(cube.Up, 90)     // y'
	SpinUp    = newSpin(cube.Right, -90) // x: the front face goes up
	SpinDown  = newSpin(cube.Right, 90)  // x'
)

var (
	registryOnce sync.Once
	registry     []Move
	byName       map[string]Move
)

// load builds the read-only move table: 12 face turns, 12 double-layer turns
// and 4 spins. It never changes after the first call.
func load() {
	registryOnce.Do(func() {
		dirs := []cube.Vec{cube.Front, cube.Right, cube.Back, cube.Left, cube.Up, cube.Down}
		for _, kind := range []Kind{SingleLayer, DoubleLayer} {
			for _, dir := range dirs {
				registry = append(registry, newTurn(kind, dir, false), newTurn(kind, dir, true))
			}
		}
		registry = append(registry, SpinRight, SpinLeft, SpinUp, SpinDown)

		byName = make(map[string]Move, len(registry)*2)
		for _, m := range registry {
			byName[m.Name] = m
			byName[m.Notation] = m
		}
	})
}

// All returns every registered move.
func All() []Move {
	load()
	return append([]Move(nil), registry...)
}

// OfKind returns the registered moves of one kind.
func OfKind(kind Kind) []Move {
	load()
	var res []Move
	for _, m := range registry {
		if m.Kind == kind {
			res = append(res, m)
		}
	}
	return res
}

// ByName looks a move up by name ("spin right") or notation ("y").
func ByName(name string) (Move, error) {
	load()
	m, ok := byName[name]
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return m, nil
}

// For returns the clockwise single-layer turn of the face in direction dir.
func For(dir cube.Vec) (Move, error) {
	if _, ok := cube.FaceFor(dir); !ok {
		return Move{}, fmt.Errorf("%w: no face toward %v", ErrUnknownMove, dir)
	}
	return newTurn(SingleLayer, dir, false), nil
}
