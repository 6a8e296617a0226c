package solver

import (
	"fmt"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// The predicates below assume a validated cube, on which every center
// lookup succeeds.

func layerSolved(c *cube.Cube, id int) bool {
	ok, err := c.LayerIsSolved(id)
	return err == nil && ok
}

func centerColor(c *cube.Cube, dir cube.Vec) cube.Color {
	f, ok := cube.FaceFor(dir)
	if !ok {
		return cube.None
	}
	color, err := f.CenterColor(c)
	if err != nil {
		return cube.None
	}
	return color
}

// daisyFormed: every white edge shows white up.
func daisyFormed(c *cube.Cube) bool {
	for _, e := range c.EdgesOf(cube.White) {
		if e.ColorToward(cube.Up) != cube.White {
			return false
		}
	}
	return true
}

// crossFormed: every white edge shows white down and sits in its slot.
func crossFormed(c *cube.Cube) bool {
	for _, e := range c.EdgesOf(cube.White) {
		if e.ColorToward(cube.Down) != cube.White || !c.InPlace(e, true) {
			return false
		}
	}
	return true
}

// yellowEdgesUp returns the positions of top edges showing yellow up.
func yellowEdgesUp(c *cube.Cube) []cube.Vec {
	var res []cube.Vec
	for _, e := range c.Find(func(cb *cube.Cubie) bool { return cb.Kind == cube.Edge }) {
		if e.Pos.Y == cube.LayerThree && e.ColorToward(cube.Up) == cube.Yellow {
			res = append(res, e.Pos)
		}
	}
	return res
}

func cornersPlaced(c *cube.Cube) bool {
	for _, cb := range c.Find(func(cb *cube.Cubie) bool { return cb.Kind == cube.Corner }) {
		if !c.InPlace(cb, true) {
			return false
		}
	}
	return true
}

// placedTopCorners returns the top corners sitting between the right side
// centers, ignoring twist.
func placedTopCorners(c *cube.Cube) []*cube.Cubie {
	return c.Find(func(cb *cube.Cubie) bool {
		return cb.Kind == cube.Corner && cb.Pos.Y == cube.LayerThree && c.InPlace(cb, false)
	})
}

// sideFront returns the side face to bring to the front so the column at
// p becomes the front-right column.
func sideFront(p cube.Vec) (cube.Vec, error) {
	switch {
	case p.X == 1 && p.Z == 1:
		return cube.Front, nil
	case p.X == 1 && p.Z == -1:
		return cube.Right, nil
	case p.X == -1 && p.Z == -1:
		return cube.Back, nil
	case p.X == -1 && p.Z == 1:
		return cube.Left, nil
	default:
		return cube.Vec{}, invariantf("%v is not a corner column", p)
	}
}

// slotOf returns the home position of cb relative to the current centers:
// the sum of the center positions of its colors, skipping excluded ones.
func slotOf(c *cube.Cube, cb *cube.Cubie, exclude cube.Color) (cube.Vec, error) {
	var slot cube.Vec
	for _, color := range cb.StickerColors() {
		if color == exclude {
			continue
		}
		center, err := c.Center(color)
		if err != nil {
			return cube.Vec{}, fmt.Errorf("slot of %v: %w", cb, err)
		}
		slot = slot.Add(center.Pos)
	}
	return slot, nil
}

// sameVecs reports whether a and b hold the same vectors in any order.
func sameVecs(a, b []cube.Vec) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[cube.Vec]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

func indexOf(counts [4]int, n int) int {
	for i, c := range counts {
		if c == n {
			return i
		}
	}
	return -1
}
