package solver

import (
	"context"
	"sort"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// StepID names one stage of the layer-by-layer method.
type StepID int

const (
	StepDaisy StepID = iota
	StepWhiteCross
	StepWhiteCorners
	StepLayer2Edges
	StepYellowCross
	StepYellowCorner
	StepSolveLayer3
	StepDone
)

// Steps lists the stages in solving order.
var Steps = []StepID{
	StepDaisy, StepWhiteCross, StepWhiteCorners, StepLayer2Edges,
	StepYellowCross, StepYellowCorner, StepSolveLayer3,
}

func (s StepID) String() string {
	switch s {
	case StepDaisy:
		return "daisy"
	case StepWhiteCross:
		return "white_cross"
	case StepWhiteCorners:
		return "white_corners"
	case StepLayer2Edges:
		return "layer2_edges"
	case StepYellowCross:
		return "yellow_cross"
	case StepYellowCorner:
		return "yellow_corner"
	case StepSolveLayer3:
		return "solve_layer3"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable step name.
func (s StepID) DisplayName() string {
	switch s {
	case StepDaisy:
		return "Daisy"
	case StepWhiteCross:
		return "White Cross"
	case StepWhiteCorners:
		return "White Corners"
	case StepLayer2Edges:
		return "Second Layer"
	case StepYellowCross:
		return "Yellow Cross"
	case StepYellowCorner:
		return "Yellow Corners"
	case StepSolveLayer3:
		return "Last Layer Edges"
	case StepDone:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Outcome tells the driver what to do after a step ran once.
type Outcome int

const (
	Retry   Outcome = iota // run the same step again
	Advance                // continue with StepResult.Next
)

func (o Outcome) String() string {
	if o == Advance {
		return "advance"
	}
	return "retry"
}

// StepResult is the result of a single unit of work.
type StepResult struct {
	Outcome Outcome
	Moves   moves.Sequence // applied to the cube, in order
	Next    StepID         // set when Outcome is Advance
}

// Run performs one unit of work of step s on c and reports the moves it
// applied. c must be a valid cube; Run checks it first. Trigger loops stop
// early once ctx is done.
func (s StepID) Run(ctx context.Context, c *cube.Cube) (StepResult, error) {
	if err := c.Validate(); err != nil {
		return StepResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return StepResult{}, err
	}

	w := &work{ctx: ctx, c: c}
	if c.IsSolved() {
		return w.advance(StepDone)
	}

	switch s {
	case StepDaisy:
		return w.daisy()
	case StepWhiteCross:
		return w.whiteCross()
	case StepWhiteCorners:
		return w.whiteCorners()
	case StepLayer2Edges:
		return w.layer2Edges()
	case StepYellowCross:
		return w.yellowCross()
	case StepYellowCorner:
		return w.yellowCorner()
	case StepSolveLayer3:
		return w.solveLayer3()
	default:
		return StepResult{}, invariantf("no work for step %s", s)
	}
}

// work is the cube a step operates on plus the moves it applied so far.
type work struct {
	ctx   context.Context // nil for predicate probes
	c     *cube.Cube
	moves moves.Sequence
}

func (w *work) done() error {
	if w.ctx == nil {
		return nil
	}
	return w.ctx.Err()
}

func (w *work) do(ms ...moves.Move) {
	for _, m := range ms {
		m.Apply(w.c)
		w.moves = append(w.moves, m)
	}
}

func (w *work) advance(next StepID) (StepResult, error) {
	return StepResult{Outcome: Advance, Moves: w.moves, Next: next}, nil
}

func (w *work) retry() (StepResult, error) {
	return StepResult{Outcome: Retry, Moves: w.moves}, nil
}

func (w *work) fail(err error) (StepResult, error) {
	return StepResult{Outcome: Retry, Moves: w.moves}, err
}

// turn applies the quarter turn of the face toward dir.
func (w *work) turn(dir cube.Vec, prime bool) error {
	m, err := moves.For(dir)
	if err != nil {
		return err
	}
	if prime {
		m = m.Inverse()
	}
	w.do(m)
	return nil
}

// front spins the whole cube so the side face toward dir faces front.
func (w *work) front(dir cube.Vec) error {
	switch dir {
	case cube.Front:
	case cube.Right:
		w.do(moves.SpinRight)
	case cube.Left:
		w.do(moves.SpinLeft)
	case cube.Back:
		w.do(moves.SpinRight, moves.SpinRight)
	default:
		return invariantf("%v is not a side face", dir)
	}
	return nil
}

// yellowUp re-frames the cube so the yellow center faces up.
func (w *work) yellowUp() error {
	center, err := w.c.Center(cube.Yellow)
	if err != nil {
		return err
	}
	switch center.Pos {
	case cube.Up:
		return nil
	case cube.Down:
		w.do(moves.SpinUp, moves.SpinUp)
		return nil
	default:
		if err := w.front(center.Pos); err != nil {
			return err
		}
		w.do(moves.SpinUp)
		return nil
	}
}

// repeat applies seq until done holds, at most limit times.
func (w *work) repeat(seq moves.Sequence, limit int, done func() bool, what string) error {
	for i := 0; i < limit; i++ {
		if done() {
			return nil
		}
		if err := w.done(); err != nil {
			return err
		}
		w.do(seq...)
	}
	if done() {
		return nil
	}
	return invariantf("%s: no progress after %d x %s", what, limit, seq)
}

// alignTop turns U until done holds.
func (w *work) alignTop(done func() bool, what string) error {
	return w.repeat(moves.Sequence{moves.U}, 4, done, what)
}

func (w *work) daisy() (StepResult, error) {
	if err := w.yellowUp(); err != nil {
		return w.fail(err)
	}

	phase, err := Detect(w.c)
	if err != nil {
		return w.fail(err)
	}
	if phase >= PhaseWhiteCross {
		return w.advance(phase.NextStep())
	}
	if daisyFormed(w.c) {
		return w.advance(StepWhiteCross)
	}

	var edge *cube.Cubie
	for _, e := range w.c.EdgesOf(cube.White) {
		if e.ColorToward(cube.Up) != cube.White {
			edge = e
			break
		}
	}
	if edge == nil {
		return w.fail(invariantf("daisy: no white edge left to raise"))
	}

	white := edge.DirectionOf(cube.White)
	other := edge.OtherDirection(white)

	switch {
	case white == cube.Down:
		// White faces down: a half turn of the side face lifts it.
		if err := w.freePetal(other); err != nil {
			return w.fail(err)
		}
		for i := 0; i < 2; i++ {
			if err := w.turn(other, false); err != nil {
				return w.fail(err)
			}
		}

	case edge.Pos.Y != 0:
		// White faces sideways in the top or bottom layer: drop the edge
		// into the middle layer.
		if other == cube.Down {
			if err := w.freePetal(white); err != nil {
				return w.fail(err)
			}
		}
		if err := w.turn(white, false); err != nil {
			return w.fail(err)
		}

	default:
		// Middle layer: lift it with the face carrying the other color.
		if err := w.freePetal(other); err != nil {
			return w.fail(err)
		}
		cw, err := moves.For(other)
		if err != nil {
			return w.fail(err)
		}
		if cw.Rotate(white) == cube.Up {
			w.do(cw)
		} else {
			w.do(cw.Inverse())
		}
	}

	return w.retry()
}

// freePetal turns U until the top edge above side does not show white up.
func (w *work) freePetal(side cube.Vec) error {
	slot := side.Add(cube.Up)
	return w.alignTop(func() bool {
		cb, err := w.c.CubeAt(slot)
		return err == nil && cb.ColorToward(cube.Up) != cube.White
	}, "daisy: free petal slot")
}

func (w *work) whiteCross() (StepResult, error) {
	var petals []*cube.Cubie
	for _, e := range w.c.EdgesOf(cube.White) {
		if e.ColorToward(cube.Up) == cube.White {
			petals = append(petals, e)
		}
	}
	if len(petals) == 0 {
		if !crossFormed(w.c) {
			return w.fail(invariantf("white cross did not form"))
		}
		return w.advance(StepWhiteCorners)
	}

	petal := petals[0]
	err := w.alignTop(func() bool {
		side := petal.Pos.Sub(cube.Up)
		return petal.ColorToward(side) == centerColor(w.c, side)
	}, "white cross: align petal")
	if err != nil {
		return w.fail(err)
	}

	side := petal.Pos.Sub(cube.Up)
	for i := 0; i < 2; i++ {
		if err := w.turn(side, false); err != nil {
			return w.fail(err)
		}
	}
	return w.retry()
}

func (w *work) whiteCorners() (StepResult, error) {
	if layerSolved(w.c, cube.LayerOne) {
		return w.advance(StepLayer2Edges)
	}

	var todo []*cube.Cubie
	for _, cb := range w.c.CornersOf(cube.White) {
		if !w.c.InPlace(cb, true) {
			todo = append(todo, cb)
		}
	}
	if len(todo) == 0 {
		return w.fail(invariantf("white corners placed but first layer unsolved"))
	}
	sort.SliceStable(todo, func(i, j int) bool { return todo[i].Pos.Y > todo[j].Pos.Y })
	corner := todo[0]

	if corner.Pos.Y == cube.LayerOne {
		// Misplaced in the bottom layer: lift it out.
		dir, err := sideFront(corner.Pos)
		if err != nil {
			return w.fail(err)
		}
		if err := w.front(dir); err != nil {
			return w.fail(err)
		}
		w.do(moves.Sexy...)
		return w.retry()
	}

	target, err := slotOf(w.c, corner, cube.White)
	if err != nil {
		return w.fail(err)
	}
	err = w.alignTop(func() bool {
		return corner.Pos.X == target.X && corner.Pos.Z == target.Z
	}, "white corners: align corner")
	if err != nil {
		return w.fail(err)
	}

	dir, err := sideFront(target)
	if err != nil {
		return w.fail(err)
	}
	if err := w.front(dir); err != nil {
		return w.fail(err)
	}
	err = w.repeat(moves.Sexy, 6, func() bool { return w.c.InPlace(corner, true) }, "white corners: insert")
	if err != nil {
		return w.fail(err)
	}
	return w.retry()
}

func (w *work) layer2Edges() (StepResult, error) {
	if layerSolved(w.c, cube.LayerTwo) {
		return w.advance(StepYellowCross)
	}

	var mids, top []*cube.Cubie
	for _, cb := range w.c.Find(func(cb *cube.Cubie) bool { return cb.Kind == cube.Edge }) {
		if cb.Has(cube.White) || cb.Has(cube.Yellow) || w.c.InPlace(cb, true) {
			continue
		}
		mids = append(mids, cb)
		if cb.Pos.Y == cube.LayerThree {
			top = append(top, cb)
		}
	}
	if len(mids) == 0 {
		return w.fail(invariantf("middle edges placed but second layer unsolved"))
	}

	if len(top) == 0 {
		// Every candidate is stuck in the middle layer: eject one.
		dir, err := sideFront(mids[0].Pos)
		if err != nil {
			return w.fail(err)
		}
		if err := w.front(dir); err != nil {
			return w.fail(err)
		}
		w.do(moves.InsertRight...)
		return w.retry()
	}

	edge := top[0]
	err := w.alignTop(func() bool {
		side := edge.Pos.Sub(cube.Up)
		return edge.ColorToward(side) == centerColor(w.c, side)
	}, "second layer: align edge")
	if err != nil {
		return w.fail(err)
	}
	if err := w.front(edge.Pos.Sub(cube.Up)); err != nil {
		return w.fail(err)
	}

	if edge.ColorToward(cube.Up) == centerColor(w.c, cube.Right) {
		w.do(moves.InsertRight...)
	} else {
		w.do(moves.InsertLeft...)
	}
	return w.retry()
}

var (
	yellowLine  = []cube.Vec{{X: -1, Y: 1}, {X: 1, Y: 1}}
	yellowAngle = []cube.Vec{{Y: 1, Z: -1}, {X: -1, Y: 1}}

	// frontRightDown is where yellow corners are twisted.
	frontRightDown = cube.Vec{X: 1, Y: -1, Z: 1}
)

func (w *work) yellowCross() (StepResult, error) {
	up := yellowEdgesUp(w.c)
	switch {
	case len(up) == 4:
		return w.advance(StepYellowCorner)
	case len(up) == 0, sameVecs(up, yellowLine), sameVecs(up, yellowAngle):
		w.do(moves.YellowCross...)
	default:
		w.do(moves.U)
	}
	return w.retry()
}

func (w *work) yellowCorner() (StepResult, error) {
	if cornersPlaced(w.c) {
		return w.advance(StepSolveLayer3)
	}

	// Count non-strictly placed top corners for each U alignment.
	var counts [4]int
	probe := w.c.Clone()
	for i := range counts {
		counts[i] = len(placedTopCorners(probe))
		moves.U.Apply(probe)
	}

	if k := indexOf(counts, 4); k >= 0 {
		for i := 0; i < k; i++ {
			w.do(moves.U)
		}

		// Orient: yellow down, twist each corner at front-right-down.
		w.do(moves.SpinUp, moves.SpinUp)
		for i := 0; i < 4; i++ {
			err := w.repeat(moves.Sexy, 6, func() bool {
				cb, err := w.c.CubeAt(frontRightDown)
				return err == nil && cb.ColorToward(cube.Down) == cube.Yellow
			}, "yellow corners: orient")
			if err != nil {
				return w.fail(err)
			}
			w.do(moves.D)
		}
		w.do(moves.SpinUp, moves.SpinUp)
		return w.retry()
	}

	if k := indexOf(counts, 1); k >= 0 {
		for i := 0; i < k; i++ {
			w.do(moves.U)
		}
		placed := placedTopCorners(w.c)
		if len(placed) == 0 {
			return w.fail(invariantf("yellow corners: placed corner vanished"))
		}
		dir, err := sideFront(placed[0].Pos)
		if err != nil {
			return w.fail(err)
		}
		if err := w.front(dir); err != nil {
			return w.fail(err)
		}
	}
	w.do(moves.CornerCycle...)
	return w.retry()
}

func (w *work) solveLayer3() (StepResult, error) {
	if w.c.IsSolved() {
		return w.advance(StepDone)
	}
	for _, f := range cube.Sides {
		if f.IsSolved(w.c) {
			if err := w.front(f.Direction); err != nil {
				return w.fail(err)
			}
			break
		}
	}
	w.do(moves.EdgeCycle...)
	return w.retry()
}
