// Package session holds the live cube behind the interactive surface: a
// queue of moves waiting to be animated, at most one move in flight and
// the angle it has turned so far.
package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// QuarterTurn is the angle, in degrees, of every move.
const QuarterTurn = 90

// DefaultScrambleLength is the number of moves in a scramble.
const DefaultScrambleLength = 50

// State represents whether the session is accepting commands.
type State int

const (
	StateIdle State = iota
	StateAnimating
)

// String returns the string representation of the session state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Option configures a Session.
type Option func(*config)

type config struct {
	solver         *solver.Solver
	rng            *rand.Rand
	scrambleLength int
	scrambleOpts   moves.ScrambleOptions
	statePath      string
	logger         logrus.FieldLogger
}

func defaultConfig() *config {
	return &config{
		solver:         solver.New(),
		scrambleLength: DefaultScrambleLength,
		scrambleOpts:   moves.DefaultScrambleOptions,
		statePath:      cube.DefaultStateFile,
		logger:         logrus.StandardLogger(),
	}
}

// WithSolver sets the solver used by Solve.
func WithSolver(s *solver.Solver) Option {
	return func(c *config) {
		if s != nil {
			c.solver = s
		}
	}
}

// WithRand sets the random source for scrambles.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithScramble sets the scramble length and move pool.
func WithScramble(n int, opts moves.ScrambleOptions) Option {
	return func(c *config) {
		if n > 0 {
			c.scrambleLength = n
		}
		c.scrambleOpts = opts
	}
}

// WithStatePath sets the file used by Save and Load.
func WithStatePath(path string) Option {
	return func(c *config) {
		if path != "" {
			c.statePath = path
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Session manages the live cube.
type Session struct {
	cfg *config

	mu       sync.Mutex
	cube     *cube.Cube
	tracker  *solver.Tracker
	queue    []moves.Move
	inFlight *moves.Move
	angle    float32
	history  moves.Sequence

	// rebase rebuilds the tracker once the queue drains, so phases count
	// from the scrambled state.
	rebase bool

	// Callbacks
	onMove  func(moves.Move)
	onPhase func(solver.Phase)
}

// New creates a session over a solved cube.
func New(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{cfg: cfg}
	s.setCube(cube.New())
	return s
}

// SetMoveCallback sets the callback fired when a move is committed.
func (s *Session) SetMoveCallback(cb func(moves.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// SetPhaseCallback sets the callback fired when the cube reaches a new
// highest solving phase.
func (s *Session) SetPhaseCallback(cb func(solver.Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPhase = cb
}

// setCube replaces the live cube. Callers hold the lock or own s.
func (s *Session) setCube(c *cube.Cube) error {
	tr, err := solver.NewTracker(c)
	if err != nil {
		return err
	}
	s.cube = c
	s.tracker = tr
	s.history = nil
	s.rebase = false
	return nil
}

// retrack restarts phase tracking from the live cube.
func (s *Session) retrack() {
	tr, err := solver.NewTracker(s.cube)
	if err != nil {
		s.cfg.logger.WithError(err).Warn("phase tracking failed")
		return
	}
	s.tracker = tr
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		return StateAnimating
	}
	return StateIdle
}

func (s *Session) busy() bool {
	return s.inFlight != nil || len(s.queue) > 0
}

// Cube returns a copy of the live cube.
func (s *Session) Cube() *cube.Cube {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cube.Clone()
}

// Pending returns the number of moves not yet committed, including the one
// in flight.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.queue)
	if s.inFlight != nil {
		n++
	}
	return n
}

// History returns the moves committed since the last load or reset.
func (s *Session) History() moves.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(moves.Sequence(nil), s.history...)
}

// Phase returns the current and the highest phase of the live cube.
func (s *Session) Phase() (current, highest solver.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.CurrentPhase(), s.tracker.HighestPhase()
}

// IsSolved reports whether the live cube is solved.
func (s *Session) IsSolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cube.IsSolved()
}

// Enqueue queues moves for animation. It fails with ErrBusy unless the
// session is idle.
func (s *Session) Enqueue(ms ...moves.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		return ErrBusy
	}
	s.queue = append(s.queue, ms...)
	return nil
}

// Tick advances the animation by degrees. A move is committed to the live
// cube once it has turned a full quarter; leftover degrees carry into the
// next queued move. Tick returns the moves committed by this call.
func (s *Session) Tick(degrees float32) []moves.Move {
	s.mu.Lock()

	var committed []moves.Move
	var phases []solver.Phase
	s.tracker.SetPhaseCallback(func(p solver.Phase, _ int) {
		phases = append(phases, p)
	})

	for degrees > 0 {
		if s.inFlight == nil {
			if len(s.queue) == 0 {
				break
			}
			next := s.queue[0]
			s.queue = s.queue[1:]
			s.inFlight = &next
			s.angle = 0
		}

		remaining := QuarterTurn - s.angle
		if degrees < remaining {
			s.angle += degrees
			break
		}
		degrees -= remaining

		m := *s.inFlight
		// The tracker keeps its own copy, so the live cube is turned
		// separately.
		m.Apply(s.cube)
		if err := s.tracker.Apply(m); err != nil {
			s.cfg.logger.WithError(err).WithField("move", m.String()).Warn("phase tracking failed")
		}
		s.history = append(s.history, m)
		committed = append(committed, m)
		s.inFlight = nil
		s.angle = 0
	}

	s.tracker.SetPhaseCallback(nil)
	if s.rebase && !s.busy() {
		s.rebase = false
		s.retrack()
	}
	onMove, onPhase := s.onMove, s.onPhase
	s.mu.Unlock()

	if onMove != nil {
		for _, m := range committed {
			onMove(m)
		}
	}
	if onPhase != nil {
		for _, p := range phases {
			onPhase(p)
		}
	}
	return committed
}

// Flush commits every pending move at once.
func (s *Session) Flush() []moves.Move {
	return s.Tick(float32(QuarterTurn * (s.Pending() + 1)))
}

// Scramble queues a random scramble and returns it.
func (s *Session) Scramble() (moves.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		return nil, ErrBusy
	}
	seq := moves.Scramble(s.cfg.rng, s.cfg.scrambleLength, s.cfg.scrambleOpts)
	s.queue = append(s.queue, seq...)
	s.rebase = true
	return seq, nil
}

// Solve solves the live cube and queues the solution.
func (s *Session) Solve(ctx context.Context) (*solver.Result, error) {
	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	c := s.cube.Clone()
	s.mu.Unlock()

	res, err := s.cfg.solver.Solve(ctx, c)
	if err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() || !s.cube.Equal(c) {
		return nil, ErrBusy
	}
	s.retrack()
	s.queue = append(s.queue, res.Moves...)
	return res, nil
}

// Save writes the live cube to the state file. Moves still pending are
// not included.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cube.Save(s.cfg.statePath)
}

// Load replaces the live cube with the one in the state file.
func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		return ErrBusy
	}
	c, err := cube.Load(s.cfg.statePath)
	if err != nil {
		return err
	}
	return s.setCube(c)
}

// Replace sets the live cube to a copy of c.
func (s *Session) Replace(c *cube.Cube) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		return ErrBusy
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return s.setCube(c.Clone())
}

// Reset restores the solved layout.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		return ErrBusy
	}
	return s.setCube(cube.New())
}

// StatePath returns the file used by Save and Load.
func (s *Session) StatePath() string {
	return s.cfg.statePath
}
