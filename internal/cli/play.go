package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/session"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube in the terminal",
	Long: `Start an interactive TUI with an animated cube.

Keyboard shortcuts:
  r l u d f b   - Turn a face clockwise
  R L U D F B   - Turn a face counter-clockwise
  arrows        - Spin the whole cube
  s             - Scramble
  enter         - Solve and animate the solution
  w / o         - Save / load the state file
  x             - Reset to solved
  q/Esc         - Quit

Commands are ignored while a move is animating.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Messages
type frameMsg time.Time
type solveDoneMsg struct {
	res *solver.Result
	err error
}

// keyMoves maps keys to moves: lower case is clockwise, upper case prime.
var keyMoves = map[string]moves.Move{
	"r": moves.R, "R": moves.RPrime,
	"l": moves.L, "L": moves.LPrime,
	"u": moves.U, "U": moves.UPrime,
	"d": moves.D, "D": moves.DPrime,
	"f": moves.F, "F": moves.FPrime,
	"b": moves.B, "B": moves.BPrime,
	"right": moves.SpinRight,
	"left":  moves.SpinLeft,
	"up":    moves.SpinUp,
	"down":  moves.SpinDown,
}

// Model
type playModel struct {
	sess     *session.Session
	title    string
	degrees  float32
	interval time.Duration

	// Replay mode: the cube cannot be edited and playback can pause.
	replay bool
	paused bool

	// State
	solving  bool
	phase    solver.Phase
	notice   string
	lastRun  *solver.Result
	err      error
	quitting bool
}

func newPlayModel(sess *session.Session, title string) *playModel {
	m := &playModel{
		sess:     sess,
		title:    title,
		degrees:  cfg.TickDegrees(),
		interval: cfg.FrameInterval(),
	}
	_, m.phase = sess.Phase()
	sess.SetPhaseCallback(func(p solver.Phase) {
		m.phase = p
		m.notice = "Reached: " + p.DisplayName()
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) solveCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.sess.Solve(context.Background())
		return solveDoneMsg{res: res, err: err}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case frameMsg:
		if !m.paused {
			m.sess.Tick(m.degrees)
		}
		return m, m.frameCmd()

	case solveDoneMsg:
		m.solving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.lastRun = msg.res
		m.notice = fmt.Sprintf("Solution: %d moves", len(msg.res.Moves))
		return m, nil
	}

	return m, nil
}

func (m *playModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit
	}

	if m.replay {
		switch key {
		case " ":
			m.paused = !m.paused
		case "n":
			if m.paused {
				m.sess.Tick(session.QuarterTurn)
			}
		}
		return nil
	}

	if m.solving {
		m.notice = "Solving..."
		return nil
	}

	m.err = nil
	var err error
	switch key {
	case "s":
		_, err = m.sess.Scramble()
		if err == nil {
			m.notice = "Scrambling"
		}
	case "enter":
		if m.sess.State() == session.StateAnimating {
			err = session.ErrBusy
			break
		}
		m.solving = true
		m.notice = "Solving..."
		return m.solveCmd()
	case "w":
		err = m.sess.Save()
		if err == nil {
			m.notice = "Saved " + m.sess.StatePath()
		}
	case "o":
		err = m.sess.Load()
		if err == nil {
			m.notice = "Loaded " + m.sess.StatePath()
			_, m.phase = m.sess.Phase()
		}
	case "x":
		err = m.sess.Reset()
		if err == nil {
			m.notice = "Reset"
			_, m.phase = m.sess.Phase()
		}
	default:
		mv, ok := keyMoves[key]
		if !ok {
			return nil
		}
		err = m.sess.Enqueue(mv)
	}

	// Busy keys are dropped quietly, like a real cube that is mid-turn.
	if err != nil && !errors.Is(err, session.ErrBusy) {
		m.err = err
	}
	return nil
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	frame := m.sess.Frame()
	c := m.sess.Cube()

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	b.WriteString(renderNet(c))
	b.WriteString("\n")

	if c.IsSolved() {
		b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render("SOLVED!")))
	} else {
		b.WriteString(fmt.Sprintf("Working on: %s\n", phaseStyle.Render(m.phase.NextStep().DisplayName())))
		if m.phase > solver.PhaseScrambled {
			b.WriteString(fmt.Sprintf("Completed: %s\n", statusStyle.Render(m.phase.DisplayName())))
		}
	}

	if frame.Move != nil {
		b.WriteString(fmt.Sprintf("Turning: %s %3.0f%%  (%d pending)\n",
			moveStyle.Render(frame.Move.Notation), frame.Progress*100, m.sess.Pending()))
	} else {
		b.WriteString(statusStyle.Render("Idle"))
		b.WriteString("\n")
	}

	history := m.sess.History()
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(history)))
	if len(history) > 0 {
		notations := make([]string, len(history))
		for i, mv := range history {
			notations[i] = mv.Notation
		}
		b.WriteString(recentMoves(notations, 20))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.notice))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	help := "Keys: rludfb/RLUDFB=turn arrows=spin s=scramble enter=solve w=save o=load x=reset q=quit"
	if m.replay {
		help = "Keys: space=pause n=step (paused) q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func newSession(opts ...session.Option) *session.Session {
	base := []session.Option{
		session.WithSolver(newSolver()),
		session.WithScramble(cfg.Scramble.Length, cfg.ScrambleOptions()),
		session.WithStatePath(cfg.StatePath),
		session.WithLogger(log),
	}
	if cfg.Scramble.Seed != 0 {
		rng, _ := newRand(cfg.Scramble.Seed)
		base = append(base, session.WithRand(rng))
	}
	return session.New(append(base, opts...)...)
}

func runPlay(cmd *cobra.Command, args []string) error {
	sess := newSession()

	// Start from the saved state if there is one.
	if c, err := cube.Load(cfg.StatePath); err == nil {
		if err := sess.Replace(c); err != nil {
			return err
		}
	} else {
		log.WithError(err).Debug("starting from a solved cube")
	}

	model := newPlayModel(sess, "cubesolver")
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
