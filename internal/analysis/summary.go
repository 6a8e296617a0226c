// Package analysis computes statistics over move sequences produced by the
// solver or typed by hand.
package analysis

import (
	"sort"

	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// Summary contains statistics for a single move sequence.
type Summary struct {
	TotalMoves       int            `json:"total_moves"`
	FaceTurns        int            `json:"face_turns"`
	DoubleLayerTurns int            `json:"double_layer_turns"`
	Spins            int            `json:"spins"`
	Cancellations    int            `json:"cancellations"`
	FourInARow       int            `json:"four_in_a_row"`
	OptimizedMoves   int            `json:"optimized_moves"`
	Efficiency       float64        `json:"efficiency"`
	FaceCounts       map[string]int `json:"face_counts"`
	MostUsedFace     string         `json:"most_used_face"`
	FacePairs        map[string]int `json:"face_pairs"` // e.g., "RU" -> count
}

// Summarize computes statistics for ms.
func Summarize(ms []moves.Move) *Summary {
	s := &Summary{
		TotalMoves: len(ms),
		FaceCounts: make(map[string]int),
		FacePairs:  make(map[string]int),
	}

	for i, m := range ms {
		switch m.Kind {
		case moves.SingleLayer:
			s.FaceTurns++
		case moves.DoubleLayer:
			s.DoubleLayerTurns++
		case moves.WholeCube:
			s.Spins++
		}

		face := faceKey(m)
		s.FaceCounts[face]++

		if i > 0 {
			prev := ms[i-1]
			if prev.Notation == m.Inverse().Notation {
				s.Cancellations++
			}
			s.FacePairs[faceKey(prev)+face]++
		}
		if i >= 3 && sameRun(ms[i-3:i+1]) {
			s.FourInARow++
		}
	}

	s.OptimizedMoves = len(Optimize(ms))
	if s.TotalMoves > 0 {
		s.Efficiency = float64(s.OptimizedMoves) / float64(s.TotalMoves)
	}

	// Most used face, ties broken by name
	faces := make([]string, 0, len(s.FaceCounts))
	for face := range s.FaceCounts {
		faces = append(faces, face)
	}
	sort.Strings(faces)
	maxCount := 0
	for _, face := range faces {
		if s.FaceCounts[face] > maxCount {
			maxCount = s.FaceCounts[face]
			s.MostUsedFace = face
		}
	}

	return s
}

// faceKey drops the prime marker: R and R' count as the same face.
func faceKey(m moves.Move) string {
	n := m.Notation
	if len(n) > 1 && n[len(n)-1] == '\'' {
		return n[:len(n)-1]
	}
	return n
}

func sameRun(ms []moves.Move) bool {
	for _, m := range ms[1:] {
		if m.Notation != ms[0].Notation {
			return false
		}
	}
	return true
}

// Optimize returns an equivalent sequence with adjacent inverse pairs
// removed, four identical moves dropped and three identical moves replaced
// by their inverse.
func Optimize(ms []moves.Move) moves.Sequence {
	var out moves.Sequence
	var push func(m moves.Move)
	push = func(m moves.Move) {
		n := len(out)
		if n > 0 && out[n-1].Notation == m.Inverse().Notation {
			out = out[:n-1]
			return
		}
		if n > 1 && out[n-1].Notation == m.Notation && out[n-2].Notation == m.Notation {
			out = out[:n-2]
			push(m.Inverse())
			return
		}
		out = append(out, m)
	}

	for _, m := range ms {
		push(m)
	}
	return out
}
