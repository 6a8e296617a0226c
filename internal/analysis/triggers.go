package analysis

import (
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// Trigger is a named move sequence the solver is built from.
type Trigger struct {
	Name     string
	Sequence moves.Sequence
}

// Triggers lists the known sequences, longest first so a greedy scan
// prefers the longer match.
var Triggers = []Trigger{
	{"insert right", moves.InsertRight},
	{"insert left", moves.InsertLeft},
	{"yellow cross", moves.YellowCross},
	{"sexy", moves.Sexy},
	{"left sexy", moves.LeftSexy},
}

// TriggerMatch represents a detected trigger.
type TriggerMatch struct {
	Name       string `json:"name"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

// TriggerReport contains the trigger breakdown of a move sequence.
type TriggerReport struct {
	Counts             map[string]int `json:"counts"`
	Matches            []TriggerMatch `json:"matches"`
	TotalTriggers      int            `json:"total_triggers"`
	ConsecutiveRepeats int            `json:"consecutive_repeats"`
	UnmatchedMoves     int            `json:"unmatched_moves"`
	Spins              int            `json:"spins"`
}

// AnalyzeTriggers scans ms left to right for known triggers.
func AnalyzeTriggers(ms []moves.Move) *TriggerReport {
	report := &TriggerReport{
		Counts:  make(map[string]int),
		Matches: []TriggerMatch{},
	}

	lastMatchEnd := -1
	lastName := ""
	for i := 0; i < len(ms); i++ {
		if ms[i].IsSpin() {
			report.Spins++
			continue
		}

		matched := false
		for _, tr := range Triggers {
			if !matchesAt(ms, i, tr.Sequence) {
				continue
			}
			end := i + len(tr.Sequence) - 1
			report.Matches = append(report.Matches, TriggerMatch{Name: tr.Name, StartIndex: i, EndIndex: end})
			report.Counts[tr.Name]++

			if lastMatchEnd == i-1 && lastName == tr.Name {
				report.ConsecutiveRepeats++
			}
			lastMatchEnd, lastName = end, tr.Name

			i = end // Skip to end of this match
			matched = true
			break
		}
		if !matched {
			report.UnmatchedMoves++
		}
	}

	report.TotalTriggers = len(report.Matches)
	return report
}

// matchesAt checks if ms starting at startIdx matches seq.
func matchesAt(ms []moves.Move, startIdx int, seq moves.Sequence) bool {
	if startIdx+len(seq) > len(ms) {
		return false
	}
	for i, t := range seq {
		if ms[startIdx+i].Notation != t.Notation {
			return false
		}
	}
	return true
}
