package moves

import (
	"fmt"
	"strings"
)

// Parse parses one quarter-turn token: a face letter (R L U D F B, lower
// case for the double-layer turn) or a spin (x y), optionally followed by a
// prime (' or `).
func Parse(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, fmt.Errorf("%w: empty token", ErrInvalidNotation)
	}

	base, prime := s, false
	if strings.HasSuffix(base, "'") || strings.HasSuffix(base, "`") {
		base, prime = base[:len(base)-1], true
	}
	if len(base) != 1 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	name := base
	if prime {
		name += "'"
	}
	m, err := ByName(name)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return m, nil
}

// ParseSequence parses space-separated notation. A "2" suffix (R2, R2')
// expands to two quarter turns. Unknown tokens fail the whole sequence.
func ParseSequence(s string) (Sequence, error) {
	parts := strings.Fields(s)
	seq := make(Sequence, 0, len(parts))

	for _, part := range parts {
		n := 1
		token := part
		if i := strings.Index(token, "2"); i > 0 {
			token = token[:i] + token[i+1:]
			n = 2
		}

		m, err := Parse(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
		}
		for j := 0; j < n; j++ {
			seq = append(seq, m)
		}
	}

	return seq, nil
}
