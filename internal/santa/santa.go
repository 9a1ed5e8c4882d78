// Package santa builds and checks Secret Santa giver→receiver pairings.
//
// Generate shuffles the roster with a Fisher–Yates (Durstenfeld) pass and
// links every participant to the next one in the shuffled order, closing
// the circle at the end. The result is a single cycle covering the whole
// roster, so nobody gives to themselves and everybody gives and receives
// exactly once.
package santa

import (
	"errors"
	"fmt"
)

// ErrNotEnoughParticipants is returned by Generate when the roster has fewer than two entries.
// The message is part of the public contract.
var ErrNotEnoughParticipants = errors.New("At least 2 participants are required")

// ErrDuplicateParticipant is returned by Generate when two roster entries share an ID.
var ErrDuplicateParticipant = errors.New("duplicate participant id")

// Participant is the minimal roster entry the engine needs.
type Participant struct {
	ID      string
	GroupID string
}

// Assignment pairs a giver with a receiver inside a group.
type Assignment struct {
	GiverID    string
	ReceiverID string
	GroupID    string
}

// Source yields uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Engine generates assignments from an injected random source.
type Engine struct {
	src Source
}

// New returns an Engine drawing from src. src must be safe for concurrent
// use if the Engine is shared between goroutines.
func New(src Source) *Engine {
	return &Engine{src: src}
}

// Generate returns one assignment per participant forming a single cycle.
// The participants slice is not modified.
func (e *Engine) Generate(participants []Participant) ([]Assignment, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	shuffled := make([]Participant, len(participants))
	copy(shuffled, participants)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := e.src.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	n := len(shuffled)
	out := make([]Assignment, n)
	for k, giver := range shuffled {
		out[k] = Assignment{
			GiverID:    giver.ID,
			ReceiverID: shuffled[(k+1)%n].ID,
			GroupID:    giver.GroupID,
		}
	}
	return out, nil
}

// Generate uses the package default source. See Engine.Generate.
func Generate(participants []Participant) ([]Assignment, error) {
	return defaultEngine.Generate(participants)
}
