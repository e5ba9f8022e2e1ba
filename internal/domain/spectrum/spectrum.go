// Package spectrum positions a non-decisive result between its top two
// archetypes for presentation.
package spectrum

import (
	"github.com/mirall/archetype/internal/domain/match"
)

// DefaultMaxAdjacent is how many next-ranked archetypes are listed as
// alternatives.
const DefaultMaxAdjacent = 2

const midpoint = 0.5

// Adjacent is a nearby alternative in the ranking.
type Adjacent struct {
	ArchetypeID string  `json:"archetype_id"`
	Name        string  `json:"name"`
	Percent     float64 `json:"percent"`
}

// Spectrum is the 1-D position between the primary and runner-up
// archetypes. Position 0 means fully the primary, 0.5 an exact tie; it
// never exceeds 0.5 because the primary is the higher-scoring of the two.
type Spectrum struct {
	PrimaryID  string     `json:"primary_id"`
	RunnerUpID string     `json:"runner_up_id"`
	Position   float64    `json:"position"`
	Adjacent   []Adjacent `json:"adjacent,omitempty"`
}

// Compute derives the spectrum from a ranked candidate list. Decisive
// results carry no spectrum and yield nil. Pure function of the ranking.
func Compute(res match.Result, maxAdjacent int) *Spectrum {
	if res.Decisive {
		return nil
	}
	if maxAdjacent < 0 {
		maxAdjacent = DefaultMaxAdjacent
	}

	top := res.Primary()
	runner := res.RunnerUp()

	pos := midpoint
	if total := top.Percent + runner.Percent; total > 0 {
		pos = runner.Percent / total
	}

	sp := &Spectrum{
		PrimaryID:  top.Archetype.ID,
		RunnerUpID: runner.Archetype.ID,
		Position:   pos,
	}
	for _, c := range res.Candidates[2:] {
		if len(sp.Adjacent) >= maxAdjacent {
			break
		}
		sp.Adjacent = append(sp.Adjacent, Adjacent{
			ArchetypeID: c.Archetype.ID,
			Name:        c.Archetype.Name,
			Percent:     c.Percent,
		})
	}
	return sp
}
