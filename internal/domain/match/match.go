// Package match scores a trait vector against the archetype catalog and
// decides how confident the resulting assignment is.
package match

import (
	"context"
	"sort"

	"github.com/mirall/archetype/internal/domain/catalog"
	"github.com/mirall/archetype/internal/domain/trait"
)

// DefaultDecisiveGap is the default percentage-point lead the top match
// needs over the runner-up to count as decisive. A product-tuning
// constant, overridable via WithDecisiveGap.
const DefaultDecisiveGap = 8.0

const percentScale = 100.0

// Candidate pairs an archetype with its similarity to the user.
type Candidate struct {
	Archetype catalog.Archetype `json:"archetype"`
	// Score is the raw weighted sum over the six traits.
	Score float64 `json:"score"`
	// Percent is Score normalized by the archetype's maximum achievable
	// sum, so values compare across archetypes with different weight
	// tables.
	Percent float64 `json:"percent"`
	Rank    int     `json:"rank"`
}

// Result is a full ranking with the decisiveness verdict. A non-decisive
// result still carries a primary (rank 1): ambiguity is surfaced through
// Decisive and Gap, never by withholding the ranking.
type Result struct {
	Candidates []Candidate `json:"candidates"`
	Decisive   bool        `json:"decisive"`
	// Gap is the percentage-point lead of the top candidate over the
	// runner-up.
	Gap float64 `json:"gap"`
}

// Primary returns the rank-1 candidate.
func (r Result) Primary() Candidate {
	return r.Candidates[0]
}

// RunnerUp returns the rank-2 candidate.
func (r Result) RunnerUp() Candidate {
	return r.Candidates[1]
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithDecisiveGap overrides the decisiveness threshold, in percentage
// points.
func WithDecisiveGap(gap float64) Option {
	return func(m *Matcher) {
		if gap > 0 {
			m.decisiveGap = gap
		}
	}
}

// Matcher ranks trait vectors against a catalog. Stateless apart from
// its configuration; safe for concurrent use.
type Matcher struct {
	decisiveGap float64
}

// New creates a Matcher with default configuration.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		decisiveGap: DefaultDecisiveGap,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DecisiveGap returns the configured decisiveness threshold.
func (m *Matcher) DecisiveGap() float64 {
	return m.decisiveGap
}

// Rank scores the clamped trait vector against every archetype and
// returns candidates sorted by descending percent. Equal scores keep
// catalog declaration order — the documented tie-break policy. Purely a
// function of its inputs; ctx is accepted per project convention.
func (m *Matcher) Rank(ctx context.Context, traits trait.Scores, cat *catalog.Catalog) Result {
	_ = ctx

	clamped := traits.Clamped()
	archetypes := cat.All()
	candidates := make([]Candidate, 0, len(archetypes))
	for _, a := range archetypes {
		var sum float64
		for _, k := range trait.Keys() {
			sum += float64(clamped[k]) * a.Weight(k)
		}
		maxSum := float64(trait.MaxScore) * a.TotalWeight()
		candidates = append(candidates, Candidate{
			Archetype: a,
			Score:     sum,
			Percent:   sum / maxSum * percentScale,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Percent > candidates[j].Percent
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
	}

	gap := candidates[0].Percent - candidates[1].Percent
	return Result{
		Candidates: candidates,
		Decisive:   gap >= m.decisiveGap,
		Gap:        gap,
	}
}

// DifferentiatingTrait names the trait that most separates primary from
// runnerUp, used to explain non-decisive results. Preference order:
// a trait primary values while runnerUp avoids it, then the reverse, then
// the largest absolute weight delta across all tiers. The fallback always
// lands on a concrete trait.
func DifferentiatingTrait(primary, runnerUp catalog.Archetype) trait.Key {
	for _, k := range trait.Keys() {
		if _, p := primary.Primary[k]; p {
			if _, av := runnerUp.Avoid[k]; av {
				return k
			}
		}
	}
	for _, k := range trait.Keys() {
		if _, av := primary.Avoid[k]; av {
			if _, p := runnerUp.Primary[k]; p {
				return k
			}
		}
	}

	best := trait.Keys()[0]
	var bestDelta float64 = -1
	for _, k := range trait.Keys() {
		delta := primary.Weight(k) - runnerUp.Weight(k)
		if delta < 0 {
			delta = -delta
		}
		if delta > bestDelta {
			bestDelta = delta
			best = k
		}
	}
	return best
}
