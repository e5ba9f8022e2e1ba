// Package trait defines the six-dimensional trait score space the
// assessment engine operates on.
package trait

// Key identifies one of the six personality traits.
type Key string

// The six trait dimensions. Declaration order is the canonical iteration
// order everywhere scores are walked, so results stay deterministic.
const (
	Affinity           Key = "A"
	Openness           Key = "O"
	Conscientiousness  Key = "C"
	EmotionalStability Key = "E"
	Extraversion       Key = "X"
	Positivity         Key = "P"
)

// Normalized score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Keys returns the six trait keys in canonical declaration order.
func Keys() []Key {
	return []Key{Affinity, Openness, Conscientiousness, EmotionalStability, Extraversion, Positivity}
}

// Scores maps every trait key to a value. Raw accumulation values are
// unbounded; only Clamped output is fed to matching and presentation.
type Scores map[Key]int

// NewScores returns a zero-valued vector carrying all six keys.
func NewScores() Scores {
	s := make(Scores, len(Keys()))
	for _, k := range Keys() {
		s[k] = 0
	}
	return s
}

// Clone returns an independent copy with all six keys present.
func (s Scores) Clone() Scores {
	out := NewScores()
	for _, k := range Keys() {
		out[k] = s[k]
	}
	return out
}

// Add folds other into s and returns s for chaining.
func (s Scores) Add(other Scores) Scores {
	for _, k := range Keys() {
		s[k] += other[k]
	}
	return s
}

// AddScaled folds other into s with each delta multiplied by factor.
// Results round toward zero, matching integer trait arithmetic.
func (s Scores) AddScaled(other Scores, factor float64) Scores {
	for _, k := range Keys() {
		s[k] += int(float64(other[k]) * factor)
	}
	return s
}

// Clamped returns a copy with every value bounded to [MinScore, MaxScore].
// Raw sums may exceed the range; clamping happens exactly once, at the
// boundary to matching and display.
func (s Scores) Clamped() Scores {
	out := NewScores()
	for _, k := range Keys() {
		v := s[k]
		if v < MinScore {
			v = MinScore
		}
		if v > MaxScore {
			v = MaxScore
		}
		out[k] = v
	}
	return out
}

// Equal reports whether both vectors hold identical values on all six keys.
func (s Scores) Equal(other Scores) bool {
	for _, k := range Keys() {
		if s[k] != other[k] {
			return false
		}
	}
	return true
}

// IsZero reports whether every trait value is zero.
func (s Scores) IsZero() bool {
	for _, k := range Keys() {
		if s[k] != 0 {
			return false
		}
	}
	return true
}

// Valid reports whether the vector carries exactly the six canonical keys.
func (s Scores) Valid() bool {
	if len(s) != len(Keys()) {
		return false
	}
	for _, k := range Keys() {
		if _, ok := s[k]; !ok {
			return false
		}
	}
	return true
}
