package catalog

import "github.com/mirall/archetype/internal/domain/trait"

// DefaultArchetypes returns the compiled-in catalog of eight archetypes.
// Declaration order doubles as the tie-break order for equal scores.
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{
			ID:      "spark",
			Name:    "The Spark",
			Tagline: "Walks in and the room changes temperature.",
			Primary: map[trait.Key]float64{
				trait.Extraversion: 1.8,
				trait.Positivity:   1.6,
			},
			Secondary: map[trait.Key]float64{
				trait.Openness: 1.2,
			},
			Avoid: map[trait.Key]float64{
				trait.Conscientiousness: 0.6,
			},
		},
		{
			ID:      "connector",
			Name:    "The Connector",
			Tagline: "Knows everyone, and everyone's better for it.",
			Primary: map[trait.Key]float64{
				trait.Affinity: 1.8,
			},
			Secondary: map[trait.Key]float64{
				trait.Extraversion: 1.3,
				trait.Positivity:   1.2,
			},
			Avoid: map[trait.Key]float64{
				trait.EmotionalStability: 0.7,
			},
		},
		{
			ID:      "pathfinder",
			Name:    "The Pathfinder",
			Tagline: "The unplanned detour is the plan.",
			Primary: map[trait.Key]float64{
				trait.Openness: 1.8,
			},
			Secondary: map[trait.Key]float64{
				trait.Extraversion: 1.2,
			},
			Avoid: map[trait.Key]float64{
				trait.Conscientiousness: 0.5,
			},
		},
		{
			ID:      "anchor",
			Name:    "The Anchor",
			Tagline: "The reason the plan survived contact with reality.",
			Primary: map[trait.Key]float64{
				trait.Conscientiousness: 1.8,
			},
			Secondary: map[trait.Key]float64{
				trait.EmotionalStability: 1.3,
			},
			Avoid: map[trait.Key]float64{
				trait.Openness: 0.6,
			},
		},
		{
			ID:      "harmonizer",
			Name:    "The Harmonizer",
			Tagline: "Feels the room, mends the seams.",
			Primary: map[trait.Key]float64{
				trait.Affinity:           1.6,
				trait.EmotionalStability: 1.6,
			},
			Secondary: map[trait.Key]float64{
				trait.Positivity: 1.2,
			},
			Avoid: map[trait.Key]float64{
				trait.Extraversion: 0.7,
			},
		},
		{
			ID:      "sage",
			Name:    "The Sage",
			Tagline: "Says little, misses nothing.",
			Primary: map[trait.Key]float64{
				trait.Openness: 1.7,
			},
			Secondary: map[trait.Key]float64{
				trait.Conscientiousness:  1.2,
				trait.EmotionalStability: 1.3,
			},
			Avoid: map[trait.Key]float64{
				trait.Extraversion: 0.5,
			},
			LowEnergy: true,
		},
		{
			ID:      "stillwater",
			Name:    "The Stillwater",
			Tagline: "Calm that's contagious.",
			Primary: map[trait.Key]float64{
				trait.EmotionalStability: 1.8,
			},
			Secondary: map[trait.Key]float64{
				trait.Conscientiousness: 1.2,
			},
			Avoid: map[trait.Key]float64{
				trait.Extraversion: 0.4,
			},
			LowEnergy: true,
		},
		{
			ID:      "sunbeam",
			Name:    "The Sunbeam",
			Tagline: "Finds the bright side before anyone knew it was lost.",
			Primary: map[trait.Key]float64{
				trait.Positivity: 1.8,
			},
			Secondary: map[trait.Key]float64{
				trait.Affinity:     1.2,
				trait.Extraversion: 1.2,
			},
			Avoid: map[trait.Key]float64{
				trait.Conscientiousness: 0.7,
			},
		},
	}
}
