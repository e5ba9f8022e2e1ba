package simulate

import (
	"fmt"
	"math/rand"

	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/trait"
	"github.com/mirall/archetype/internal/domain/types"
)

// picker chooses option values for a presented question. Implementations
// are deterministic for a given seed, so a run is reproducible.
type picker interface {
	pick(q types.QuestionView) []string
}

// newPicker builds the named persona. The biased and flat personas
// consult the compiled-in bank for option deltas; the simulator is an
// in-repo tool, so peeking at scoring data is fair game.
func newPicker(persona string, rng *rand.Rand, target trait.Key) (picker, error) {
	bank, err := question.LoadBank("")
	if err != nil {
		return nil, err
	}
	switch persona {
	case PersonaRandom:
		return &randomPicker{rng: rng}, nil
	case PersonaBiased:
		return &biasedPicker{bank: bank, target: target}, nil
	case PersonaFlat:
		return &flatPicker{}, nil
	default:
		return nil, fmt.Errorf("unknown persona %q", persona)
	}
}

// randomPicker picks uniformly.
type randomPicker struct {
	rng *rand.Rand
}

func (p *randomPicker) pick(q types.QuestionView) []string {
	idx := p.rng.Perm(len(q.Options))
	picks := make([]string, 0, q.PickCount)
	for _, i := range idx[:q.PickCount] {
		picks = append(picks, q.Options[i].Value)
	}
	return picks
}

// biasedPicker ranks options by their delta on the target trait.
type biasedPicker struct {
	bank   *question.Bank
	target trait.Key
}

func (p *biasedPicker) pick(q types.QuestionView) []string {
	full, err := p.bank.Get(q.ID)
	if err != nil {
		// Unknown to the compiled-in bank (custom server bank); fall back
		// to the first options in order.
		picks := make([]string, 0, q.PickCount)
		for _, o := range q.Options[:q.PickCount] {
			picks = append(picks, o.Value)
		}
		return picks
	}

	ordered := append([]question.Option(nil), full.Options...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Scores[p.target] > ordered[j-1].Scores[p.target]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	picks := make([]string, 0, q.PickCount)
	for _, o := range ordered[:q.PickCount] {
		picks = append(picks, o.Value)
	}
	return picks
}

// flatPicker alternates option positions so trait sums stay close.
type flatPicker struct {
	turn int
}

func (p *flatPicker) pick(q types.QuestionView) []string {
	picks := make([]string, 0, q.PickCount)
	for i := 0; i < q.PickCount; i++ {
		picks = append(picks, q.Options[(p.turn+i)%len(q.Options)].Value)
	}
	p.turn++
	return picks
}
