package question

import (
	"fmt"

	"github.com/mirall/archetype/internal/domain/trait"
)

// Pick counts per question kind.
const (
	singlePickCount = 1
	dualPickCount   = 2
)

// Bank is the immutable question registry, loaded once at startup and
// never mutated afterwards. Base questions keep their declaration order;
// the fixed strategy walks the first FixedLength of them and the
// remainder serves skip replacement.
type Bank struct {
	questions []Question
	byID      map[int]Question
	byFamily  map[Family][]Question

	// fixedLength is how many base questions the fixed strategy asks.
	fixedLength int
}

// BankOption applies a configuration option to the Bank.
type BankOption func(*Bank)

// WithFixedLength sets how many base questions the fixed strategy uses.
func WithFixedLength(n int) BankOption {
	return func(b *Bank) {
		if n > 0 {
			b.fixedLength = n
		}
	}
}

// NewBank builds and validates a bank from the given questions.
func NewBank(questions []Question, opts ...BankOption) (*Bank, error) {
	b := &Bank{
		questions:   questions,
		byID:        make(map[int]Question, len(questions)),
		byFamily:    make(map[Family][]Question),
		fixedLength: defaultFixedLength,
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		b.byID[q.ID] = q
		b.byFamily[q.Family] = append(b.byFamily[q.Family], q)
	}

	if len(b.byFamily[FamilyBase]) < b.fixedLength {
		return nil, fmt.Errorf("%w: need at least %d base questions, have %d",
			ErrInvalidBank, b.fixedLength, len(b.byFamily[FamilyBase]))
	}
	return b, nil
}

func validateQuestion(q Question) error {
	if q.ID <= 0 {
		return fmt.Errorf("%w: question id must be positive", ErrInvalidBank)
	}
	switch q.Kind {
	case KindSingle, KindDual:
	default:
		return fmt.Errorf("%w: question %d has unknown kind %q", ErrInvalidBank, q.ID, q.Kind)
	}
	switch q.Family {
	case FamilyBase, FamilyWeakSignal, FamilyLowEnergy:
	default:
		return fmt.Errorf("%w: question %d has unknown family %q", ErrInvalidBank, q.ID, q.Family)
	}
	minOptions := singlePickCount + 1
	if q.Kind == KindDual {
		minOptions = dualPickCount
	}
	if len(q.Options) < minOptions {
		return fmt.Errorf("%w: question %d needs at least %d options", ErrInvalidBank, q.ID, minOptions)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if o.Value == "" {
			return fmt.Errorf("%w: question %d has an option without a value", ErrInvalidBank, q.ID)
		}
		if _, dup := seen[o.Value]; dup {
			return fmt.Errorf("%w: question %d repeats option value %q", ErrInvalidBank, q.ID, o.Value)
		}
		seen[o.Value] = struct{}{}
		if !o.Scores.Valid() {
			return fmt.Errorf("%w: question %d option %q must score all six traits", ErrInvalidBank, q.ID, o.Value)
		}
	}
	return nil
}

// Get returns the question with the given id.
func (b *Bank) Get(id int) (Question, error) {
	q, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
	}
	return q, nil
}

// Base returns every base-family question in declaration order.
func (b *Bank) Base() []Question {
	return b.byFamily[FamilyBase]
}

// FixedSequence returns the base questions the fixed strategy asks, in
// order.
func (b *Bank) FixedSequence() []Question {
	return b.byFamily[FamilyBase][:b.fixedLength]
}

// FixedLength returns the number of base questions in the fixed sequence.
func (b *Bank) FixedLength() int {
	return b.fixedLength
}

// Family returns the questions of one family in declaration order.
func (b *Bank) Family(f Family) []Question {
	return b.byFamily[f]
}

// Len returns the total number of questions across all families.
func (b *Bank) Len() int {
	return len(b.questions)
}

// ReplacementPool returns the candidates considered when a question of
// the given family is skipped. For the base family the alternates beyond
// the fixed sequence come first, so skips draw on spare questions before
// reordering the sequence itself.
func (b *Bank) ReplacementPool(f Family) []Question {
	if f != FamilyBase {
		return b.byFamily[f]
	}
	base := b.byFamily[FamilyBase]
	pool := make([]Question, 0, len(base))
	pool = append(pool, base[b.fixedLength:]...)
	pool = append(pool, base[:b.fixedLength]...)
	return pool
}

// BuildAnswer validates picks against the question's option list and
// returns the resulting answer record. Dual-kind questions require two
// distinct picks; both contribute their recorded deltas at full weight.
// An option value outside the question's list is a data error and fails
// fast.
func (b *Bank) BuildAnswer(questionID int, picks ...string) (Answer, error) {
	q, err := b.Get(questionID)
	if err != nil {
		return Answer{}, err
	}

	want := singlePickCount
	if q.Kind == KindDual {
		want = dualPickCount
	}
	if len(picks) != want {
		return Answer{}, fmt.Errorf("%w: question %d expects %d pick(s), got %d",
			ErrIncompleteAnswer, questionID, want, len(picks))
	}
	if q.Kind == KindDual && picks[0] == picks[1] {
		return Answer{}, fmt.Errorf("%w: question %d most-like and second-like picks must differ",
			ErrIncompleteAnswer, questionID)
	}

	scores := trait.NewScores()
	for _, p := range picks {
		opt, ok := q.Option(p)
		if !ok {
			return Answer{}, fmt.Errorf("%w: question %d has no option %q", ErrUnknownOption, questionID, p)
		}
		scores.Add(opt.Scores)
	}

	return Answer{
		QuestionID: questionID,
		Family:     q.Family,
		Picks:      append([]string(nil), picks...),
		Scores:     scores,
	}, nil
}
