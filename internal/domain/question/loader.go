package question

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// bankFile mirrors the YAML layout of an external question bank.
type bankFile struct {
	FixedLength int        `koanf:"fixed_length"`
	Questions   []Question `koanf:"questions"`
}

// LoadBank reads a question bank from a YAML file. When path is empty the
// compiled-in default bank is returned. The bank is configuration data:
// read once at startup, immutable afterwards.
func LoadBank(path string, opts ...BankOption) (*Bank, error) {
	if path == "" {
		return NewBank(DefaultQuestions(), opts...)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	var bf bankFile
	if err := k.UnmarshalWithConf("", &bf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	if bf.FixedLength > 0 {
		opts = append([]BankOption{WithFixedLength(bf.FixedLength)}, opts...)
	}
	return NewBank(bf.Questions, opts...)
}
