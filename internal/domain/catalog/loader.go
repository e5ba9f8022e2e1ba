package catalog

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// catalogFile mirrors the YAML layout of an external catalog file.
type catalogFile struct {
	Archetypes []Archetype `koanf:"archetypes"`
}

// Load reads an archetype catalog from a YAML file. When path is empty
// the compiled-in default catalog is returned. Loaded once at startup;
// the result is read-only.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(DefaultArchetypes())
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var cf catalogFile
	if err := k.UnmarshalWithConf("", &cf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return New(cf.Archetypes)
}
