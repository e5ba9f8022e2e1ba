package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrInvalidCatalog = errors.New("invalid archetype catalog")
	ErrNotFound       = errors.New("archetype not found")
)
