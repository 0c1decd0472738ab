package selector

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

// DefaultEnvVar is the environment variable read when the embedder does not
// choose another name.
const DefaultEnvVar = "C4_MUTATION"

// ErrConfigParse is returned when the configured value is not a base-10
// integer. It is never swallowed: a broken sweep must fail loudly.
var ErrConfigParse = errors.New("invalid mutation configuration value")

// LookupFunc returns the value of a configuration variable and whether it
// is set. os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

// ParseRaw parses a base-10 signed integer, ignoring surrounding whitespace.
func ParseRaw(value string) (int64, error) {
	raw, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrConfigParse, value, err)
	}

	return raw, nil
}

// FromEnv reads the raw mutation value named name. An unset variable
// yields nil.
func FromEnv(name string, lookup LookupFunc) (*int64, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	value, ok := lookup(name)
	if !ok {
		return nil, nil
	}

	raw, err := ParseRaw(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &raw, nil
}

// InitializeFromEnv initializes the selector from the variable name.
// A parse error leaves the selector uninitialized.
func (s *Selector) InitializeFromEnv(name string, lookup LookupFunc) (m.Selection, error) {
	raw, err := FromEnv(name, lookup)
	if err != nil {
		return m.Selection{}, err
	}

	return s.Initialize(raw)
}
