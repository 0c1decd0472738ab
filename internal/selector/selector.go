// Package selector establishes the single active mutant of a process and
// answers the "is this mutant active" question for instrumented call sites.
package selector

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"c4mut.dev/pkg/c4mut/internal/catalog"
	m "c4mut.dev/pkg/c4mut/internal/model"
)

const (
	// SelectedTag prefixes the line written when a mutant is selected.
	SelectedTag = "MUTATION SELECTED:"
	// HitTag prefixes the line written each time the active mutant is hit.
	HitTag = "MUTATION HIT:"
)

// ErrAlreadyInitialized is returned by a second call to Initialize.
var ErrAlreadyInitialized = errors.New("mutation selector already initialized")

// State is the selector's lifecycle state.
type State int

const (
	// Disabled means no mutant is active.
	Disabled State = iota
	// Active means exactly one mutant is active.
	Active
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Selector holds the process-wide active mutant. It is written once by
// Initialize, before any call site queries it, and read-only afterwards.
type Selector struct {
	catalog *catalog.Catalog
	logger  *slog.Logger

	diagMu sync.Mutex
	diag   io.Writer

	initialized atomic.Bool
	active      atomic.Uint32
}

// Option configures a Selector.
type Option func(*Selector)

// WithDiagnostics sets where selection and hit lines are written.
// The default is os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Selector) {
		s.diag = w
	}
}

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// New creates a disabled Selector over the given catalog.
func New(c *catalog.Catalog, opts ...Option) *Selector {
	s := &Selector{
		catalog: c,
		diag:    os.Stderr,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Catalog returns the catalog the selector resolves ids against.
func (s *Selector) Catalog() *catalog.Catalog {
	return s.catalog
}

// Reduce maps any raw value into [0, count) with a non-negative modulus,
// so raw and raw+k*count always select the same id.
func Reduce(raw int64, count int) m.MutantID {
	c := int64(count)

	return m.MutantID(((raw % c) + c) % c)
}

// Initialize selects the active mutant. A nil raw value keeps mutation
// testing disabled. It may be called only once per Selector.
func (s *Selector) Initialize(raw *int64) (m.Selection, error) {
	if !s.initialized.CompareAndSwap(false, true) {
		return s.Selection(), ErrAlreadyInitialized
	}

	if raw == nil {
		s.logger.Debug("mutation testing disabled")
		return m.Selection{Family: s.catalog.OwnerOf(m.None)}, nil
	}

	id := Reduce(*raw, s.catalog.Count())
	s.active.Store(uint32(id))

	sel := s.Selection()
	sel.Raw = *raw
	sel.Configured = true

	s.logger.Info("mutation selected",
		"raw", sel.Raw,
		"id", sel.ID,
		"family", sel.Family.Name,
		"variant", sel.Offset,
	)
	s.writeDiag("%s %d (= %s:%d, input=%d)\n", SelectedTag, sel.ID, sel.Family.Name, sel.Offset, sel.Raw)

	return sel, nil
}

// Selection describes the active mutant. Raw is not retained and is zero.
func (s *Selector) Selection() m.Selection {
	id := s.Active()
	owner := s.catalog.OwnerOf(id)

	return m.Selection{
		ID:      id,
		Family:  owner,
		Offset:  owner.Offset(id),
		Enabled: id != m.None,
	}
}

// Active returns the active mutant id, or None.
func (s *Selector) Active() m.MutantID {
	return m.MutantID(s.active.Load())
}

// State reports whether a mutant is active.
func (s *Selector) State() State {
	if s.IsEnabled() {
		return Active
	}

	return Disabled
}

// IsEnabled reports whether any mutant is active.
func (s *Selector) IsEnabled() bool {
	return s.active.Load() != uint32(m.None)
}

// IsActive reports whether id is the active mutant. A match is announced on
// the diagnostics stream.
func (s *Selector) IsActive(id m.MutantID) bool {
	if id == m.None || s.active.Load() != uint32(id) {
		return false
	}

	s.writeDiag("%s %d\n", HitTag, id)

	return true
}

// IsActiveOffset is IsActive(base + offset). Offsets leaving the id space
// are never active.
func (s *Selector) IsActiveOffset(base m.MutantID, offset int) bool {
	id := int(base) + offset
	if id <= int(m.None) || id >= s.catalog.Count() {
		return false
	}

	return s.IsActive(m.MutantID(id))
}

func (s *Selector) writeDiag(format string, args ...any) {
	if s.diag == nil {
		return
	}

	s.diagMu.Lock()
	defer s.diagMu.Unlock()

	if _, err := fmt.Fprintf(s.diag, format, args...); err != nil {
		s.logger.Warn("failed to write mutation diagnostic", "error", err)
	}
}
