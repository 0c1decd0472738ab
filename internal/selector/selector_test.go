package selector

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"c4mut.dev/pkg/c4mut/internal/catalog"
	m "c4mut.dev/pkg/c4mut/internal/model"
)

// exampleCatalog is None=0, A at 1..3, B at 4, Count=5.
func exampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New([]catalog.Spec{{Name: "A", Variants: 3}, {Name: "B", Variants: 1}})
	require.NoError(t, err)

	return c
}

func ptr(v int64) *int64 {
	return &v
}

func TestReduce(t *testing.T) {
	tests := []struct {
		raw  int64
		want m.MutantID
	}{
		{0, 0},
		{4, 4},
		{5, 0},
		{9, 4},
		{-1, 4},
		{-5, 0},
		{-6, 4},
		{-9223372036854775808, 2},
		{9223372036854775807, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Reduce(tt.raw, 5), "raw %d", tt.raw)
	}
}

func TestReduce_TotalAndPeriodic(t *testing.T) {
	count := catalog.Atomics().Count()

	for raw := int64(-1000); raw <= 1000; raw += 7 {
		id := Reduce(raw, count)
		require.Less(t, int(id), count)

		for k := int64(-3); k <= 3; k++ {
			assert.Equal(t, id, Reduce(raw+k*int64(count), count), "raw %d k %d", raw, k)
		}
	}
}

func TestSelector_DisabledByDefault(t *testing.T) {
	c := exampleCatalog(t)
	s := New(c, WithDiagnostics(io.Discard))

	assert.False(t, s.IsEnabled())
	assert.Equal(t, Disabled, s.State())

	for id := 0; id < c.Count()+2; id++ {
		assert.False(t, s.IsActive(m.MutantID(id)))
	}
}

func TestSelector_InitializeNilStaysDisabled(t *testing.T) {
	var diag bytes.Buffer
	s := New(exampleCatalog(t), WithDiagnostics(&diag))

	sel, err := s.Initialize(nil)
	require.NoError(t, err)

	assert.False(t, sel.Enabled)
	assert.Equal(t, m.None, sel.ID)
	assert.False(t, s.IsEnabled())
	assert.Empty(t, diag.String())
}

func TestSelector_InitializeExamples(t *testing.T) {
	tests := []struct {
		name       string
		raw        int64
		wantID     m.MutantID
		wantFamily string
		wantOffset int
	}{
		{"direct", 4, 4, "B", 0},
		{"wraps", 9, 4, "B", 0},
		{"negative", -1, 4, "B", 0},
		{"variant", 2, 2, "A", 1},
		{"zero is none", 5, 0, "none", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diag bytes.Buffer
			s := New(exampleCatalog(t), WithDiagnostics(&diag))

			sel, err := s.Initialize(ptr(tt.raw))
			require.NoError(t, err)

			assert.Equal(t, tt.raw, sel.Raw)
			assert.Equal(t, tt.wantID, sel.ID)
			assert.Equal(t, tt.wantFamily, sel.Family.Name)
			assert.Equal(t, tt.wantOffset, sel.Offset)
			assert.Equal(t, tt.wantID, s.Active())
			assert.Equal(t, tt.wantID != m.None, s.IsEnabled())
			assert.Equal(t, tt.wantID != m.None, sel.Enabled)
		})
	}
}

func TestSelector_SelectionLine(t *testing.T) {
	var diag bytes.Buffer
	s := New(exampleCatalog(t), WithDiagnostics(&diag))

	_, err := s.Initialize(ptr(7))
	require.NoError(t, err)

	assert.Equal(t, "MUTATION SELECTED: 2 (= A:1, input=7)\n", diag.String())
}

func TestSelector_InitializeOnce(t *testing.T) {
	s := New(exampleCatalog(t), WithDiagnostics(io.Discard))

	_, err := s.Initialize(ptr(4))
	require.NoError(t, err)

	sel, err := s.Initialize(ptr(1))
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, m.MutantID(4), sel.ID)
	assert.Equal(t, m.MutantID(4), s.Active())

	_, err = s.Initialize(nil)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.True(t, s.IsEnabled())
}

func TestSelector_IsActiveAnnouncesHits(t *testing.T) {
	var diag bytes.Buffer
	s := New(exampleCatalog(t), WithDiagnostics(&diag))

	_, err := s.Initialize(ptr(3))
	require.NoError(t, err)
	diag.Reset()

	assert.False(t, s.IsActive(1))
	assert.False(t, s.IsActive(4))
	assert.Empty(t, diag.String())

	assert.True(t, s.IsActive(3))
	assert.True(t, s.IsActive(3))
	assert.Equal(t, "MUTATION HIT: 3\nMUTATION HIT: 3\n", diag.String())
	assert.Equal(t, Active, s.State())
}

func TestSelector_IsActiveOffset(t *testing.T) {
	c := exampleCatalog(t)
	s := New(c, WithDiagnostics(io.Discard))

	_, err := s.Initialize(ptr(3))
	require.NoError(t, err)

	assert.True(t, s.IsActiveOffset(1, 2))
	assert.False(t, s.IsActiveOffset(1, 1))
	assert.False(t, s.IsActiveOffset(1, -1))
	assert.False(t, s.IsActiveOffset(1, 100000))

	for _, f := range c.Families() {
		assert.Equal(t, s.IsActive(f.Base), s.IsActiveOffset(f.Base, 0), f.Name)
	}
}

func TestSelector_ConcurrentReaders(t *testing.T) {
	c := catalog.Atomics()
	s := New(c, WithDiagnostics(io.Discard))

	_, err := s.Initialize(ptr(int64(catalog.ARMDropDMB + 2)))
	require.NoError(t, err)

	var group errgroup.Group

	for i := 0; i < 16; i++ {
		group.Go(func() error {
			for id := 0; id < c.Count(); id++ {
				want := m.MutantID(id) == catalog.ARMDropDMB+2
				if s.IsActive(m.MutantID(id)) != want {
					return errors.New("unexpected activation result")
				}
			}

			if !s.IsActiveOffset(catalog.ARMDropDMB, 2) {
				return errors.New("offset form disagrees")
			}

			return nil
		})
	}

	require.NoError(t, group.Wait())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestSelector_DiagnosticWriteFailureIsNotFatal(t *testing.T) {
	s := New(exampleCatalog(t), WithDiagnostics(failingWriter{}))

	_, err := s.Initialize(ptr(1))
	require.NoError(t, err)
	assert.True(t, s.IsActive(1))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "disabled", Disabled.String())
	assert.Equal(t, "active", Active.String())
	assert.True(t, strings.HasPrefix(State(9).String(), "unknown"))
}
