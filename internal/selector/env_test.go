package selector

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestParseRaw(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{"positive", "42", 42, false},
		{"negative", "-7", -7, false},
		{"explicit plus", "+3", 3, false},
		{"whitespace", " 12\n", 12, false},
		{"empty", "", 0, true},
		{"letters", "abc", 0, true},
		{"trailing garbage", "12abc", 0, true},
		{"hex", "0x10", 0, true},
		{"overflow", "99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRaw(tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfigParse)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromEnv(t *testing.T) {
	raw, err := FromEnv(DefaultEnvVar, mapLookup(nil))
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = FromEnv(DefaultEnvVar, mapLookup(map[string]string{DefaultEnvVar: "9"}))
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, int64(9), *raw)

	_, err = FromEnv(DefaultEnvVar, mapLookup(map[string]string{DefaultEnvVar: "nine"}))
	require.ErrorIs(t, err, ErrConfigParse)
	assert.Contains(t, err.Error(), DefaultEnvVar)
}

func TestFromEnv_UsesProcessEnvironment(t *testing.T) {
	t.Setenv("C4MUT_TEST_MUTATION", "-1")

	raw, err := FromEnv("C4MUT_TEST_MUTATION", nil)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, int64(-1), *raw)
}

func TestInitializeFromEnv(t *testing.T) {
	var diag bytes.Buffer
	s := New(exampleCatalog(t), WithDiagnostics(&diag))

	sel, err := s.InitializeFromEnv("MUT", mapLookup(map[string]string{"MUT": "9"}))
	require.NoError(t, err)

	assert.Equal(t, m.MutantID(4), sel.ID)
	assert.Equal(t, "B", sel.Family.Name)
	assert.Contains(t, diag.String(), "MUTATION SELECTED: 4 (= B:0, input=9)")
}

func TestInitializeFromEnv_ParseErrorLeavesSelectorUntouched(t *testing.T) {
	s := New(exampleCatalog(t), WithDiagnostics(io.Discard))

	_, err := s.InitializeFromEnv("MUT", mapLookup(map[string]string{"MUT": "x"}))
	require.ErrorIs(t, err, ErrConfigParse)
	assert.False(t, s.IsEnabled())

	_, err = s.Initialize(ptr(1))
	require.NoError(t, err)
	assert.True(t, s.IsActive(1))
}

func TestInitializeFromEnv_Unset(t *testing.T) {
	s := New(exampleCatalog(t), WithDiagnostics(io.Discard))

	sel, err := s.InitializeFromEnv("MUT", mapLookup(nil))
	require.NoError(t, err)
	assert.False(t, sel.Enabled)
	assert.False(t, s.IsEnabled())
}
