package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the format version written by ExportSchema.
const SchemaVersion = 1

// ErrSchemaDrift is returned when a stored schema no longer matches the
// compiled catalog, i.e. stored numeric ids would activate other mutants.
var ErrSchemaDrift = errors.New("stored schema does not match the catalog")

// Schema is the serialized form of a catalog's identifier layout.
type Schema struct {
	Version  int            `yaml:"version"`
	Count    int            `yaml:"count"`
	Families []SchemaFamily `yaml:"families"`
}

// SchemaFamily is one family entry of a Schema.
type SchemaFamily struct {
	Name     string `yaml:"name"`
	Base     int    `yaml:"base"`
	End      int    `yaml:"end"`
	Variants int    `yaml:"variants"`
}

// Schema describes the catalog's current layout.
func (c *Catalog) Schema() Schema {
	families := make([]SchemaFamily, 0, len(c.families))
	for _, f := range c.families {
		families = append(families, SchemaFamily{
			Name:     f.Name,
			Base:     int(f.Base),
			End:      int(f.End()),
			Variants: f.Variants,
		})
	}

	return Schema{Version: SchemaVersion, Count: c.count, Families: families}
}

// ExportSchema writes the catalog layout as YAML.
func (c *Catalog) ExportSchema(w io.Writer) error {
	return encodeSchema(w, c.Schema())
}

// LoadSchema reads a schema previously written by ExportSchema.
func LoadSchema(r io.Reader) (Schema, error) {
	var s Schema

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&s); err != nil {
		return Schema{}, fmt.Errorf("failed to decode schema: %w", err)
	}

	if s.Version != SchemaVersion {
		return Schema{}, fmt.Errorf("unsupported schema version %d (want %d)", s.Version, SchemaVersion)
	}

	return s, nil
}

// CheckSchema compares a stored schema with the catalog. On mismatch the
// returned error wraps ErrSchemaDrift and carries a unified diff.
func (c *Catalog) CheckSchema(stored Schema) error {
	var want, got bytes.Buffer

	if err := encodeSchema(&want, stored); err != nil {
		return err
	}

	if err := c.ExportSchema(&got); err != nil {
		return err
	}

	if bytes.Equal(want.Bytes(), got.Bytes()) {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want.String()),
		B:        difflib.SplitLines(got.String()),
		FromFile: "stored",
		ToFile:   "catalog",
		Context:  2,
	})
	if err != nil {
		return fmt.Errorf("failed to diff schema: %w", err)
	}

	return fmt.Errorf("%w:\n%s", ErrSchemaDrift, diff)
}

func encodeSchema(w io.Writer, s Schema) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	return enc.Close()
}
