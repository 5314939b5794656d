package catalog

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/quillsql/mvrewrite/mv"
)

// SchemaFixture is the YAML shape test fixtures use to describe a table's
// columns without constructing mv.Schema by hand in every test.
type SchemaFixture struct {
	Table string `yaml:"table"`
	Columns []string `yaml:"columns"`
}

// ParseSchemaFixtures decodes a YAML document listing tables and their
// column names into mv.Schema values, defaulting every column to
// mv.String since fixtures only need to exercise name-based matching, not
// type-sensitive range algebra.
func ParseSchemaFixtures(data []byte) (map[string]mv.Schema, error) {
	var fixtures []SchemaFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parsing schema fixtures: %w", err)
	}

	out := make(map[string]mv.Schema, len(fixtures))
	for _, f := range fixtures {
		schema := make(mv.Schema, len(f.Columns))
		for i, name := range f.Columns {
			schema[i] = &mv.Column{Name: name, Type: mv.String, Nullable: true}
		}
		out[f.Table] = schema
	}
	return out, nil
}
