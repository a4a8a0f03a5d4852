package solr

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/grafana/solrplan/pkg/planner/schema"
)

// ErrUnknownTable is returned by catalogs for table names they cannot
// resolve.
var ErrUnknownTable = errors.New("unknown table")

// Catalog resolves table names to the tables backing them.
type Catalog interface {
	// ResolveTable returns the table registered under the given name. The
	// returned error wraps [ErrUnknownTable] if no such table exists.
	ResolveTable(name string) (*Table, error)
}

// StaticCatalog is a fixed, in-memory [Catalog].
type StaticCatalog struct {
	tables map[string]*Table
}

var _ Catalog = (*StaticCatalog)(nil)

// NewStaticCatalog creates a catalog from a fixed set of tables. Tables
// registered under the same name overwrite each other; the last one wins.
func NewStaticCatalog(tables ...*Table) *StaticCatalog {
	m := make(map[string]*Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return &StaticCatalog{tables: m}
}

// ResolveTable implements the [Catalog] interface.
func (c *StaticCatalog) ResolveTable(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return t, nil
}

// catalogFile is the YAML document format understood by [LoadCatalog].
type catalogFile struct {
	Tables []catalogTable `yaml:"tables"`
}

type catalogTable struct {
	Name       string          `yaml:"name"`
	Collection string          `yaml:"collection"`
	Columns    []catalogColumn `yaml:"columns"`
}

type catalogColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadCatalog reads a static catalog from its YAML representation:
//
//	tables:
//	  - name: people
//	    collection: people_v2
//	    columns:
//	      - name: id
//	        type: string
//	      - name: age
//	        type: int64
//
// Column types are the ones accepted by [schema.ParseColumnType]. An omitted
// collection defaults to the table name.
func LoadCatalog(r io.Reader) (*StaticCatalog, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var doc catalogFile
	if err := yaml.UnmarshalStrict(buf, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Tables))
	tables := make([]*Table, 0, len(doc.Tables))
	for _, t := range doc.Tables {
		if t.Name == "" {
			return nil, errors.New("catalog contains a table without a name")
		}
		if _, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("catalog contains table %s more than once", t.Name)
		}
		seen[t.Name] = struct{}{}

		cols := make([]schema.ColumnSchema, 0, len(t.Columns))
		for _, c := range t.Columns {
			typ, err := schema.ParseColumnType(c.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s, column %s: %w", t.Name, c.Name, err)
			}
			cols = append(cols, schema.ColumnSchema{Name: c.Name, Type: typ})
		}
		tables = append(tables, NewTable(t.Name, t.Collection, schema.Schema{Columns: cols}))
	}

	return NewStaticCatalog(tables...), nil
}
