// Package solr holds the query-facing side of the translation layer: table
// and collection metadata, the accumulated query descriptor, and the
// assembly of the final query parameter set.
package solr

import "github.com/grafana/solrplan/pkg/planner/schema"

// Table describes a queryable table backed by a collection of the remote
// engine. It satisfies the table reference interface of the logical plan, so
// scans built against a Table convert without further resolution.
type Table struct {
	// Name is the name under which the table is registered in the catalog.
	Name string
	// Collection is the remote collection queries against this table target.
	Collection string
	// Schema is the row type of the table.
	Schema schema.Schema
}

// NewTable creates a new table backed by the given collection. An empty
// collection name defaults to the table name.
func NewTable(name, collection string, s schema.Schema) *Table {
	if collection == "" {
		collection = name
	}
	return &Table{Name: name, Collection: collection, Schema: s}
}

// TableName implements the table reference interface of the logical plan.
func (t *Table) TableName() string {
	return t.Name
}

// TableSchema implements the table reference interface of the logical plan.
func (t *Table) TableSchema() schema.Schema {
	return t.Schema
}
