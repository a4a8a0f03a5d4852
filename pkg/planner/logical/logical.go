// Package logical contains the relational operator tree the translation
// layer accepts as input. The query frontend builds these trees; the
// translation layer never constructs them itself.
//
// Operators reference columns of their input row by ordinal, not by name.
// The output row type of every operator is derivable through [Node.Schema].
package logical

import (
	"fmt"

	"github.com/grafana/solrplan/pkg/planner/schema"
)

// NodeType represents the type of operator in a logical plan.
type NodeType uint32

const (
	_ NodeType = iota // zero-value is an invalid type

	NodeTypeScan
	NodeTypeFilter
	NodeTypeProject
	NodeTypeSort
	NodeTypeAggregate
)

// String returns the string representation of the [NodeType].
func (t NodeType) String() string {
	switch t {
	case NodeTypeScan:
		return "Scan"
	case NodeTypeFilter:
		return "Filter"
	case NodeTypeProject:
		return "Project"
	case NodeTypeSort:
		return "Sort"
	case NodeTypeAggregate:
		return "Aggregate"
	default:
		panic(fmt.Sprintf("unknown node type %d", t))
	}
}

// Node is the common interface for all operators in a logical plan.
type Node interface {
	// Type returns the type of the node.
	Type() NodeType
	// Schema returns the output row type of the node.
	Schema() schema.Schema
	// Children returns the inputs of the node.
	Children() []Node

	isNode()
}

// TableRef is a reference to a table resolved by the host engine's catalog.
type TableRef interface {
	// TableName returns the name under which the table was resolved.
	TableName() string
	// TableSchema returns the row type of the table.
	TableSchema() schema.Schema
}
