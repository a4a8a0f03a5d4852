package physical

import (
	"fmt"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/schema"
)

// Sort delegates row ordering to the remote engine. Its input is converted
// without any ordering requirement of its own, because the remote engine
// returns rows in the requested order already.
type Sort struct {
	id string

	// Input is the node the sort reads from.
	Input Node
	// Keys are the sort criteria in significance order. Key expressions must
	// be column references.
	Keys []logical.SortKey
	// Fetch is the maximum number of rows, or nil for no limit. The planner
	// only ever places non-negative integer literals here.
	Fetch logical.Expression
	// InputSchema is the row type the key ordinals refer to.
	InputSchema schema.Schema
}

var _ Node = (*Sort)(nil)

// ID implements the [Node] interface.
// Returns a string that uniquely identifies the node in the plan.
func (s *Sort) ID() string {
	if s.id == "" {
		return fmt.Sprintf("%p", s)
	}
	return s.id
}

// Type implements the [Node] interface.
// Returns the type of the node.
func (*Sort) Type() NodeType {
	return NodeTypeSort
}

// Children implements the [Node] interface.
func (s *Sort) Children() []Node {
	return []Node{s.Input}
}

// Accept implements the [Node] interface.
// Dispatches itself to the provided [Visitor] v
func (s *Sort) Accept(v Visitor) error {
	return v.VisitSort(s)
}

func (*Sort) isNode() {}
