package physical

import (
	"fmt"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/schema"
)

// Aggregate delegates grouping and metric computation to the remote engine.
// Only simple aggregations convert: plain grouping without ROLLUP or CUBE
// shapes, and non-distinct calls to functions with a remote metric
// equivalent.
type Aggregate struct {
	id string

	// Input is the node the aggregation reads from.
	Input Node
	// GroupBy are the ordinals of the input columns to group by.
	GroupBy []int
	// Aggregations are the aggregation calls computed per group.
	Aggregations []logical.AggregateCall
	// InputSchema is the row type the ordinals refer to.
	InputSchema schema.Schema
}

var _ Node = (*Aggregate)(nil)

// ID implements the [Node] interface.
// Returns a string that uniquely identifies the node in the plan.
func (a *Aggregate) ID() string {
	if a.id == "" {
		return fmt.Sprintf("%p", a)
	}
	return a.id
}

// Type implements the [Node] interface.
// Returns the type of the node.
func (*Aggregate) Type() NodeType {
	return NodeTypeAggregate
}

// Children implements the [Node] interface.
func (a *Aggregate) Children() []Node {
	return []Node{a.Input}
}

// Accept implements the [Node] interface.
// Dispatches itself to the provided [Visitor] v
func (a *Aggregate) Accept(v Visitor) error {
	return v.VisitAggregate(a)
}

func (*Aggregate) isNode() {}
