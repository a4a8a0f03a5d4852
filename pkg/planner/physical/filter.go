package physical

import (
	"fmt"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/schema"
)

// Filter narrows the documents of its input with a translated filter query.
// The condition is kept in its logical form; it is translated when the plan
// is implemented, once the effective input fields are known.
type Filter struct {
	id string

	// Input is the node the filter reads from.
	Input Node
	// Condition is the predicate to translate into a filter query.
	Condition logical.Expression
	// InputSchema is the row type the condition's column ordinals refer to.
	InputSchema schema.Schema
}

var _ Node = (*Filter)(nil)

// ID implements the [Node] interface.
// Returns a string that uniquely identifies the node in the plan.
func (f *Filter) ID() string {
	if f.id == "" {
		return fmt.Sprintf("%p", f)
	}
	return f.id
}

// Type implements the [Node] interface.
// Returns the type of the node.
func (*Filter) Type() NodeType {
	return NodeTypeFilter
}

// Children implements the [Node] interface.
func (f *Filter) Children() []Node {
	return []Node{f.Input}
}

// Accept implements the [Node] interface.
// Dispatches itself to the provided [Visitor] v
func (f *Filter) Accept(v Visitor) error {
	return v.VisitFilter(f)
}

func (*Filter) isNode() {}
