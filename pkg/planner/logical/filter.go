package logical

import "github.com/grafana/solrplan/pkg/planner/schema"

// Filter keeps the rows of its input for which the condition evaluates to
// true.
type Filter struct {
	// Input is the relation to filter.
	Input Node
	// Condition is the predicate expression, evaluated against the input
	// row.
	Condition Expression
}

var _ Node = (*Filter)(nil)

// Type implements the [Node] interface.
func (*Filter) Type() NodeType {
	return NodeTypeFilter
}

// Schema implements the [Node] interface. Filtering affects the number of
// rows, not their structure.
func (f *Filter) Schema() schema.Schema {
	return f.Input.Schema()
}

// Children implements the [Node] interface.
func (f *Filter) Children() []Node {
	return []Node{f.Input}
}

func (*Filter) isNode() {}
