package logical

import (
	"slices"

	"github.com/grafana/solrplan/pkg/planner/schema"
)

// AggregateCall is a single aggregation function applied over the grouped
// input rows of an [Aggregate].
type AggregateCall struct {
	// Op is the aggregation function.
	Op AggregateOp
	// Args are the ordinals of the input columns the function is applied to.
	// An empty list means the function applies to whole rows, like count(*).
	Args []int
	// Distinct marks the call as aggregating distinct values only.
	Distinct bool
	// Name is the output column name of the aggregated value.
	Name string
}

// outputType resolves the column type the call evaluates to, given the input
// row type.
func (c AggregateCall) outputType(in schema.Schema) schema.ColumnType {
	switch c.Op {
	case AggregateOpCount:
		return schema.ColumnTypeInt64
	case AggregateOpAvg:
		return schema.ColumnTypeFloat64
	}
	if len(c.Args) > 0 {
		ord := c.Args[0]
		if ord >= 0 && ord < len(in.Columns) {
			return in.Columns[ord].Type
		}
	}
	return schema.ColumnTypeInvalid
}

// Aggregate groups the rows of its input by the given columns and computes
// one aggregated value per group and call.
type Aggregate struct {
	// Input is the relation to aggregate.
	Input Node
	// GroupBy are the ordinals of the input columns to group by.
	GroupBy []int
	// GroupingSets optionally holds multiple grouping column sets, as
	// produced by ROLLUP or CUBE. Empty means plain grouping by GroupBy.
	GroupingSets [][]int
	// Aggregations are the aggregation calls computed per group.
	Aggregations []AggregateCall
}

var _ Node = (*Aggregate)(nil)

// IsSimple reports whether the aggregation uses plain grouping, that is at
// most one grouping set matching the group-by columns. ROLLUP and CUBE
// produce multiple grouping sets and are not simple.
func (a *Aggregate) IsSimple() bool {
	switch len(a.GroupingSets) {
	case 0:
		return true
	case 1:
		return slices.Equal(a.GroupingSets[0], a.GroupBy)
	default:
		return false
	}
}

// Type implements the [Node] interface.
func (*Aggregate) Type() NodeType {
	return NodeTypeAggregate
}

// Schema implements the [Node] interface. The output row type holds the
// group columns in group-by order, followed by one column per aggregation
// call.
func (a *Aggregate) Schema() schema.Schema {
	in := a.Input.Schema()
	cols := make([]schema.ColumnSchema, 0, len(a.GroupBy)+len(a.Aggregations))
	for _, ord := range a.GroupBy {
		if ord >= 0 && ord < len(in.Columns) {
			cols = append(cols, in.Columns[ord])
		}
	}
	for _, call := range a.Aggregations {
		cols = append(cols, schema.ColumnSchema{Name: call.Name, Type: call.outputType(in)})
	}
	return schema.Schema{Columns: cols}
}

// Children implements the [Node] interface.
func (a *Aggregate) Children() []Node {
	return []Node{a.Input}
}

func (*Aggregate) isNode() {}
