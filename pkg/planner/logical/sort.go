package logical

import "github.com/grafana/solrplan/pkg/planner/schema"

// SortOrder defines the direction of a sort key.
type SortOrder uint8

const (
	UNSORTED SortOrder = iota
	ASC
	DESC
)

// String returns the string representation of the [SortOrder]. The result is
// the direction token the remote engine uses in sort specifications.
func (o SortOrder) String() string {
	switch o {
	case UNSORTED:
		return "unsorted"
	case ASC:
		return "asc"
	case DESC:
		return "desc"
	default:
		return "undefined"
	}
}

// SortKey defines a single sort criterion.
type SortKey struct {
	// Expr is the expression to sort by, almost always a column reference.
	Expr Expression
	// Order defines whether to sort in ascending or descending order.
	Order SortOrder
}

// Sort orders the rows of its input by the given keys. Fetch optionally
// limits the number of rows returned.
type Sort struct {
	// Input is the relation to sort.
	Input Node
	// Keys are the sort criteria in significance order.
	Keys []SortKey
	// Fetch is the maximum number of rows to return, or nil for no limit.
	// The planner always places a non-negative integer literal here.
	Fetch Expression
}

var _ Node = (*Sort)(nil)

// Type implements the [Node] interface.
func (*Sort) Type() NodeType {
	return NodeTypeSort
}

// Schema implements the [Node] interface. Sorting affects the order and
// number of rows, not their structure.
func (s *Sort) Schema() schema.Schema {
	return s.Input.Schema()
}

// Children implements the [Node] interface.
func (s *Sort) Children() []Node {
	return []Node{s.Input}
}

func (*Sort) isNode() {}
