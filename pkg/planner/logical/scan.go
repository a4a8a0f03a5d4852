package logical

import "github.com/grafana/solrplan/pkg/planner/schema"

// Scan is the leaf of every logical plan. It reads all rows of the
// referenced table.
type Scan struct {
	// Table is the table to read from.
	Table TableRef
}

var _ Node = (*Scan)(nil)

// Type implements the [Node] interface.
func (*Scan) Type() NodeType {
	return NodeTypeScan
}

// Schema implements the [Node] interface. The output row type of a scan is
// the row type of its table.
func (s *Scan) Schema() schema.Schema {
	if s.Table == nil {
		return schema.Schema{}
	}
	return s.Table.TableSchema()
}

// Children implements the [Node] interface. A scan has no inputs.
func (*Scan) Children() []Node {
	return nil
}

func (*Scan) isNode() {}
