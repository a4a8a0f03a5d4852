package physical

import (
	"fmt"

	"github.com/grafana/solrplan/pkg/solr"
)

// Scan reads documents from the collection backing a table. It is the leaf
// of every converted plan.
type Scan struct {
	id string

	// Table is the resolved table the scan reads from.
	Table *solr.Table
}

var _ Node = (*Scan)(nil)

// ID implements the [Node] interface.
// Returns a string that uniquely identifies the node in the plan.
func (s *Scan) ID() string {
	if s.id == "" {
		return fmt.Sprintf("%p", s)
	}
	return s.id
}

// Type implements the [Node] interface.
// Returns the type of the node.
func (*Scan) Type() NodeType {
	return NodeTypeScan
}

// Children implements the [Node] interface. A scan has no inputs.
func (*Scan) Children() []Node {
	return nil
}

// Accept implements the [Node] interface.
// Dispatches itself to the provided [Visitor] v
func (s *Scan) Accept(v Visitor) error {
	return v.VisitScan(s)
}

func (*Scan) isNode() {}
