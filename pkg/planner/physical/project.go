package physical

import (
	"fmt"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/schema"
)

// Project narrows and renames the fields requested from the remote engine.
// Only plain column references and casts of column references can be
// projected remotely; computed expressions are rejected when the plan is
// implemented.
type Project struct {
	id string

	// Input is the node the projection reads from.
	Input Node
	// Exprs are the projected expressions in output column order.
	Exprs []logical.NamedExpression
	// InputSchema is the row type the expression ordinals refer to.
	InputSchema schema.Schema
}

var _ Node = (*Project)(nil)

// ID implements the [Node] interface.
// Returns a string that uniquely identifies the node in the plan.
func (p *Project) ID() string {
	if p.id == "" {
		return fmt.Sprintf("%p", p)
	}
	return p.id
}

// Type implements the [Node] interface.
// Returns the type of the node.
func (*Project) Type() NodeType {
	return NodeTypeProject
}

// Children implements the [Node] interface.
func (p *Project) Children() []Node {
	return []Node{p.Input}
}

// Accept implements the [Node] interface.
// Dispatches itself to the provided [Visitor] v
func (p *Project) Accept(v Visitor) error {
	return v.VisitProject(p)
}

func (*Project) isNode() {}
