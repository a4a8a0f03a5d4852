// Package physical contains the remote-convention side of the translation
// layer: the converted operator nodes, the rules that convert logical
// operators into them, and the implementor that turns a converted plan into
// a query descriptor.
//
// A converted plan is a strict chain of single-input operators ending in a
// [Scan]. Implementing it walks the chain bottom-up, so every operator
// contributes to the descriptor after its input already has.
package physical

import "fmt"

// NodeType represents the type of node in a converted plan.
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

// Node is the common interface for all nodes in a converted plan.
type Node interface {
	// ID returns a string that uniquely identifies the node in the plan.
	ID() string
	// Type returns the type of the node.
	Type() NodeType
	// Children returns the inputs of the node in implement order.
	Children() []Node
	// Accept dispatches itself to the provided [Visitor].
	Accept(Visitor) error

	isNode()
}
