package logical

import "github.com/grafana/solrplan/pkg/planner/schema"

// NamedExpression is an expression together with the output column name it
// is projected as.
type NamedExpression struct {
	Name string
	Expr Expression
}

// Project computes one output column per expression. Expressions reference
// the input row by ordinal, so a projection can keep, reorder, and rename
// columns.
type Project struct {
	// Input is the relation to project.
	Input Node
	// Exprs are the projected expressions in output column order.
	Exprs []NamedExpression
}

var _ Node = (*Project)(nil)

// Type implements the [Node] interface.
func (*Project) Type() NodeType {
	return NodeTypeProject
}

// Schema implements the [Node] interface. The output row type has one
// column per projected expression, named by [NamedExpression.Name].
func (p *Project) Schema() schema.Schema {
	in := p.Input.Schema()
	cols := make([]schema.ColumnSchema, 0, len(p.Exprs))
	for _, e := range p.Exprs {
		cols = append(cols, schema.ColumnSchema{Name: e.Name, Type: exprType(in, e.Expr)})
	}
	return schema.Schema{Columns: cols}
}

// Children implements the [Node] interface.
func (p *Project) Children() []Node {
	return []Node{p.Input}
}

func (*Project) isNode() {}

// exprType resolves the column type an expression evaluates to, given the
// input row type. Casts take the type of their operand since the translation
// layer treats them as transparent.
func exprType(in schema.Schema, expr Expression) schema.ColumnType {
	switch expr := expr.(type) {
	case *ColumnRef:
		if expr.Ordinal >= 0 && expr.Ordinal < len(in.Columns) {
			return in.Columns[expr.Ordinal].Type
		}
		return schema.ColumnTypeInvalid
	case *Literal:
		switch expr.Value.(type) {
		case bool:
			return schema.ColumnTypeBool
		case int, int64:
			return schema.ColumnTypeInt64
		case float64:
			return schema.ColumnTypeFloat64
		case string:
			return schema.ColumnTypeString
		}
		return schema.ColumnTypeInvalid
	case *UnaryExpr:
		if expr.Op == UnaryOpCast {
			return exprType(in, expr.Value)
		}
		return schema.ColumnTypeBool
	case *BinaryExpr:
		return schema.ColumnTypeBool
	default:
		return schema.ColumnTypeInvalid
	}
}
