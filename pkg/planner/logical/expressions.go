package logical

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpressionType represents the type of expression in a logical plan.
type ExpressionType uint32

const (
	_ ExpressionType = iota // zero-value is an invalid type

	ExprTypeColumn
	ExprTypeLiteral
	ExprTypeUnary
	ExprTypeBinary
	ExprTypeCall
)

// String returns the string representation of the [ExpressionType].
func (t ExpressionType) String() string {
	switch t {
	case ExprTypeColumn:
		return "ColumnExpression"
	case ExprTypeLiteral:
		return "LiteralExpression"
	case ExprTypeUnary:
		return "UnaryExpression"
	case ExprTypeBinary:
		return "BinaryExpression"
	case ExprTypeCall:
		return "CallExpression"
	default:
		panic(fmt.Sprintf("unknown expression type %d", t))
	}
}

// Expression is the common interface for all scalar expressions in a logical
// plan.
type Expression interface {
	fmt.Stringer
	Type() ExpressionType
	isExpr()
}

// ColumnRef references a column of the input row by ordinal.
type ColumnRef struct {
	Ordinal int
}

func (*ColumnRef) isExpr() {}

// String returns the string representation of the column reference.
func (e *ColumnRef) String() string {
	return fmt.Sprintf("$%d", e.Ordinal)
}

// Type returns the type of the [ColumnRef].
func (*ColumnRef) Type() ExpressionType {
	return ExprTypeColumn
}

// Literal is a constant value in an expression. The value is one of bool,
// int, int64, float64, or string.
type Literal struct {
	Value any
}

// NewLiteral creates a new literal expression from the given value.
func NewLiteral(value any) *Literal {
	return &Literal{Value: value}
}

func (*Literal) isExpr() {}

// String returns the string representation of the literal value. Strings are
// quoted with single quotes, all other values render bare.
func (e *Literal) String() string {
	switch v := e.Value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return "'" + v + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Type returns the type of the [Literal].
func (*Literal) Type() ExpressionType {
	return ExprTypeLiteral
}

// UnaryExpr applies a unary operation on a single expression.
type UnaryExpr struct {
	Op    UnaryOp
	Value Expression
}

func (*UnaryExpr) isExpr() {}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Value)
}

// Type returns the type of the [UnaryExpr].
func (*UnaryExpr) Type() ExpressionType {
	return ExprTypeUnary
}

// BinaryExpr applies a binary operation on two expressions.
type BinaryExpr struct {
	Left, Right Expression
	Op          BinaryOp
}

func (*BinaryExpr) isExpr() {}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Op, e.Left, e.Right)
}

// Type returns the type of the [BinaryExpr].
func (*BinaryExpr) Type() ExpressionType {
	return ExprTypeBinary
}

// CallExpr is a generic function call with any number of arguments. It
// covers the operations that have no dedicated expression variant.
type CallExpr struct {
	Fn   string
	Args []Expression
}

func (*CallExpr) isExpr() {}

func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i := range e.Args {
		args[i] = e.Args[i].String()
	}
	return fmt.Sprintf("%s(%s)", e.Fn, strings.Join(args, ", "))
}

// Type returns the type of the [CallExpr].
func (*CallExpr) Type() ExpressionType {
	return ExprTypeCall
}
