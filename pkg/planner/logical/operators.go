package logical

import "fmt"

// UnaryOp denotes the kind of operation of a [UnaryExpr].
type UnaryOp int

// Recognized values of [UnaryOp].
const (
	// UnaryOpInvalid indicates an invalid unary operation.
	UnaryOpInvalid UnaryOp = iota

	UnaryOpNot  // Logical NOT operation.
	UnaryOpCast // Type conversion. Transparent for translation purposes.
)

var unaryOpStrings = map[UnaryOp]string{
	UnaryOpInvalid: "invalid",

	UnaryOpNot:  "NOT",
	UnaryOpCast: "CAST",
}

// String returns the string representation of the UnaryOp.
func (op UnaryOp) String() string {
	if s, ok := unaryOpStrings[op]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOp(%d)", op)
}

// BinaryOp denotes the kind of operation of a [BinaryExpr].
type BinaryOp int

// Recognized values of [BinaryOp].
const (
	// BinaryOpInvalid indicates an invalid binary operation.
	BinaryOpInvalid BinaryOp = iota

	BinaryOpEq  // Equality comparison (=).
	BinaryOpNeq // Inequality comparison (<>).
	BinaryOpGt  // Greater than comparison (>).
	BinaryOpGte // Greater than or equal comparison (>=).
	BinaryOpLt  // Less than comparison (<).
	BinaryOpLte // Less than or equal comparison (<=).
	BinaryOpAnd // Logical AND.
	BinaryOpOr  // Logical OR.
)

var binaryOpStrings = map[BinaryOp]string{
	BinaryOpInvalid: "invalid",

	BinaryOpEq:  "EQ",
	BinaryOpNeq: "NEQ",
	BinaryOpGt:  "GT",
	BinaryOpGte: "GTE",
	BinaryOpLt:  "LT",
	BinaryOpLte: "LTE",
	BinaryOpAnd: "AND",
	BinaryOpOr:  "OR",
}

// String returns a human-readable representation of the binary operation.
func (op BinaryOp) String() string {
	if s, ok := binaryOpStrings[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}

// AggregateOp denotes the aggregation function of an [AggregateCall].
type AggregateOp int

// Recognized values of [AggregateOp].
const (
	// AggregateOpInvalid indicates an invalid aggregation.
	AggregateOpInvalid AggregateOp = iota

	AggregateOpCount
	AggregateOpSum
	AggregateOpMin
	AggregateOpMax
	AggregateOpAvg

	// AggregateOpOther marks an aggregation function the remote engine has
	// no equivalent for. Plans containing it never convert.
	AggregateOpOther
)

var aggregateOpStrings = map[AggregateOp]string{
	AggregateOpInvalid: "invalid",

	AggregateOpCount: "count",
	AggregateOpSum:   "sum",
	AggregateOpMin:   "min",
	AggregateOpMax:   "max",
	AggregateOpAvg:   "avg",
	AggregateOpOther: "other",
}

// String returns the string representation of the AggregateOp. The result is
// the function identifier the remote engine uses for its metrics.
func (op AggregateOp) String() string {
	if s, ok := aggregateOpStrings[op]; ok {
		return s
	}
	return fmt.Sprintf("AggregateOp(%d)", op)
}
