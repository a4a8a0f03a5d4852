package physical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grafana/solrplan/pkg/planner/logical"
)

// binaryOpTokens maps binary operations to the tokens the remote query
// parser understands.
var binaryOpTokens = map[logical.BinaryOp]string{
	logical.BinaryOpEq:  "=",
	logical.BinaryOpNeq: "<>",
	logical.BinaryOpGt:  ">",
	logical.BinaryOpGte: ">=",
	logical.BinaryOpLt:  "<",
	logical.BinaryOpLte: "<=",
	logical.BinaryOpAnd: "AND",
	logical.BinaryOpOr:  "OR",
}

// translator renders scalar expressions into remote filter query strings.
// Column ordinals resolve against the field names the translator was
// created with.
type translator struct {
	// fields are the effective input field names, indexed by ordinal.
	fields []string
	// genericCalls enables rendering calls without dedicated translation as
	// "fn(arg, ...)" instead of failing.
	genericCalls bool
}

func newTranslator(fields []string, genericCalls bool) *translator {
	return &translator{fields: fields, genericCalls: genericCalls}
}

// translate renders the given expression. It returns an error wrapping
// [ErrUnsupportedExpression] for expression shapes that have no remote
// equivalent.
func (t *translator) translate(expr logical.Expression) (string, error) {
	switch expr := expr.(type) {
	case *logical.ColumnRef:
		return t.translateColumnRef(expr)
	case *logical.Literal:
		return t.translateLiteral(expr)
	case *logical.UnaryExpr:
		return t.translateUnary(expr)
	case *logical.BinaryExpr:
		return t.translateBinary(expr)
	case *logical.CallExpr:
		return t.translateCall(expr)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedExpression, expr)
	}
}

func (t *translator) translateColumnRef(expr *logical.ColumnRef) (string, error) {
	if expr.Ordinal < 0 || expr.Ordinal >= len(t.fields) {
		return "", fmt.Errorf("%w: column ordinal %d out of range [0, %d)", ErrUnsupportedExpression, expr.Ordinal, len(t.fields))
	}
	return t.fields[expr.Ordinal], nil
}

func (t *translator) translateLiteral(expr *logical.Literal) (string, error) {
	switch v := expr.Value.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case string:
		return "'" + v + "'", nil
	default:
		return "", fmt.Errorf("%w: literal of type %T", ErrUnsupportedExpression, expr.Value)
	}
}

func (t *translator) translateUnary(expr *logical.UnaryExpr) (string, error) {
	switch expr.Op {
	case logical.UnaryOpCast:
		// Casts are transparent; the remote engine operates on the
		// underlying field.
		return t.translate(expr.Value)
	case logical.UnaryOpNot:
		operand, err := t.translate(expr.Value)
		if err != nil {
			return "", err
		}
		switch v := expr.Value.(type) {
		case *logical.BinaryExpr:
			operand = "(" + operand + ")"
		case *logical.UnaryExpr:
			if v.Op == logical.UnaryOpNot {
				operand = "(" + operand + ")"
			}
		}
		return "NOT " + operand, nil
	default:
		return "", fmt.Errorf("%w: unary operation %s", ErrUnsupportedExpression, expr.Op)
	}
}

func (t *translator) translateBinary(expr *logical.BinaryExpr) (string, error) {
	token, ok := binaryOpTokens[expr.Op]
	if !ok {
		return "", fmt.Errorf("%w: binary operation %s", ErrUnsupportedExpression, expr.Op)
	}

	left, err := t.translate(expr.Left)
	if err != nil {
		return "", err
	}
	right, err := t.translate(expr.Right)
	if err != nil {
		return "", err
	}

	// Nested connectives are parenthesized so the rendered query keeps the
	// precedence of the expression tree. Plain comparisons are left bare.
	if expr.Op == logical.BinaryOpAnd || expr.Op == logical.BinaryOpOr {
		if isConnective(expr.Left) {
			left = "(" + left + ")"
		}
		if isConnective(expr.Right) {
			right = "(" + right + ")"
		}
	}
	return left + " " + token + " " + right, nil
}

func (t *translator) translateCall(expr *logical.CallExpr) (string, error) {
	if !t.genericCalls {
		return "", fmt.Errorf("%w: call to %s", ErrUnsupportedExpression, expr.Fn)
	}
	args := make([]string, len(expr.Args))
	for i := range expr.Args {
		arg, err := t.translate(expr.Args[i])
		if err != nil {
			return "", err
		}
		args[i] = arg
	}
	return fmt.Sprintf("%s(%s)", expr.Fn, strings.Join(args, ", ")), nil
}

// isConnective reports whether an expression is a boolean AND or OR.
func isConnective(expr logical.Expression) bool {
	binary, ok := expr.(*logical.BinaryExpr)
	if !ok {
		return false
	}
	return binary.Op == logical.BinaryOpAnd || binary.Op == logical.BinaryOpOr
}
