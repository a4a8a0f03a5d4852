package physical

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/grafana/solrplan/pkg/planner/logical"
)

// PrintAsTree converts a converted plan into a human-readable tree
// representation, one line per node. It is used for EXPLAIN surfaces and
// debug logging.
func PrintAsTree(root Node) string {
	return asTree(root, nil).String()
}

func asTree(node Node, root treeprint.Tree) treeprint.Tree {
	txt := describe(node)

	var branch treeprint.Tree
	if root == nil {
		branch = treeprint.NewWithRoot(txt)
	} else {
		branch = root.AddBranch(txt)
	}

	for _, child := range node.Children() {
		asTree(child, branch)
	}
	return branch
}

// describe renders a single node with its properties.
func describe(node Node) string {
	switch node := node.(type) {
	case *Scan:
		if node.Table == nil {
			return "Scan"
		}
		return fmt.Sprintf("Scan collection=%s", node.Table.Collection)
	case *Filter:
		return fmt.Sprintf("Filter condition=%s", node.Condition)
	case *Project:
		exprs := make([]string, len(node.Exprs))
		for i, e := range node.Exprs {
			exprs[i] = fmt.Sprintf("%s=%s", e.Name, e.Expr)
		}
		return fmt.Sprintf("Project exprs=(%s)", strings.Join(exprs, ", "))
	case *Sort:
		keys := make([]string, len(node.Keys))
		for i, k := range node.Keys {
			keys[i] = fmt.Sprintf("%s %s", k.Expr, k.Order)
		}
		if node.Fetch != nil {
			return fmt.Sprintf("Sort keys=(%s) fetch=%s", strings.Join(keys, ", "), node.Fetch)
		}
		return fmt.Sprintf("Sort keys=(%s)", strings.Join(keys, ", "))
	case *Aggregate:
		groups := make([]string, len(node.GroupBy))
		for i, ord := range node.GroupBy {
			groups[i] = fmt.Sprintf("$%d", ord)
		}
		calls := make([]string, len(node.Aggregations))
		for i, call := range node.Aggregations {
			calls[i] = describeCall(call)
		}
		return fmt.Sprintf("Aggregate groups=(%s) calls=(%s)", strings.Join(groups, ", "), strings.Join(calls, ", "))
	default:
		return node.Type().String()
	}
}

func describeCall(call logical.AggregateCall) string {
	args := make([]string, len(call.Args))
	for i, ord := range call.Args {
		args[i] = fmt.Sprintf("$%d", ord)
	}
	if len(args) == 0 {
		args = []string{"*"}
	}
	return fmt.Sprintf("%s=%s(%s)", call.Name, call.Op, strings.Join(args, ", "))
}
