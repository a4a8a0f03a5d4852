package physical

import (
	"fmt"
	"slices"
	"strings"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/solr"
)

// A rule converts one kind of logical operator into its remote counterpart.
type rule interface {
	// matches reports whether the rule can convert the node. A false return
	// is not an error; the operator simply stays local.
	matches(logical.Node) bool
	// convert converts the node. It is only called when matches returned
	// true.
	convert(*converter, logical.Node) (Node, error)
}

// rules are tried in order; the first match wins.
var rules = []rule{
	&filterRule{},
	&projectRule{},
	&sortRule{},
	&aggregateRule{},
}

// Convert converts a logical plan into a remote-convention plan. Every
// operator of the plan must convert; a plan containing an operator no rule
// matches returns an error wrapping [ErrUnsupportedPushdown].
func Convert(root logical.Node) (Node, error) {
	c := &converter{}
	return c.convert(root)
}

// converter drives the rule-based conversion and assigns node identifiers.
type converter struct {
	seq int
}

func (c *converter) convert(node logical.Node) (Node, error) {
	if scan, ok := node.(*logical.Scan); ok {
		return c.convertScan(scan)
	}
	for _, r := range rules {
		if r.matches(node) {
			return r.convert(c, node)
		}
	}
	return nil, fmt.Errorf("%w: no rule matches %s", ErrUnsupportedPushdown, node.Type())
}

// nextID returns a deterministic node identifier, like "filter_2".
func (c *converter) nextID(t NodeType) string {
	c.seq++
	return fmt.Sprintf("%s_%d", strings.ToLower(t.String()), c.seq)
}

// convertScan converts the plan leaf. Scans convert unconditionally, as
// long as their table is backed by a collection.
func (c *converter) convertScan(scan *logical.Scan) (Node, error) {
	if scan.Table == nil {
		return nil, fmt.Errorf("%w: scan without table", ErrInvariantViolation)
	}
	table, ok := scan.Table.(*solr.Table)
	if !ok {
		return nil, fmt.Errorf("%w: table %s is not backed by a collection", ErrUnsupportedPushdown, scan.Table.TableName())
	}
	return &Scan{id: c.nextID(NodeTypeScan), Table: table}, nil
}

// filterRule converts filters. Whether the condition is translatable is
// decided when the plan is implemented, not at conversion time.
type filterRule struct{}

var _ rule = (*filterRule)(nil)

// matches implements rule.
func (*filterRule) matches(node logical.Node) bool {
	_, ok := node.(*logical.Filter)
	return ok
}

// convert implements rule.
func (*filterRule) convert(c *converter, node logical.Node) (Node, error) {
	filter := node.(*logical.Filter)
	if filter.Input == nil {
		return nil, fmt.Errorf("%w: filter without input", ErrInvariantViolation)
	}
	input, err := c.convert(filter.Input)
	if err != nil {
		return nil, err
	}
	return &Filter{
		id:          c.nextID(NodeTypeFilter),
		Input:       input,
		Condition:   filter.Condition,
		InputSchema: filter.Input.Schema(),
	}, nil
}

// projectRule converts projections. Which projection expressions are
// supported is decided when the plan is implemented.
type projectRule struct{}

var _ rule = (*projectRule)(nil)

// matches implements rule.
func (*projectRule) matches(node logical.Node) bool {
	_, ok := node.(*logical.Project)
	return ok
}

// convert implements rule.
func (*projectRule) convert(c *converter, node logical.Node) (Node, error) {
	project := node.(*logical.Project)
	if project.Input == nil {
		return nil, fmt.Errorf("%w: projection without input", ErrInvariantViolation)
	}
	input, err := c.convert(project.Input)
	if err != nil {
		return nil, err
	}
	return &Project{
		id:          c.nextID(NodeTypeProject),
		Input:       input,
		Exprs:       slices.Clone(project.Exprs),
		InputSchema: project.Input.Schema(),
	}, nil
}

// sortRule converts sorts. The input is converted without any ordering
// requirement of its own; the remote engine returns rows in the requested
// order, so the input does not have to.
type sortRule struct{}

var _ rule = (*sortRule)(nil)

// matches implements rule.
func (*sortRule) matches(node logical.Node) bool {
	_, ok := node.(*logical.Sort)
	return ok
}

// convert implements rule.
func (*sortRule) convert(c *converter, node logical.Node) (Node, error) {
	sort := node.(*logical.Sort)
	if sort.Input == nil {
		return nil, fmt.Errorf("%w: sort without input", ErrInvariantViolation)
	}
	input, err := c.convert(sort.Input)
	if err != nil {
		return nil, err
	}
	return &Sort{
		id:          c.nextID(NodeTypeSort),
		Input:       input,
		Keys:        slices.Clone(sort.Keys),
		Fetch:       sort.Fetch,
		InputSchema: sort.Input.Schema(),
	}, nil
}

// aggregateRule converts the aggregations the remote engine can compute:
// plain grouping without ROLLUP or CUBE shapes, and non-distinct calls to
// functions with a remote metric equivalent. Everything else stays local.
type aggregateRule struct{}

var _ rule = (*aggregateRule)(nil)

// matches implements rule.
func (*aggregateRule) matches(node logical.Node) bool {
	agg, ok := node.(*logical.Aggregate)
	if !ok {
		return false
	}
	if !agg.IsSimple() {
		return false
	}
	for _, call := range agg.Aggregations {
		if !supportedAggregate(call) {
			return false
		}
	}
	return true
}

// convert implements rule.
func (*aggregateRule) convert(c *converter, node logical.Node) (Node, error) {
	agg := node.(*logical.Aggregate)
	if agg.Input == nil {
		return nil, fmt.Errorf("%w: aggregation without input", ErrInvariantViolation)
	}
	input, err := c.convert(agg.Input)
	if err != nil {
		return nil, err
	}
	return &Aggregate{
		id:           c.nextID(NodeTypeAggregate),
		Input:        input,
		GroupBy:      slices.Clone(agg.GroupBy),
		Aggregations: slices.Clone(agg.Aggregations),
		InputSchema:  agg.Input.Schema(),
	}, nil
}

// supportedAggregate reports whether the call has a remote metric
// equivalent.
func supportedAggregate(call logical.AggregateCall) bool {
	if call.Distinct {
		return false
	}
	switch call.Op {
	case logical.AggregateOpCount, logical.AggregateOpSum, logical.AggregateOpMin, logical.AggregateOpMax, logical.AggregateOpAvg:
		return true
	default:
		return false
	}
}
