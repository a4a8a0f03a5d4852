package physical

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/schema"
	"github.com/grafana/solrplan/pkg/solr"
)

// Implementor accumulates a query descriptor while walking a converted plan
// bottom-up. Every node contributes its part after its input has been
// visited, so contributions always see the state their inputs left behind.
type Implementor struct {
	// AllowGenericCalls enables the generic "fn(arg, ...)" rendering for
	// calls the translator has no dedicated handling for. The remote engine
	// must be able to parse the generic form.
	AllowGenericCalls bool

	table         *solr.Table
	fields        []solr.FieldMapping
	fieldIndex    map[string]int
	filterQueries []string
	sorts         []string
	limit         string
	buckets       []string
	metrics       []string
}

var _ Visitor = (*Implementor)(nil)

// NewImplementor creates a new, empty implementor.
func NewImplementor() *Implementor {
	return &Implementor{fieldIndex: make(map[string]int)}
}

// Implement builds the query descriptor for the given plan using default
// settings.
func Implement(root Node) (solr.Descriptor, error) {
	return NewImplementor().Implement(root)
}

// Implement walks the given plan and returns the accumulated descriptor.
// The implementor is single-use; implementing a second plan with it mixes
// the descriptors of both.
func (i *Implementor) Implement(root Node) (solr.Descriptor, error) {
	if root == nil {
		return solr.Descriptor{}, fmt.Errorf("%w: plan has no root", ErrInvariantViolation)
	}
	if err := root.Accept(i); err != nil {
		return solr.Descriptor{}, err
	}
	return i.Descriptor(), nil
}

// Descriptor returns a snapshot of the accumulated descriptor.
func (i *Implementor) Descriptor() solr.Descriptor {
	d := solr.Descriptor{
		Fields:        slices.Clone(i.fields),
		FilterQueries: slices.Clone(i.filterQueries),
		Sorts:         slices.Clone(i.sorts),
		Limit:         i.limit,
		Buckets:       slices.Clone(i.buckets),
		Metrics:       slices.Clone(i.metrics),
	}
	if i.table != nil {
		d.Collection = i.table.Collection
	}
	return d
}

// visitChild visits the input of a single-input node. Converted plans are
// strict chains; an input at any ordinal other than 0 violates that
// invariant.
func (i *Implementor) visitChild(ordinal int, input Node) error {
	if ordinal != 0 {
		return fmt.Errorf("%w: input at ordinal %d, converted operators have exactly one input", ErrInvariantViolation, ordinal)
	}
	if input == nil {
		return fmt.Errorf("%w: node without input", ErrInvariantViolation)
	}
	return input.Accept(i)
}

// addFieldMapping records that the output column is backed by the remote
// field. Adding an output a second time overwrites the remote field in
// place and keeps the original position.
func (i *Implementor) addFieldMapping(output, remote string) {
	if idx, ok := i.fieldIndex[output]; ok {
		i.fields[idx].Remote = remote
		return
	}
	i.fieldIndex[output] = len(i.fields)
	i.fields = append(i.fields, solr.FieldMapping{Output: output, Remote: remote})
}

// effectiveFields resolves the uniquified names of the given row type
// through the accumulated field mappings. The result is what column
// ordinals of expressions against that row type translate to: the remote
// field for mapped columns, the plain name for everything else.
func (i *Implementor) effectiveFields(s schema.Schema) []string {
	names := s.FieldNames()
	for idx, name := range names {
		if fi, ok := i.fieldIndex[name]; ok {
			names[idx] = i.fields[fi].Remote
		}
	}
	return names
}

// VisitScan implements the [Visitor] interface. A scan contributes the
// target table.
func (i *Implementor) VisitScan(n *Scan) error {
	if n.Table == nil {
		return fmt.Errorf("%w: scan without table", ErrInvariantViolation)
	}
	i.table = n.Table
	return nil
}

// VisitFilter implements the [Visitor] interface. A filter contributes one
// translated filter query.
func (i *Implementor) VisitFilter(n *Filter) error {
	if err := i.visitChild(0, n.Input); err != nil {
		return err
	}
	if n.Condition == nil {
		return fmt.Errorf("%w: filter without condition", ErrInvariantViolation)
	}

	tr := newTranslator(i.effectiveFields(n.InputSchema), i.AllowGenericCalls)
	query, err := tr.translate(n.Condition)
	if err != nil {
		return fmt.Errorf("translating filter condition: %w", err)
	}
	i.filterQueries = append(i.filterQueries, query)
	return nil
}

// VisitProject implements the [Visitor] interface. A projection contributes
// the output-to-remote field mappings.
func (i *Implementor) VisitProject(n *Project) error {
	if err := i.visitChild(0, n.Input); err != nil {
		return err
	}

	fields := i.effectiveFields(n.InputSchema)

	// Output names are uniquified the same way row type names are, so the
	// mappings stay keyed by unique names.
	outs := make([]schema.ColumnSchema, len(n.Exprs))
	for idx, e := range n.Exprs {
		outs[idx] = schema.ColumnSchema{Name: e.Name}
	}
	names := (schema.Schema{Columns: outs}).FieldNames()

	for idx, e := range n.Exprs {
		remote, err := projectedField(fields, e.Expr)
		if err != nil {
			return fmt.Errorf("projecting %s: %w", names[idx], err)
		}
		i.addFieldMapping(names[idx], remote)
	}
	return nil
}

// projectedField resolves a projection expression to the remote field that
// backs it. Only plain column references and casts of column references can
// be projected remotely; computed expressions must stay local.
func projectedField(fields []string, expr logical.Expression) (string, error) {
	switch expr := expr.(type) {
	case *logical.ColumnRef:
		if expr.Ordinal < 0 || expr.Ordinal >= len(fields) {
			return "", fmt.Errorf("%w: column ordinal %d out of range [0, %d)", ErrUnsupportedExpression, expr.Ordinal, len(fields))
		}
		return fields[expr.Ordinal], nil
	case *logical.UnaryExpr:
		if expr.Op == logical.UnaryOpCast {
			return projectedField(fields, expr.Value)
		}
	}
	return "", fmt.Errorf("%w: projection %s is not a column reference", ErrUnsupportedExpression, expr)
}

// VisitSort implements the [Visitor] interface. A sort contributes the sort
// specifications and, when present, the row limit.
func (i *Implementor) VisitSort(n *Sort) error {
	if err := i.visitChild(0, n.Input); err != nil {
		return err
	}

	fields := i.effectiveFields(n.InputSchema)
	for _, key := range n.Keys {
		ref, ok := key.Expr.(*logical.ColumnRef)
		if !ok {
			return fmt.Errorf("%w: sort key %s is not a column reference", ErrUnsupportedExpression, key.Expr)
		}
		if ref.Ordinal < 0 || ref.Ordinal >= len(fields) {
			return fmt.Errorf("%w: column ordinal %d out of range [0, %d)", ErrUnsupportedExpression, ref.Ordinal, len(fields))
		}
		order := key.Order
		if order == logical.UNSORTED {
			order = logical.ASC
		}
		i.sorts = append(i.sorts, fields[ref.Ordinal]+" "+order.String())
	}

	if n.Fetch != nil {
		limit, err := fetchLimit(n.Fetch)
		if err != nil {
			return err
		}
		i.limit = limit
	}
	return nil
}

// fetchLimit renders the fetch expression of a sort verbatim. The planner
// only ever places non-negative integer literals there; anything else
// indicates a bug further up.
func fetchLimit(expr logical.Expression) (string, error) {
	lit, ok := expr.(*logical.Literal)
	if !ok {
		return "", fmt.Errorf("%w: fetch %s is not a literal", ErrInvariantViolation, expr)
	}
	switch v := lit.Value.(type) {
	case int:
		if v >= 0 {
			return strconv.Itoa(v), nil
		}
	case int64:
		if v >= 0 {
			return strconv.FormatInt(v, 10), nil
		}
	}
	return "", fmt.Errorf("%w: fetch %s is not a non-negative integer", ErrInvariantViolation, lit)
}

// VisitAggregate implements the [Visitor] interface. An aggregation
// contributes the grouping buckets and the metrics computed over them.
func (i *Implementor) VisitAggregate(n *Aggregate) error {
	if err := i.visitChild(0, n.Input); err != nil {
		return err
	}

	fields := i.effectiveFields(n.InputSchema)
	for _, ord := range n.GroupBy {
		if ord < 0 || ord >= len(fields) {
			return fmt.Errorf("%w: group-by ordinal %d out of range [0, %d)", ErrInvariantViolation, ord, len(fields))
		}
		i.buckets = append(i.buckets, fields[ord])
	}
	for _, call := range n.Aggregations {
		metric, err := metricSpec(fields, call)
		if err != nil {
			return err
		}
		i.metrics = append(i.metrics, metric)
	}
	return nil
}

// metricSpec renders an aggregate call as a remote metric, like "count(*)"
// or "sum(price)". Calls the conversion rule does not accept must never
// reach this point.
func metricSpec(fields []string, call logical.AggregateCall) (string, error) {
	if !supportedAggregate(call) {
		return "", fmt.Errorf("%w: aggregation %s has no remote equivalent but reached implementation", ErrInvariantViolation, call.Op)
	}
	if len(call.Args) == 0 {
		if call.Op != logical.AggregateOpCount {
			return "", fmt.Errorf("%w: aggregation %s without arguments", ErrInvariantViolation, call.Op)
		}
		return "count(*)", nil
	}
	ord := call.Args[0]
	if ord < 0 || ord >= len(fields) {
		return "", fmt.Errorf("%w: aggregation ordinal %d out of range [0, %d)", ErrInvariantViolation, ord, len(fields))
	}
	return fmt.Sprintf("%s(%s)", call.Op, fields[ord]), nil
}
