package planner

import (
	"context"
	"flag"
	"testing"

	"github.com/grafana/dskit/flagext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/physical"
	"github.com/grafana/solrplan/pkg/planner/schema"
	"github.com/grafana/solrplan/pkg/solr"
)

func peopleTable() *solr.Table {
	return solr.NewTable("people", "people_collection", schema.Schema{
		Columns: []schema.ColumnSchema{
			{Name: "id", Type: schema.ColumnTypeString},
			{Name: "name", Type: schema.ColumnTypeString},
			{Name: "age", Type: schema.ColumnTypeInt64},
		},
	})
}

func newTestPlanner(t *testing.T, mutate func(*Config)) *Planner {
	t.Helper()

	var cfg Config
	flagext.DefaultValues(&cfg)
	if mutate != nil {
		mutate(&cfg)
	}

	p, err := New(cfg, solr.NewStaticCatalog(peopleTable()), nil, prometheus.NewRegistry())
	require.NoError(t, err)
	return p
}

func TestPlanner_Translate(t *testing.T) {
	scan := func() *logical.Scan {
		return &logical.Scan{Table: peopleTable()}
	}

	tests := []struct {
		name     string
		plan     logical.Node
		expected solr.Params
	}{
		{
			name: "bare scan",
			plan: scan(),
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "*:*",
				"fl":   "*",
				"sort": "_version_ desc",
			},
		},
		{
			name: "filter",
			plan: &logical.Filter{
				Input: scan(),
				Condition: &logical.BinaryExpr{
					Op:    logical.BinaryOpGt,
					Left:  &logical.ColumnRef{Ordinal: 2},
					Right: logical.NewLiteral(int64(30)),
				},
			},
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "age > 30",
				"fl":   "*",
				"sort": "_version_ desc",
			},
		},
		{
			name: "stacked filters combine disjunctively",
			plan: &logical.Filter{
				Input: &logical.Filter{
					Input: scan(),
					Condition: &logical.BinaryExpr{
						Op:    logical.BinaryOpGt,
						Left:  &logical.ColumnRef{Ordinal: 2},
						Right: logical.NewLiteral(int64(30)),
					},
				},
				Condition: &logical.BinaryExpr{
					Op:    logical.BinaryOpEq,
					Left:  &logical.ColumnRef{Ordinal: 1},
					Right: logical.NewLiteral("jane"),
				},
			},
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "age > 30 OR name = 'jane'",
				"fl":   "*",
				"sort": "_version_ desc",
			},
		},
		{
			name: "projection extends the field list by the default sort key",
			plan: &logical.Project{
				Input: scan(),
				Exprs: []logical.NamedExpression{
					{Name: "name", Expr: &logical.ColumnRef{Ordinal: 1}},
				},
			},
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "*:*",
				"fl":   "name,_version_",
				"sort": "_version_ desc",
			},
		},
		{
			name: "projection with sort and fetch",
			plan: &logical.Sort{
				Input: &logical.Project{
					Input: scan(),
					Exprs: []logical.NamedExpression{
						{Name: "name", Expr: &logical.ColumnRef{Ordinal: 1}},
					},
				},
				Keys: []logical.SortKey{
					{Expr: &logical.ColumnRef{Ordinal: 0}, Order: logical.ASC},
				},
				Fetch: logical.NewLiteral(int64(10)),
			},
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "*:*",
				"fl":   "name",
				"sort": "name asc",
				"rows": "10",
			},
		},
		{
			name: "filter above a renaming projection uses remote field names",
			plan: &logical.Filter{
				Input: &logical.Project{
					Input: scan(),
					Exprs: []logical.NamedExpression{
						{Name: "full_name", Expr: &logical.ColumnRef{Ordinal: 1}},
						{Name: "years", Expr: &logical.ColumnRef{Ordinal: 2}},
					},
				},
				Condition: &logical.BinaryExpr{
					Op:    logical.BinaryOpGt,
					Left:  &logical.ColumnRef{Ordinal: 1},
					Right: logical.NewLiteral(int64(30)),
				},
			},
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "age > 30",
				"fl":   "name,age,_version_",
				"sort": "_version_ desc",
			},
		},
		{
			name: "sort descending without fetch",
			plan: &logical.Sort{
				Input: scan(),
				Keys: []logical.SortKey{
					{Expr: &logical.ColumnRef{Ordinal: 2}, Order: logical.DESC},
				},
			},
			expected: solr.Params{
				"q":    "*:*",
				"fq":   "*:*",
				"fl":   "*",
				"sort": "age desc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(t, nil)

			result, err := p.Translate(context.Background(), tt.plan)
			require.NoError(t, err)
			require.Equal(t, tt.expected, result.Params)
			require.Equal(t, "people_collection", result.Descriptor.Collection)
			require.NotNil(t, result.Plan)
		})
	}
}

func TestPlanner_Translate_Aggregation(t *testing.T) {
	p := newTestPlanner(t, nil)

	result, err := p.Translate(context.Background(), &logical.Aggregate{
		Input:   &logical.Scan{Table: peopleTable()},
		GroupBy: []int{1},
		Aggregations: []logical.AggregateCall{
			{Op: logical.AggregateOpCount, Name: "total"},
			{Op: logical.AggregateOpMax, Args: []int{2}, Name: "oldest"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"name"}, result.Descriptor.Buckets)
	require.Equal(t, []string{"count(*)", "max(age)"}, result.Descriptor.Metrics)
	require.Equal(t, solr.Params{
		"q":    "*:*",
		"fq":   "*:*",
		"fl":   "*",
		"sort": "_version_ desc",
	}, result.Params)
}

func TestPlanner_Translate_NotSupported(t *testing.T) {
	scan := func() *logical.Scan {
		return &logical.Scan{Table: peopleTable()}
	}

	tests := []struct {
		name string
		plan logical.Node
		// cause is the expected error underneath [ErrNotSupported].
		cause error
	}{
		{
			name: "aggregation with grouping sets",
			plan: &logical.Aggregate{
				Input:        scan(),
				GroupBy:      []int{1},
				GroupingSets: [][]int{{1}, {}},
				Aggregations: []logical.AggregateCall{
					{Op: logical.AggregateOpCount, Name: "total"},
				},
			},
			cause: physical.ErrUnsupportedPushdown,
		},
		{
			name: "distinct aggregation",
			plan: &logical.Aggregate{
				Input:   scan(),
				GroupBy: []int{1},
				Aggregations: []logical.AggregateCall{
					{Op: logical.AggregateOpCount, Distinct: true, Name: "total"},
				},
			},
			cause: physical.ErrUnsupportedPushdown,
		},
		{
			name: "generic call in filter condition",
			plan: &logical.Filter{
				Input: scan(),
				Condition: &logical.BinaryExpr{
					Op: logical.BinaryOpEq,
					Left: &logical.CallExpr{
						Fn:   "lower",
						Args: []logical.Expression{&logical.ColumnRef{Ordinal: 1}},
					},
					Right: logical.NewLiteral("jane"),
				},
			},
			cause: physical.ErrUnsupportedExpression,
		},
		{
			name:  "scan against an unbacked table",
			plan:  &logical.Scan{Table: unbackedTable{}},
			cause: physical.ErrUnsupportedPushdown,
		},
		{
			name: "projection of a computed expression",
			plan: &logical.Project{
				Input: scan(),
				Exprs: []logical.NamedExpression{
					{Name: "of_age", Expr: &logical.BinaryExpr{
						Op:    logical.BinaryOpGte,
						Left:  &logical.ColumnRef{Ordinal: 2},
						Right: logical.NewLiteral(int64(18)),
					}},
				},
			},
			cause: physical.ErrUnsupportedExpression,
		},
		{
			name: "sort by a computed expression",
			plan: &logical.Sort{
				Input: scan(),
				Keys: []logical.SortKey{
					{Expr: logical.NewLiteral(int64(1)), Order: logical.ASC},
				},
			},
			cause: physical.ErrUnsupportedExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(t, nil)

			_, err := p.Translate(context.Background(), tt.plan)
			require.ErrorIs(t, err, ErrNotSupported)
			require.ErrorIs(t, err, tt.cause)
			require.NotErrorIs(t, err, ErrTranslationFailed)
		})
	}
}

func TestPlanner_Translate_Failed(t *testing.T) {
	tests := []struct {
		name string
		plan logical.Node
	}{
		{
			name: "nil root",
			plan: nil,
		},
		{
			name: "scan without table",
			plan: &logical.Scan{},
		},
		{
			name: "negative fetch",
			plan: &logical.Sort{
				Input: &logical.Scan{Table: peopleTable()},
				Fetch: logical.NewLiteral(int64(-1)),
			},
		},
		{
			name: "fetch is not a literal",
			plan: &logical.Sort{
				Input: &logical.Scan{Table: peopleTable()},
				Fetch: &logical.ColumnRef{Ordinal: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(t, nil)

			_, err := p.Translate(context.Background(), tt.plan)
			require.ErrorIs(t, err, ErrTranslationFailed)
			require.ErrorIs(t, err, physical.ErrInvariantViolation)
			require.NotErrorIs(t, err, ErrNotSupported)
		})
	}
}

func TestPlanner_Translate_GenericCallsAllowed(t *testing.T) {
	p := newTestPlanner(t, func(cfg *Config) {
		cfg.AllowGenericCalls = true
	})

	result, err := p.Translate(context.Background(), &logical.Filter{
		Input: &logical.Scan{Table: peopleTable()},
		Condition: &logical.BinaryExpr{
			Op: logical.BinaryOpEq,
			Left: &logical.CallExpr{
				Fn:   "lower",
				Args: []logical.Expression{&logical.ColumnRef{Ordinal: 1}},
			},
			Right: logical.NewLiteral("jane"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, "lower(name) = 'jane'", result.Params["fq"])
}

func TestPlanner_Translate_CustomVersionField(t *testing.T) {
	p := newTestPlanner(t, func(cfg *Config) {
		cfg.VersionField = "_ts_"
	})

	result, err := p.Translate(context.Background(), &logical.Project{
		Input: &logical.Scan{Table: peopleTable()},
		Exprs: []logical.NamedExpression{
			{Name: "name", Expr: &logical.ColumnRef{Ordinal: 1}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "_ts_ desc", result.Params["sort"])
	require.Equal(t, "name,_ts_", result.Params["fl"])
}

func TestPlanner_Translate_Metrics(t *testing.T) {
	p := newTestPlanner(t, nil)
	ctx := context.Background()

	_, err := p.Translate(ctx, &logical.Scan{Table: peopleTable()})
	require.NoError(t, err)

	_, err = p.Translate(ctx, &logical.Scan{Table: unbackedTable{}})
	require.ErrorIs(t, err, ErrNotSupported)

	_, err = p.Translate(ctx, nil)
	require.ErrorIs(t, err, ErrTranslationFailed)

	require.Equal(t, 1.0, testutil.ToFloat64(p.metrics.translationsTotal.WithLabelValues(statusSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(p.metrics.translationsTotal.WithLabelValues(statusUnsupported)))
	require.Equal(t, 1.0, testutil.ToFloat64(p.metrics.translationsTotal.WithLabelValues(statusFailure)))
}

func TestPlanner_Table(t *testing.T) {
	p := newTestPlanner(t, nil)

	table, err := p.Table("people")
	require.NoError(t, err)
	require.Equal(t, "people_collection", table.Collection)

	_, err = p.Table("nonexistent")
	require.ErrorIs(t, err, solr.ErrUnknownTable)
}

func TestNew(t *testing.T) {
	var cfg Config
	flagext.DefaultValues(&cfg)

	// Everything but the config is optional.
	p, err := New(cfg, nil, nil, nil)
	require.NoError(t, err)

	_, err = p.Table("people")
	require.ErrorIs(t, err, solr.ErrUnknownTable)

	_, err = New(Config{}, nil, nil, nil)
	require.ErrorContains(t, err, "invalid config")
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg Config
		flagext.DefaultValues(&cfg)

		require.Equal(t, solr.DefaultVersionField, cfg.VersionField)
		require.False(t, cfg.AllowGenericCalls)
		require.NoError(t, cfg.Validate())
	})

	t.Run("flags", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		var cfg Config
		cfg.RegisterFlags(fs)

		err := fs.Parse([]string{
			"-solr-planner.version-field=_ts_",
			"-solr-planner.allow-generic-calls=true",
		})
		require.NoError(t, err)
		require.Equal(t, "_ts_", cfg.VersionField)
		require.True(t, cfg.AllowGenericCalls)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := Config{VersionField: ""}
		require.Error(t, cfg.Validate())
	})
}

// unbackedTable satisfies the table reference interface without being backed
// by a collection.
type unbackedTable struct{}

func (unbackedTable) TableName() string          { return "unbacked" }
func (unbackedTable) TableSchema() schema.Schema { return schema.Schema{} }
