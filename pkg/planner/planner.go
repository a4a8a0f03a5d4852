// Package planner translates logical relational plans into query parameter
// sets for a remote search engine.
//
// Translation runs in two stages. The conversion rules rewrite the logical
// plan into a chain of pushdown operators, and the implementor folds that
// chain bottom-up into a query descriptor, which assembles into the final
// parameter set.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/grafana/solrplan/pkg/planner/logical"
	"github.com/grafana/solrplan/pkg/planner/physical"
	"github.com/grafana/solrplan/pkg/solr"
)

var tracer = otel.Tracer("pkg/planner")

var (
	// ErrNotSupported is returned when a plan uses features the remote
	// engine cannot evaluate. Callers are expected to fall back to local
	// evaluation.
	ErrNotSupported = errors.New("not supported by the remote engine")
	// ErrTranslationFailed is returned when a plan that should translate
	// does not. It indicates a malformed plan or a planner bug, not a
	// feature gap.
	ErrTranslationFailed = errors.New("failed to translate plan")
)

// Planner translates logical plans for tables of a single catalog.
type Planner struct {
	logger  log.Logger
	metrics *metrics
	cfg     Config
	catalog solr.Catalog
}

// New creates a new planner. A nil catalog resolves no tables.
func New(cfg Config, catalog solr.Catalog, logger log.Logger, reg prometheus.Registerer) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		catalog = solr.NewStaticCatalog()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Planner{
		logger:  logger,
		metrics: newMetrics(reg),
		cfg:     cfg,
		catalog: catalog,
	}, nil
}

// Table resolves a table against the catalog of the planner. The returned
// table serves as the scan target of logical plans passed to [Planner.Translate].
func (p *Planner) Table(name string) (*solr.Table, error) {
	return p.catalog.ResolveTable(name)
}

// Result is the outcome of a successful plan translation.
type Result struct {
	// Plan is the converted operator chain, for EXPLAIN surfaces and logs.
	Plan physical.Node
	// Descriptor is the query descriptor accumulated from the plan.
	Descriptor solr.Descriptor
	// Params is the assembled query parameter set.
	Params solr.Params
}

// Translate converts the logical plan rooted at root into the query
// parameter set that evaluates it remotely.
//
// Plans that use features the remote engine cannot evaluate are rejected
// with [ErrNotSupported]. Malformed plans are rejected with
// [ErrTranslationFailed].
func (p *Planner) Translate(ctx context.Context, root logical.Node) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Planner.Translate")
	defer span.End()

	if root == nil {
		return nil, p.translationError(span, fmt.Errorf("%w: plan has no root", physical.ErrInvariantViolation))
	}

	timer := prometheus.NewTimer(p.metrics.convertSeconds)
	converted, err := physical.Convert(root)
	convertDuration := timer.ObserveDuration()
	if err != nil {
		return nil, p.translationError(span, fmt.Errorf("converting plan: %w", err))
	}

	impl := physical.NewImplementor()
	impl.AllowGenericCalls = p.cfg.AllowGenericCalls

	timer = prometheus.NewTimer(p.metrics.implementSeconds)
	desc, err := impl.Implement(converted)
	implementDuration := timer.ObserveDuration()
	if err != nil {
		return nil, p.translationError(span, fmt.Errorf("implementing plan: %w", err))
	}

	params, err := solr.AssembleWithVersionField(desc, p.cfg.VersionField)
	if err != nil {
		return nil, p.translationError(span, fmt.Errorf("assembling query parameters: %w", err))
	}

	p.metrics.translationsTotal.WithLabelValues(statusSuccess).Inc()
	span.SetAttributes(attribute.String("collection", desc.Collection))
	level.Debug(p.logger).Log(
		"msg", "translated plan",
		"collection", desc.Collection,
		"params", params.Encode(),
		"convert_duration", convertDuration,
		"implement_duration", implementDuration,
	)

	return &Result{Plan: converted, Descriptor: desc, Params: params}, nil
}

// translationError classifies err as either a feature gap of the remote
// engine or a translation failure, records it, and returns the classified
// error.
func (p *Planner) translationError(span trace.Span, err error) error {
	status := statusFailure
	if errors.Is(err, physical.ErrUnsupportedPushdown) || errors.Is(err, physical.ErrUnsupportedExpression) {
		status = statusUnsupported
		err = fmt.Errorf("%w: %w", ErrNotSupported, err)
	} else {
		err = fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	p.metrics.translationsTotal.WithLabelValues(status).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level.Warn(p.logger).Log("msg", "plan translation failed", "status", status, "err", err)
	return err
}
