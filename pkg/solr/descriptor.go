package solr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/grafana/dskit/multierror"
)

// FieldMapping maps an output column of a translated plan to the remote
// field that backs it.
type FieldMapping struct {
	// Output is the column name the host engine exposes.
	Output string
	// Remote is the field name requested from the remote engine.
	Remote string
}

// Descriptor is the accumulated description of a translated query. The plan
// implementor produces it, [Assemble] consumes it.
type Descriptor struct {
	// Collection is the remote collection the query targets.
	Collection string
	// Fields are the output-to-remote field mappings in plan order. An empty
	// list means all fields.
	Fields []FieldMapping
	// FilterQueries are the translated filter conditions. Assembly combines
	// them disjunctively.
	FilterQueries []string
	// Sorts are the sort specifications, one "<field> <direction>" entry per
	// sort key.
	Sorts []string
	// Limit is the maximum number of rows, rendered verbatim from the plan.
	// Empty means no limit.
	Limit string
	// Buckets are the remote fields grouped over, in group-by order.
	Buckets []string
	// Metrics are the aggregations computed per bucket, like "sum(price)".
	Metrics []string
}

// Validate checks that the descriptor can be assembled into a query.
func (d Descriptor) Validate() error {
	errs := multierror.New()
	if d.Collection == "" {
		errs.Add(errors.New("descriptor has no collection"))
	}
	for _, f := range d.Fields {
		if f.Output == "" || f.Remote == "" {
			errs.Add(fmt.Errorf("incomplete field mapping %q -> %q", f.Output, f.Remote))
		}
	}
	if d.Limit != "" {
		if _, err := strconv.ParseUint(d.Limit, 10, 64); err != nil {
			errs.Add(fmt.Errorf("limit %q is not a non-negative integer", d.Limit))
		}
	}
	return errs.Err()
}

// Fingerprint returns a hash identifying the descriptor. Descriptors that
// assemble into the same query have the same fingerprint, which makes it
// usable as a cache key for translated queries.
func (d Descriptor) Fingerprint() uint64 {
	h := xxhash.New()

	writeSection := func(values ...string) {
		var buf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(buf[:], uint64(len(values)))
		_, _ = h.Write(buf[:n])
		for _, v := range values {
			n := binary.PutUvarint(buf[:], uint64(len(v)))
			_, _ = h.Write(buf[:n])
			_, _ = h.WriteString(v)
		}
	}

	fields := make([]string, 0, 2*len(d.Fields))
	for _, f := range d.Fields {
		fields = append(fields, f.Output, f.Remote)
	}

	writeSection(d.Collection)
	writeSection(fields...)
	writeSection(d.FilterQueries...)
	writeSection(d.Sorts...)
	writeSection(d.Limit)
	writeSection(d.Buckets...)
	writeSection(d.Metrics...)

	return h.Sum64()
}
