package solr

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
)

// Parameter names of the remote query interface.
const (
	ParamQuery       = "q"
	ParamFilterQuery = "fq"
	ParamFieldList   = "fl"
	ParamSort        = "sort"
	ParamRows        = "rows"
)

// DefaultVersionField is the internal field every document of the remote
// engine carries. It backs the default sort of queries that do not order
// their result.
const DefaultVersionField = "_version_"

// matchAllQuery selects every document of a collection.
const matchAllQuery = "*:*"

// Params is an assembled query parameter set.
type Params map[string]string

// Encode returns the parameters as "key=value" pairs joined by "&", sorted
// by key. Values are not escaped; the result is meant for logs and tests,
// not for the wire.
func (p Params) Encode() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+p[k])
	}
	return strings.Join(pairs, "&")
}

// Values returns a copy of the parameters as [url.Values] for callers that
// build requests from them.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values
}

// Assemble builds the final query parameter set from a descriptor using
// [DefaultVersionField] for the default sort.
func Assemble(d Descriptor) (Params, error) {
	return AssembleWithVersionField(d, DefaultVersionField)
}

// AssembleWithVersionField builds the final query parameter set from a
// descriptor:
//
//   - The main query is always the match-all query; filtering happens
//     exclusively through filter queries.
//   - Without filter queries, the filter parameter is the match-all query.
//     Multiple filter queries are combined disjunctively.
//   - Without field mappings, all fields are requested. With mappings, the
//     remote field names are requested in mapping order.
//   - Without sort keys, the result is sorted by the version field,
//     descending, and an explicit field list is extended by the version
//     field so the sort key is part of the response.
//   - A non-empty limit is passed through verbatim.
func AssembleWithVersionField(d Descriptor, versionField string) (Params, error) {
	if versionField == "" {
		versionField = DefaultVersionField
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("assembling query: %w", err)
	}

	params := Params{ParamQuery: matchAllQuery}

	fields := make([]string, 0, len(d.Fields)+1)
	for _, f := range d.Fields {
		fields = append(fields, f.Remote)
	}

	if len(d.FilterQueries) == 0 {
		params[ParamFilterQuery] = matchAllQuery
	} else {
		params[ParamFilterQuery] = strings.Join(d.FilterQueries, " OR ")
	}

	if len(d.Sorts) == 0 {
		params[ParamSort] = versionField + " desc"
		if len(fields) > 0 && !slices.Contains(fields, versionField) {
			fields = append(fields, versionField)
		}
	} else {
		params[ParamSort] = strings.Join(d.Sorts, ",")
	}

	if len(fields) == 0 {
		params[ParamFieldList] = "*"
	} else {
		params[ParamFieldList] = strings.Join(fields, ",")
	}

	if d.Limit != "" {
		params[ParamRows] = d.Limit
	}

	return params, nil
}
