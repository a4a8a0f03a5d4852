package planner

import (
	"errors"
	"flag"

	"github.com/grafana/dskit/multierror"

	"github.com/grafana/solrplan/pkg/solr"
)

// Config holds the planner options.
type Config struct {
	// VersionField is the internal field used as the default sort key when a
	// plan does not order its result.
	VersionField string `yaml:"version_field"`
	// AllowGenericCalls renders unrecognized function calls verbatim into
	// filter queries instead of rejecting the plan.
	AllowGenericCalls bool `yaml:"allow_generic_calls"`
}

// RegisterFlags registers the flags of the planner with the default prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("solr-planner.", f)
}

// RegisterFlagsWithPrefix registers the flags of the planner, prepending the
// given prefix to all flag names.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.VersionField, prefix+"version-field", solr.DefaultVersionField, "Field used as the default sort key when a query does not sort explicitly.")
	f.BoolVar(&cfg.AllowGenericCalls, prefix+"allow-generic-calls", false, "Render unrecognized function calls verbatim instead of rejecting the query.")
}

// Validate validates the config.
func (cfg *Config) Validate() error {
	var errs multierror.MultiError
	if cfg.VersionField == "" {
		errs.Add(errors.New("version field must not be empty"))
	}
	return errs.Err()
}
