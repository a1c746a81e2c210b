package metadata

import (
	"context"
	"log/slog"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

// Fetcher retrieves the registered metadata document for a DOI. It returns
// doi.ErrNotFound when the registration agency has no record.
type Fetcher interface {
	Fetch(ctx context.Context, doi string, sandbox bool) ([]byte, error)
}

// Option configures New.
type Option func(*options)

type options struct {
	from     string
	doi      string
	sandbox  bool
	state    hub.State
	fetcher  Fetcher
	registry *format.Registry
	logger   *slog.Logger
}

// WithFrom names the input format instead of detecting it.
func WithFrom(name string) Option {
	return func(o *options) {
		o.from = name
	}
}

// WithDOI overrides the DOI found in the input.
func WithDOI(d string) Option {
	return func(o *options) {
		o.doi = d
	}
}

// WithSandbox resolves DOIs against the DataCite test environment.
func WithSandbox(sandbox bool) Option {
	return func(o *options) {
		o.sandbox = sandbox
	}
}

// WithFetcher sets the collaborator used when the input is a DOI.
func WithFetcher(f Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithRegistry sets the format registry. The default registry holds every
// format whose package has been imported.
func WithRegistry(r *format.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithState declares the lifecycle state, overriding the derived one.
func WithState(s hub.State) Option {
	return func(o *options) {
		o.state = s
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = format.DefaultRegistry
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
