// Package metadata is the entry point for reading, validating and writing one
// metadata record in any registered format.
//
// A Metadata is built either from raw input (literal content, a file path or
// a DOI to fetch) or from explicit attributes. Validation runs once at
// construction; callers that mutate a record call Validate again.
package metadata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

// Metadata is one record together with the document it was read from.
type Metadata struct {
	record   *hub.Record
	raw      []byte
	from     string
	sandbox  bool
	override hub.State
	registry *format.Registry
	logger   *slog.Logger
}

// New reads input and returns the first record it holds. See Parse.
func New(ctx context.Context, input string, opts ...Option) (*Metadata, error) {
	all, err := Parse(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return all[0], nil
}

// Parse reads input and returns one Metadata per record. Input is literal
// content, a file path ("~" is expanded) or a DOI, which is fetched. A fetch
// miss is not an error: it yields a single not_found record.
func Parse(ctx context.Context, input string, opts ...Option) ([]*Metadata, error) {
	o := newOptions(opts)
	data, filename, err := load(input)
	if err != nil {
		return nil, err
	}

	from := o.from
	sandbox := o.sandbox
	if data == nil {
		sandbox = sandbox || doi.Resolver(input, false) == doi.SandboxResolver
		d := doi.Validate(input)
		if o.fetcher == nil {
			o.fetcher = doi.NewClient()
		}
		o.logger.Debug("fetching doi", "doi", d, "sandbox", sandbox)
		data, err = o.fetcher.Fetch(ctx, d, sandbox)
		if errors.Is(err, doi.ErrNotFound) {
			o.logger.Debug("doi not found", "doi", d)
			return []*Metadata{notFound(d, sandbox, o)}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", d, err)
		}
		if from == "" {
			from = "datacite"
		}
	}

	var parser format.Parser
	if from != "" {
		parser, err = o.registry.GetParser(from)
	} else {
		var f format.Format
		f, err = o.registry.DetectFormat(filename, data)
		if err == nil {
			parser, err = o.registry.GetParser(f.Name())
		}
	}
	if err != nil {
		return nil, err
	}
	o.logger.Debug("reading input", "format", parser.Name(), "file", filename, "bytes", len(data))

	records, err := parser.Parse(bytes.NewReader(data), &format.ParseOptions{
		DOI:        o.doi,
		Sandbox:    sandbox,
		SourceName: filename,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", parser.Name(), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing %s: no records found", parser.Name())
	}

	var errs []string
	if v, ok := parser.(format.Validator); ok {
		errs = v.Validate(data)
	}

	out := make([]*Metadata, 0, len(records))
	for _, record := range records {
		record.Errors = slices.Clone(errs)
		record.State = hub.ResolveState("", len(errs) == 0, o.state)
		out = append(out, &Metadata{
			record:   record,
			raw:      data,
			from:     parser.Name(),
			sandbox:  sandbox,
			override: o.state,
			registry: o.registry,
			logger:   o.logger,
		})
	}
	return out, nil
}

// load returns the content of input. A DOI yields nil data; a path that
// exists yields the file content and its name; anything else is content.
func load(input string) (data []byte, filename string, err error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, "", fmt.Errorf("empty input")
	}
	if !strings.ContainsAny(trimmed, "\n{<") {
		path, err := homedir.Expand(trimmed)
		if err != nil {
			return nil, "", fmt.Errorf("expanding %s: %w", trimmed, err)
		}
		if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, "", fmt.Errorf("reading %s: %w", path, err)
			}
			return data, path, nil
		}
		if doi.Validate(trimmed) != "" {
			return nil, "", nil
		}
	}
	return []byte(input), "", nil
}

// notFound builds the record for a DOI the registration agency does not know.
func notFound(d string, sandbox bool, o *options) *Metadata {
	record := hub.NewRecord()
	record.SetDOI(d, doi.Normalize(d, sandbox))
	record.Agency = "DataCite"
	record.State = hub.StateNotFound
	record.Errors = []string{hub.NotFoundError(d)}

	from := o.from
	if from == "" {
		from = "datacite"
	}
	return &Metadata{
		record:   record,
		from:     from,
		sandbox:  sandbox,
		override: o.state,
		registry: o.registry,
		logger:   o.logger,
	}
}

// FromAttributes wraps a record built by the caller. It is validated by the
// presence of the required fields; state, when given, is kept.
func FromAttributes(record *hub.Record, state hub.State, opts ...Option) *Metadata {
	o := newOptions(opts)
	if state == "" {
		state = o.state
	}
	m := &Metadata{
		record:   record.Clone(),
		sandbox:  o.sandbox,
		override: state,
		registry: o.registry,
		logger:   o.logger,
	}
	m.Validate()
	return m
}

// Validate recomputes errors and state. A record that still has its source
// document is checked against that document's schema; otherwise only the
// required fields are checked. A not_found record keeps its error.
func (m *Metadata) Validate() {
	var errs []string
	switch {
	case m.record.State == hub.StateNotFound:
		errs = []string{hub.NotFoundError(m.record.DOI)}
	case m.raw != nil:
		if p, err := m.registry.GetParser(m.from); err == nil {
			if v, ok := p.(format.Validator); ok {
				errs = v.Validate(m.raw)
			}
		}
	default:
		errs = hub.ValidateAttributes(m.record)
	}
	m.record.Errors = errs
	m.record.State = hub.ResolveState(m.record.State, len(errs) == 0, m.override)
}

// Write serializes the record in the named format. A record the format cannot
// express yields format.ErrUnrepresentable and no output.
func (m *Metadata) Write(to string) ([]byte, error) {
	return Write(to, m)
}

// Write serializes several records into one document of the named format,
// using the registry of the first.
func Write(to string, items ...*Metadata) ([]byte, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("nothing to write")
	}
	s, err := items[0].registry.GetSerializer(to)
	if err != nil {
		return nil, err
	}

	records := make([]*hub.Record, 0, len(items))
	for _, m := range items {
		records = append(records, m.record)
	}

	var buf bytes.Buffer
	if err := s.Serialize(&buf, records, format.NewSerializeOptions()); err != nil {
		if errors.Is(err, format.ErrUnrepresentable) {
			return nil, format.ErrUnrepresentable
		}
		return nil, fmt.Errorf("writing %s: %w", to, err)
	}
	return buf.Bytes(), nil
}

// Record returns a deep copy of the record.
func (m *Metadata) Record() *hub.Record { return m.record.Clone() }

// DOI returns the DOI without resolver prefix, or "".
func (m *Metadata) DOI() string { return m.record.DOI }

// Identifiers returns a copy of the record's identifiers.
func (m *Metadata) Identifiers() []hub.Identifier { return slices.Clone(m.record.Identifiers) }

// Creators returns a copy of the creators. A document with an empty creator
// list yields an empty, non-nil slice.
func (m *Metadata) Creators() []hub.Name { return slices.Clone(m.record.Creators) }

// Titles returns a copy of the titles.
func (m *Metadata) Titles() []hub.Title { return slices.Clone(m.record.Titles) }

func (m *Metadata) Publisher() string { return m.record.Publisher }

func (m *Metadata) PublicationYear() string { return m.record.PublicationYear }

func (m *Metadata) Types() hub.Types { return m.record.Types }

// State returns the lifecycle state.
func (m *Metadata) State() hub.State { return m.record.State }

// Errors returns a copy of the validation messages.
func (m *Metadata) Errors() []string { return slices.Clone(m.record.Errors) }

// SchemaVersion returns the schema namespace the record was read with.
func (m *Metadata) SchemaVersion() string { return m.record.SchemaVersion }

// Agency returns the registration agency.
func (m *Metadata) Agency() string { return m.record.Agency }

// Valid reports whether validation produced no errors.
func (m *Metadata) Valid() bool { return len(m.record.Errors) == 0 }

// From names the format the record was read from, or "" for attributes.
func (m *Metadata) From() string { return m.from }

// Raw returns the source document, or nil once the record has been changed.
func (m *Metadata) Raw() []byte { return m.raw }

// SetTitles replaces the titles. Call Validate afterwards.
func (m *Metadata) SetTitles(titles []hub.Title) {
	m.record.Titles = titles
	m.detach()
}

// SetCreators replaces the creators. Call Validate afterwards.
func (m *Metadata) SetCreators(creators []hub.Name) {
	if creators == nil {
		creators = make([]hub.Name, 0)
	}
	m.record.Creators = creators
	m.detach()
}

// SetDOI replaces the DOI and its identifier entry.
func (m *Metadata) SetDOI(d string) {
	v := doi.Validate(d)
	m.record.SetDOI(v, doi.Normalize(v, m.sandbox))
	m.detach()
}

// SetState declares the lifecycle state. It is kept across Validate unless the
// record is not_found.
func (m *Metadata) SetState(s hub.State) {
	m.override = s
	if m.record.State != hub.StateNotFound {
		m.record.State = s
	}
}

// detach drops the source document so that the next Validate checks the
// record's fields instead of stale input.
func (m *Metadata) detach() {
	if m.raw != nil {
		m.logger.Debug("record changed, dropping source document", "from", m.from)
	}
	m.raw = nil
}
