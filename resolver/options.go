package resolver

import (
	"context"

	charmlog "charm.land/log/v2"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/internal/regexcache"
)

// ImportResolver fetches the content an `IMPORT <iri>` directive names.
// The core treats a byte-source and a pre-parsed schema uniformly: both
// are merged into the importing schema the same way.
type ImportResolver interface {
	Resolve(ctx context.Context, iri string) (Source, error)
}

// Source is what an ImportResolver returns for one IRI: either raw bytes
// to be lexed and parsed recursively, or an already-parsed (but not yet
// resolved) schema.
type Source struct {
	Bytes  []byte
	Schema *ast.Schema
}

// RegexEngine compiles a REGEXP facet's pattern and flags into a
// matcher. The core never evaluates regexes itself; this only exists so
// a caller can ask for eager validation of malformed patterns at
// resolution time instead of deferring to first use.
type RegexEngine interface {
	Compile(pattern, flags string) (Regexp, error)
}

// Regexp is the minimal matcher surface RegexEngine implementations
// must provide.
type Regexp interface {
	MatchString(s string) bool
}

// defaultRegexEngine compiles via the standard library regexp package,
// through the process-wide regexcache.Shared cache, translating ShExC's
// {s,m,i,x} flag letters to Go's inline (?flags) group.
type defaultRegexEngine struct{}

func (defaultRegexEngine) Compile(pattern, flags string) (Regexp, error) {
	goFlags := translateFlags(flags)
	source := pattern
	if goFlags != "" {
		source = "(?" + goFlags + ")" + pattern
	}
	re, err := regexcache.Shared.Compile(flags+"\x00"+pattern, source)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// translateFlags maps ShExC's {s,m,i,x} regex flags to the subset Go's
// regexp/syntax understands (i, m, s); 'x' (extended/verbose mode) has no
// Go equivalent and is dropped rather than rejected, since REGEXP
// validation is opt-in and best-effort here.
func translateFlags(flags string) string {
	var out []byte
	for _, r := range flags {
		switch r {
		case 'i', 'm', 's':
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// config collects the options a Resolve call runs with.
type config struct {
	ctx      context.Context
	baseIRI  string
	imports  ImportResolver
	regex    RegexEngine
	failFast bool
	logger   *charmlog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		ctx:    context.Background(),
		regex:  defaultRegexEngine{},
		logger: charmlog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Option configures a Resolve call.
type Option func(*config)

// WithContext makes import fetches cooperatively cancellable through
// ctx; a cancelled context aborts the in-progress import with a
// Cancelled error.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithBaseIRI sets the base IRI in effect before any BASE directive in
// the document, against which the document's own relative IRIREFs (and
// any PREFIX/BASE IRIREFs preceding the first BASE directive) resolve.
func WithBaseIRI(iri string) Option {
	return func(c *config) { c.baseIRI = iri }
}

// WithImportResolver supplies the collaborator that fetches IMPORTed
// schemas. Without one, a schema containing IMPORT directives fails
// with ImportFailed the first time it needs to expand one.
func WithImportResolver(r ImportResolver) Option {
	return func(c *config) { c.imports = r }
}

// WithRegexEngine overrides the default standard-library-backed
// RegexEngine used to eagerly validate REGEXP facets.
func WithRegexEngine(r RegexEngine) Option {
	return func(c *config) { c.regex = r }
}

// FailFast stops at the first semantic error instead of collecting all
// of them into the returned errors.List.
func FailFast() Option {
	return func(c *config) { c.failFast = true }
}

// WithLogger overrides the logger used for resolver warnings (e.g. a
// duplicate prefix alias across an IMPORT graph).
func WithLogger(l *charmlog.Logger) Option {
	return func(c *config) { c.logger = l }
}
