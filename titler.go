package proctitle

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/mrzor/proctitle/internal/config"
	"github.com/mrzor/proctitle/internal/procmeta"
	"github.com/mrzor/proctitle/internal/titleexpr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Titler builds titles from a command line and applies them.
type Titler struct {
	setter   Setter
	exeLink  string
	format   *titleexpr.Program
	tracer   trace.Tracer
	logger   *log.Logger
	debug    bool
	disabled bool
}

// Option configures a Titler.
type Option func(*Titler)

// WithSetter overrides the platform setter.
func WithSetter(s Setter) Option {
	return func(t *Titler) { t.setter = s }
}

// WithExeLink sets the symlink resolved to replace argv[0]. An empty link
// disables the replacement.
func WithExeLink(link string) Option {
	return func(t *Titler) { t.exeLink = link }
}

// WithFormat sets an expression that rewrites the built title.
func WithFormat(p *titleexpr.Program) Option {
	return func(t *Titler) { t.format = p }
}

// WithTracer records a span for every title change.
func WithTracer(tracer trace.Tracer) Option {
	return func(t *Titler) { t.tracer = tracer }
}

// WithLogger sets the destination for debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Titler) { t.logger = l }
}

// WithDebug logs why a title fell back to a less informative form.
func WithDebug(debug bool) Option {
	return func(t *Titler) { t.debug = debug }
}

// WithDisabled turns SetFromCommandLine into a no-op.
func WithDisabled(disabled bool) Option {
	return func(t *Titler) { t.disabled = disabled }
}

// New creates a Titler using the platform setter and executable link.
func New(opts ...Option) *Titler {
	t := &Titler{
		setter:  Platform(),
		exeLink: config.DefaultExeLink(),
		tracer:  noop.NewTracerProvider().Tracer("proctitle"),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.setter == nil {
		t.setter = Platform()
	}
	return t
}

// NewFromConfig creates a Titler from environment configuration. Extra
// options are applied after the configuration.
func NewFromConfig(cfg *config.TitleConfig, opts ...Option) (*Titler, error) {
	format, err := titleexpr.Compile(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("PROCTITLE_FORMAT: %w", err)
	}

	base := []Option{
		WithExeLink(cfg.ExeLink),
		WithFormat(format),
		WithDisabled(cfg.Disabled),
		WithDebug(cfg.Debug),
	}
	if cfg.Debug {
		base = append(base, WithLogger(log.Default()))
	}
	return New(append(base, opts...)...), nil
}

// Setter returns the setter titles are applied through.
func (t *Titler) Setter() Setter {
	return t.setter
}

func (t *Titler) debugf(format string, args ...interface{}) {
	if t.debug {
		t.logger.Printf("proctitle: "+format, args...)
	}
}

// Build derives the title for args without applying it.
func (t *Titler) Build(args []string) Title {
	exe, ok := ResolveExecutable(t.exeLink)
	if !ok && t.exeLink != "" {
		t.debugf("cannot resolve %s, keeping command line only", t.exeLink)
	}

	title := BuildTitle(args, exe)
	if t.format == nil {
		return title
	}

	text, err := t.format.Eval(titleexpr.Env{
		Args:    args,
		Exe:     title.Program,
		Title:   title.Text,
		Environ: procmeta.ParseEnviron(os.Environ()),
		Pid:     os.Getpid(),
	})
	if err != nil {
		t.debugf("%v, using %q", err, title.Text)
		return title
	}
	title.Text = text
	return title
}

// SetFromCommandLine builds a title from args and applies it, along with
// the short name where the platform has one. args is normally os.Args and
// is handed to the setter's Init first; setters only capture the real
// process arguments, so other slices set a title only when Init(os.Args)
// was called earlier. The applied title is returned for
// callers that want to log it; a disabled Titler returns the zero Title.
func (t *Titler) SetFromCommandLine(ctx context.Context, args []string) Title {
	if t.disabled {
		return Title{}
	}

	if i, ok := t.setter.(Initializer); ok {
		i.Init(args)
	}

	_, span := t.tracer.Start(ctx, "proctitle.set")
	defer span.End()

	title := t.Build(args)
	t.setter.SetTitle(title)

	shortName := ""
	if sn, ok := t.setter.(ShortNamer); ok && title.HasProgram() {
		shortName = title.ShortName()
		sn.SetShortName(shortName)
	}

	span.SetAttributes(
		attribute.String("proctitle.title", title.Text),
		attribute.String("proctitle.program", title.Program),
		attribute.String("proctitle.short_name", shortName),
		attribute.String("proctitle.setter", t.setter.Name()),
	)
	t.debugf("title set to %q via %s", title.Text, t.setter.Name())

	return title
}

var (
	defaultOnce   sync.Once
	defaultTitler *Titler
)

// Default returns the Titler configured from PROCTITLE_* environment
// variables. Invalid configuration is logged and replaced by defaults.
func Default() *Titler {
	defaultOnce.Do(func() {
		cfg, err := config.ParseTitleConfig()
		if err != nil {
			log.Printf("proctitle: %v, using defaults", err)
			defaultTitler = New()
			return
		}
		defaultTitler, err = NewFromConfig(cfg)
		if err != nil {
			log.Printf("proctitle: %v, using defaults", err)
			defaultTitler = New()
		}
	})
	return defaultTitler
}

// SetFromCommandLine sets the process title from args using Default.
func SetFromCommandLine(args []string) {
	Default().SetFromCommandLine(context.Background(), args)
}
