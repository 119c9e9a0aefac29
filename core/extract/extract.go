package extract

import (
	"context"
	"errors"

	"github.com/leofalp/jsonfit/providers/observability"
)

// Option configures an Extractor.
type Option func(*config)

type config struct {
	mode     Mode
	lenient  bool
	nested   bool
	observer observability.Provider
}

// WithMode selects the span scanner. The default is ModeStack.
func WithMode(mode Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithLenient accepts Python-style literals (single quotes, True/False/None,
// trailing commas) in addition to strict JSON.
func WithLenient(enabled bool) Option {
	return func(c *config) {
		c.lenient = enabled
	}
}

// WithNested makes the stack scanner look inside spans that never close or
// close with the wrong bracket, so complete literals nested in a truncated
// outer structure are still returned. It has no effect in ModeLegacy.
func WithNested(enabled bool) Option {
	return func(c *config) {
		c.nested = enabled
	}
}

// WithObserver logs diagnostics at WARN level and records span and counter
// data to provider.
func WithObserver(provider observability.Provider) Option {
	return func(c *config) {
		c.observer = provider
	}
}

// Extractor runs the extraction pipeline with a fixed configuration and is
// safe for concurrent use.
type Extractor struct {
	cfg config
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	cfg := config{mode: ModeStack}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.mode == "" {
		cfg.mode = ModeStack
	}
	return &Extractor{cfg: cfg}
}

// Extract returns every complete literal embedded in text, left to right.
//
//	extract.Extract(`{"a":1}{"b":2}`) // [map[a:1] map[b:2]]
//	extract.Extract(`{"a":1`)         // [] and a dangling-span diagnostic
func Extract(text string, opts ...Option) []any {
	return NewExtractor(opts...).Extract(text)
}

// Scan returns the decoded literals with their offsets and the diagnostics
// for everything that was skipped.
func Scan(text string, opts ...Option) ([]Literal, []Diagnostic) {
	return NewExtractor(opts...).Scan(text)
}

// Extract returns the decoded values of Scan. The result is never nil.
func (e *Extractor) Extract(text string) []any {
	literals, _ := e.Scan(text)
	values := make([]any, 0, len(literals))
	for _, literal := range literals {
		values = append(values, literal.Value)
	}
	return values
}

// Scan finds the spans of text, evaluates each one and collects diagnostics.
// It never fails: unusable spans are skipped.
func (e *Extractor) Scan(text string) ([]Literal, []Diagnostic) {
	ctx := context.Background()
	var span observability.Span
	if e.cfg.observer != nil {
		ctx, span = e.cfg.observer.StartSpan(ctx, observability.SpanExtract,
			observability.String(observability.AttrExtractMode, string(e.cfg.mode)),
			observability.Bool(observability.AttrExtractLenient, e.cfg.lenient),
		)
		defer span.End()
	}

	var spans []Span
	var diags []Diagnostic
	if e.cfg.mode == ModeLegacy {
		spans, diags = scanLegacy(text)
	} else {
		spans, diags = scanStack(text, e.cfg.nested)
	}

	literals := make([]Literal, 0, len(spans))
	for _, s := range spans {
		v, err := EvaluateLiteral(s.Text, e.cfg.lenient)
		if err != nil {
			diags = append(diags, Diagnostic{Kind: DiagnosticUnsafeLiteral, Span: s, Err: err})
			continue
		}
		literals = append(literals, Literal{Span: s, Value: v})
	}

	e.report(ctx, span, len(spans), literals, diags)
	return literals, diags
}

func (e *Extractor) report(ctx context.Context, span observability.Span, spans int, literals []Literal, diags []Diagnostic) {
	if e.cfg.observer == nil {
		return
	}

	for _, d := range diags {
		msg := "Error evaluating object string"
		if errors.Is(d.Err, ErrDanglingSpan) {
			msg = "Incomplete object at end of string"
		} else if errors.Is(d.Err, ErrMismatchedBracket) {
			msg = "Mismatched bracket in object string"
		}
		e.cfg.observer.Warn(ctx, msg,
			observability.String(observability.AttrExtractDiagnostic, string(d.Kind)),
			observability.Int(observability.AttrExtractSpanStart, d.Span.Start),
			observability.Int(observability.AttrExtractSpanEnd, d.Span.End),
			observability.String(observability.AttrExtractSpanPreview, observability.TruncateString(d.Span.Text, 80)),
			observability.Error(d.Err),
		)
		e.cfg.observer.Counter(observability.MetricExtractDiagnostics).Add(ctx, 1,
			observability.String(observability.AttrExtractDiagnostic, string(d.Kind)),
		)
	}
	e.cfg.observer.Counter(observability.MetricExtractLiterals).Add(ctx, int64(len(literals)))

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrExtractSpans, spans),
			observability.Int(observability.AttrExtractLiterals, len(literals)),
		)
		span.SetStatus(observability.StatusOK, "")
	}
}
