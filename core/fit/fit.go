package fit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/leofalp/jsonfit/providers/observability"
)

// Status is the terminal state of Fit.
type Status string

const (
	// StatusCompleted means the input decoded without modification.
	StatusCompleted Status = "completed"
	// StatusIncomplete means the input needed closing brackets; see
	// Result.Completion and Result.Suggestions.
	StatusIncomplete Status = "incomplete"
	// StatusFailed means no closing string produced valid JSON.
	StatusFailed Status = "failed"
)

// Result is the outcome of Fit. Which fields are set depends on Status:
//
//   - StatusCompleted: Value and Kind.
//   - StatusIncomplete: Completion and Suggestions, Completion being
//     Suggestions[0].
//   - StatusFailed: Err.
type Result struct {
	Status      Status
	Kind        Kind
	Value       any
	Completion  any
	Suggestions []any
	Err         error
}

// Best returns the decoded value for Completed results and the top-ranked
// completion for Incomplete ones.
func (r Result) Best() (any, bool) {
	switch r.Status {
	case StatusCompleted:
		return r.Value, true
	case StatusIncomplete:
		return r.Completion, true
	default:
		return nil, false
	}
}

// ErrorMessage returns the failure text, empty unless Status is Failed.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// MarshalJSON renders the result as
// {"status": ..., "object_type": ..., "data": {...}}.
func (r Result) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Status     Status         `json:"status"`
		ObjectType *Kind          `json:"object_type"`
		Data       map[string]any `json:"data"`
	}
	out := envelope{Status: r.Status, Data: map[string]any{}}
	switch r.Status {
	case StatusCompleted:
		kind := r.Kind
		out.ObjectType = &kind
		out.Data["completion"] = r.Value
		out.Data["suggestions"] = []any{}
	case StatusIncomplete:
		out.Data["completion"] = r.Completion
		out.Data["suggestions"] = r.Suggestions
	default:
		out.Data["error_message"] = r.ErrorMessage()
	}
	return json.Marshal(out)
}

// trailingNoise matches the run of whitespace and brackets at the end of the
// input, closers the producer may already have guessed at.
var trailingNoise = regexp.MustCompile(`[\[\]{}\s]+$`)

// Fitter runs the completion pipeline with a fixed configuration. The zero
// value is not usable; create one with NewFitter. A Fitter is safe for
// concurrent use.
type Fitter struct {
	cfg config
}

// NewFitter creates a Fitter.
func NewFitter(opts ...Option) *Fitter {
	return &Fitter{cfg: applyOptions(opts...)}
}

// Fit decodes text, repairing missing trailing closers when needed.
//
//	fit.Fit(`{"a": 1, "b": 2}`) // Completed, Value map[a:1 b:2]
//	fit.Fit(`{"a": 1, "b": 2`)  // Incomplete, Completion map[a:1 b:2]
//	fit.Fit(``)                 // Failed
func Fit(text string, opts ...Option) Result {
	return NewFitter(opts...).Fit(text)
}

// Suggest runs only the repair search on text, without the direct decode
// and without stripping trailing brackets.
func Suggest(text string, opts ...Option) (Ranked, error) {
	return NewFitter(opts...).Suggest(text)
}

// IsValid reports whether text decodes as is.
func (f *Fitter) IsValid(text string) bool {
	return IsValid(text)
}

// Fit runs the completion pipeline. It never panics; every failure path ends
// in a Failed result.
func (f *Fitter) Fit(text string) (result Result) {
	ctx := context.Background()
	var span observability.Span
	if f.cfg.observer != nil {
		ctx, span = f.cfg.observer.StartSpan(ctx, observability.SpanFit,
			observability.String(observability.AttrFitInput, observability.TruncateString(text, 0)),
			observability.Int(observability.AttrFitInputLength, len(text)),
			observability.Int(observability.AttrFitMaxCompletionLength, f.cfg.maxCompletionLength),
		)
		defer span.End()
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{Status: StatusFailed, Err: fmt.Errorf("%w: %v", ErrInternal, r)}
		}
		f.record(ctx, span, result)
	}()

	if v, err := Decode(text); err == nil {
		return Result{Status: StatusCompleted, Kind: KindOf(v), Value: v}
	}
	if f.cfg.lenient {
		if v, err := DecodeLenient(text); err == nil {
			return Result{Status: StatusCompleted, Kind: KindOf(v), Value: v}
		}
	}

	ranked, err := f.search(ctx, span, trailingNoise.ReplaceAllString(text, ""))
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	return Result{
		Status:      StatusIncomplete,
		Completion:  ranked.Completion,
		Suggestions: ranked.Suggestions,
	}
}

// Suggest runs the repair search on text as given.
func (f *Fitter) Suggest(text string) (Ranked, error) {
	return f.search(context.Background(), nil, text)
}

func (f *Fitter) search(ctx context.Context, span observability.Span, text string) (Ranked, error) {
	marks, terminal := SelectMarks(text)
	if len(marks) == 0 {
		return Ranked{}, fmt.Errorf("%w: %w", ErrEmptyCandidateSet, ErrNoMarks)
	}

	combinations := Combinations(marks, f.cfg.maxCompletionLength, terminal)
	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrFitMarks, marks.String()),
			observability.String(observability.AttrFitTerminal, string(rune(terminal))),
			observability.Int(observability.AttrFitCombinations, len(combinations)),
		)
	}

	var completions []any
	parses := 0
	for _, suffix := range combinations {
		v, attempt, err := CompleteStats(text, suffix)
		parses += attempt.Parses
		if err != nil {
			continue
		}
		if span != nil {
			span.AddEvent("fit.completion",
				observability.String(observability.AttrFitSuffix, suffix),
				observability.Int("fit.kept", attempt.Kept),
			)
		}
		completions = append(completions, v)
	}
	if f.cfg.observer != nil {
		f.cfg.observer.Histogram(observability.MetricFitParseAttempts).Record(ctx, float64(parses))
	}

	if f.cfg.deduplicate {
		completions = dedupe(completions)
	}
	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrFitSuggestions, len(completions)))
	}
	return Rank(completions)
}

func (f *Fitter) record(ctx context.Context, span observability.Span, result Result) {
	if f.cfg.observer == nil {
		return
	}
	f.cfg.observer.Counter(observability.MetricFitStatus).Add(ctx, 1,
		observability.String(observability.AttrFitStatus, string(result.Status)),
	)
	if span != nil {
		span.SetAttributes(observability.String(observability.AttrFitStatus, string(result.Status)))
		if result.Status == StatusFailed {
			span.SetStatus(observability.StatusError, result.ErrorMessage())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	}
	if result.Status == StatusFailed && !errors.Is(result.Err, ErrEmptyCandidateSet) {
		f.cfg.observer.Warn(ctx, "fit failed", observability.Error(result.Err))
	}
}
