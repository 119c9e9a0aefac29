package observability

// Attribute keys, span names and metric names shared by the jsonfit
// components.

// --- Generic attributes ---

const (
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status.description"
)

// --- Completion pipeline ---

const (
	// AttrFitInput is the (truncated) raw input handed to Fit
	AttrFitInput = "fit.input"

	// AttrFitInputLength is the byte length of the raw input
	AttrFitInputLength = "fit.input.length"

	// AttrFitStatus is the terminal state: completed, incomplete or failed
	AttrFitStatus = "fit.status"

	// AttrFitMarks is the candidate closing mark set, e.g. "}]"
	AttrFitMarks = "fit.marks"

	// AttrFitTerminal is the mark every combination must end with
	AttrFitTerminal = "fit.terminal"

	// AttrFitMaxCompletionLength bounds the closing-string length
	AttrFitMaxCompletionLength = "fit.max_completion_length"

	// AttrFitCombinations is the number of closing strings tried
	AttrFitCombinations = "fit.combinations"

	// AttrFitSuggestions is the number of successful completions
	AttrFitSuggestions = "fit.suggestions"

	// AttrFitSuffix is the closing string of a completion attempt
	AttrFitSuffix = "fit.suffix"
)

// --- Extraction pipeline ---

const (
	AttrExtractMode        = "extract.mode"
	AttrExtractLenient     = "extract.lenient"
	AttrExtractSpans       = "extract.spans"
	AttrExtractLiterals    = "extract.literals"
	AttrExtractDiagnostic  = "extract.diagnostic"
	AttrExtractSpanStart   = "extract.span.start"
	AttrExtractSpanEnd     = "extract.span.end"
	AttrExtractSpanPreview = "extract.span.preview"
)

// --- Input sources ---

const (
	AttrSourceName     = "source.name"
	AttrSourceKind     = "source.kind"
	AttrSourceMIME     = "source.mime"
	AttrSourceBytes    = "source.bytes"
	AttrHTTPStatusCode = "http.status_code"
	AttrHTTPURL        = "http.url"
)

// --- Span names ---

const (
	SpanFit     = "jsonfit.fit"
	SpanExtract = "jsonfit.extract"
	SpanSource  = "jsonfit.source"
)

// --- Metric names ---

const (
	MetricFitStatus          = "jsonfit.fit.status"
	MetricFitParseAttempts   = "jsonfit.fit.parse_attempts"
	MetricExtractLiterals    = "jsonfit.extract.literals"
	MetricExtractDiagnostics = "jsonfit.extract.diagnostics"
)
