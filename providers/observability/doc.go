// Package observability defines the tracing, metrics and logging interfaces
// that jsonfit components report through.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics],
// and [Logger] into a single injectable dependency. Library code treats a nil
// Provider as "observability disabled". Active spans travel through a
// [context.Context] with [ContextWithSpan] and are retrieved with
// [SpanFromContext].
//
// The semconv.go file holds the attribute keys, span names and metric names
// used by the completion and extraction pipelines.
package observability
