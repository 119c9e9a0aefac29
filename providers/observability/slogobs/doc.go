// Package slogobs provides an observability.Provider implementation backed by
// Go's standard library log/slog package.
//
// It supports span logging, in-memory counters and histograms, and levelled
// logging through a [Handler] that writes compact, pretty, or JSON lines.
// The main entry point is [New]; output format and log level can be tuned with
// [WithFormat], [WithLevel], [WithOutput], [WithColors], and [WithLogger], or
// through the JSONFIT_LOG_FORMAT and JSONFIT_LOG_LEVEL environment variables.
package slogobs
