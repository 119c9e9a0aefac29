// Package extract pulls complete object and array literals out of free-form
// text, such as a model reply that wraps JSON in prose or emits several
// objects in a row and stops in the middle of the last one.
//
// [Extract] scans the text for balanced {...} and [...] spans, decodes each
// span as a literal and returns the decoded values in order. Fragments that
// never close, and spans that are not literal syntax, are left out and
// reported as [Diagnostic] values by [Scan] and through the configured
// observability provider.
//
// Two scanners are available. [ModeStack], the default, tracks every open
// bracket on a stack, skips brackets inside string literals and emits a span
// when the stack empties. [ModeLegacy] reproduces the older flat regular
// expression matcher, which only finds innermost bracket groups; it exists
// for callers that depend on that output.
package extract
