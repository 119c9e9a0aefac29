// Package fit repairs truncated JSON object and array literals.
//
// Text produced by a language model that hit its length limit usually stops
// in the middle of a structure: a dangling value, a half-written key, a run
// of missing closing brackets. [Fit] first tries to decode the text as is.
// When that fails it strips the trailing whitespace and bracket noise,
// brute-forces every closing string built from the brackets that occur in
// the text (up to [DefaultMaxCompletionLength] marks), shortens the text from
// the right until each closing string yields valid JSON, and ranks the
// surviving values by the length of their rendering: a longer rendering kept
// more of the original input.
//
// The building blocks are exported so callers can run a single stage:
// [IsValid], [SelectMarks], [Combinations], [Complete] and [Rank].
//
// Every function is pure and safe for concurrent use.
package fit
