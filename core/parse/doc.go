// Package parse decodes raw model output into Go values.
//
// Language models wrap JSON in prose and markdown fences, stop mid-structure
// when they hit a token limit, or confuse schema definitions with data. [As]
// handles all of these by trying, in order: a strict decode, the complete
// literals found by [extract.Scan], the [fit.Fit] completion of a literal
// left open at the end of the text and a final jsonrepair pass. Schema-style
// {"type": ..., "value": ...} envelopes are unwrapped at every stage.
package parse
