// Package source loads the text the jsonfit command works on. A name is a
// file path, "-" for standard input or an http(s) URL. HTML content, whether
// fetched or read from disk, is converted to Markdown so that literals in
// code blocks survive and markup brackets do not produce spurious spans.
package source
