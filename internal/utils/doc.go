// Package utils holds small helpers for the jsonfit command: JSON rendering
// for output, an elapsed-time timer and a bounded errgroup runner for batch
// work.
package utils
