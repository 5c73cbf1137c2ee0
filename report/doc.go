// Package report turns training results and run history into human-facing
// output.
//
// Two forms are produced: HTML learning-curve charts (reward per episode,
// optionally smoothed) and short text summaries and tables for the
// terminal. Nothing here feeds back into the agents; report only reads.
package report
