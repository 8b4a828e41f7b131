// Package busy drives the endless busy stream.
//
// Loop is a single-state machine: each iteration may clear the screen, run a
// progress bar or spinner, print a fetched quote, or print a generated log
// line, then sleeps a randomized interval. Cancelling the context is the only
// way out; the loop then prints a farewell line and returns nil.
//
// CommandBuilder wires Loop into a Cobra command together with configuration,
// the quote client, the screen clearer, and the color palette.
package busy
