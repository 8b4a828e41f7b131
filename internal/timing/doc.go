// Package timing abstracts wall-clock reads and interruptible sleeps so that
// the busy loop and its animations can be driven deterministically in tests.
package timing
