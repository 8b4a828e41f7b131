// Package ui provides helpers for formatting human-readable console output.
//
// Palette maps log severities and system notices onto ANSI colors so the busy
// stream looks like a real service log, while diagnostics continue to flow
// through structured loggers on standard error.
package ui
