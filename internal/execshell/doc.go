// Package execshell provides structured helpers for invoking external tools.
//
// OSCommandRunner executes a ShellCommand with os/exec and captures its
// output, so callers such as the screen clearer can replay what the tool
// printed and tests can substitute a recording runner.
package execshell
