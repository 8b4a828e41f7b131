package main

import (
	"fmt"
	"os"

	"github.com/temirov/busyterm/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs busyterm until interrupted.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
