package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
)

const (
	environmentAssignmentTemplateConstant = "%s=%s"
	executableNotFoundTemplateConstant    = "executable %q not found: %w"
)

// ErrExecutableNotFound indicates the command is not installed on PATH.
var ErrExecutableNotFound = errors.New("executable not found")

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	lookPath func(file string) (string, error)
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{lookPath: exec.LookPath}
}

// Run executes the command and captures both output streams. A non-zero exit
// status is reported through ExecutionResult, not as an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executablePath, lookupError := runner.lookPath(string(command.Name))
	if lookupError != nil {
		return ExecutionResult{}, fmt.Errorf(executableNotFoundTemplateConstant, command.Name, errors.Join(ErrExecutableNotFound, lookupError))
	}

	executable := exec.CommandContext(executionContext, executablePath, command.Details.Arguments...)
	executable.Env = mergeEnvironment(os.Environ(), command.Details.EnvironmentVariables)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	result := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	return ExecutionResult{}, runError
}

// mergeEnvironment appends overrides in key order so later duplicates win deterministically.
func mergeEnvironment(baseEnvironment []string, overrides map[string]string) []string {
	merged := append([]string{}, baseEnvironment...)
	if len(overrides) == 0 {
		return merged
	}

	overrideKeys := make([]string, 0, len(overrides))
	for overrideKey := range overrides {
		overrideKeys = append(overrideKeys, overrideKey)
	}
	sort.Strings(overrideKeys)

	for _, overrideKey := range overrideKeys {
		merged = append(merged, fmt.Sprintf(environmentAssignmentTemplateConstant, overrideKey, overrides[overrideKey]))
	}
	return merged
}
