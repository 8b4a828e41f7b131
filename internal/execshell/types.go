package execshell

import "context"

// CommandName identifies an executable.
type CommandName string

// Known executables.
const (
	CommandClear   CommandName = CommandName("clear")
	CommandWindows CommandName = CommandName("cmd")
)

// CommandDetails carries arguments and extra environment for a command.
type CommandDetails struct {
	Arguments            []string
	EnvironmentVariables map[string]string
}

// ShellCommand pairs an executable with its details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable output of a finished command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}
