package execshell_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/busyterm/internal/execshell"
)

const (
	testShellCommandNameConstant  = "sh"
	testShellScriptFlagConstant   = "-c"
	testShellScriptConstant       = `printf "%s" "$BUSYTERM_TEST_VALUE"; printf "warning" 1>&2; exit 3`
	testEnvironmentNameConstant   = "BUSYTERM_TEST_VALUE"
	testEnvironmentValueConstant  = "display buffer"
	testMissingExecutableConstant = "busyterm-definitely-missing-executable"
)

func TestOSCommandRunnerCapturesOutputAndExitCode(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(testShellCommandNameConstant),
		Details: execshell.CommandDetails{
			Arguments:            []string{testShellScriptFlagConstant, testShellScriptConstant},
			EnvironmentVariables: map[string]string{testEnvironmentNameConstant: testEnvironmentValueConstant},
		},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, testEnvironmentValueConstant, result.StandardOutput)
	require.Equal(testInstance, "warning", result.StandardError)
	require.Equal(testInstance, 3, result.ExitCode)
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName(testMissingExecutableConstant)})
	require.ErrorIs(testInstance, runError, execshell.ErrExecutableNotFound)
}
