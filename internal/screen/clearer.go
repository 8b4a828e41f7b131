package screen

import (
	"context"
	"io"
	"runtime"

	"go.uber.org/zap"

	"github.com/temirov/busyterm/internal/execshell"
)

// ANSIClearSequence homes the cursor and erases the display.
const ANSIClearSequence = "\033[H\033[2J"

const (
	windowsOperatingSystemConstant = "windows"
	windowsCommandFlagConstant     = "/c"
	windowsClearBuiltinConstant    = "cls"
	clearFallbackMessageConstant   = "clear command unavailable, writing ANSI sequence"
	logFieldCommandConstant        = "command"
	logFieldExitCodeConstant       = "exit_code"
)

// Clearer runs the platform clear command and replays its output, falling back to ANSIClearSequence.
type Clearer struct {
	runner  execshell.CommandRunner
	writer  io.Writer
	command execshell.ShellCommand
	logger  *zap.Logger
}

// NewClearer constructs a Clearer for the current operating system.
func NewClearer(runner execshell.CommandRunner, writer io.Writer, logger *zap.Logger) *Clearer {
	return NewClearerForPlatform(runner, writer, logger, runtime.GOOS)
}

// NewClearerForPlatform constructs a Clearer for the named operating system.
func NewClearerForPlatform(runner execshell.CommandRunner, writer io.Writer, logger *zap.Logger, operatingSystem string) *Clearer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clearer{
		runner:  runner,
		writer:  writer,
		command: clearCommandFor(operatingSystem),
		logger:  logger,
	}
}

// Clear erases the screen. Only a failure to write to the terminal is reported.
func (clearer *Clearer) Clear(clearContext context.Context) error {
	if clearer.runner != nil {
		result, runError := clearer.runner.Run(clearContext, clearer.command)
		if runError == nil && result.ExitCode == 0 && len(result.StandardOutput) > 0 {
			_, writeError := io.WriteString(clearer.writer, result.StandardOutput)
			return writeError
		}
		clearer.logger.Debug(
			clearFallbackMessageConstant,
			zap.String(logFieldCommandConstant, string(clearer.command.Name)),
			zap.Int(logFieldExitCodeConstant, result.ExitCode),
			zap.Error(runError),
		)
	}

	_, writeError := io.WriteString(clearer.writer, ANSIClearSequence)
	return writeError
}

func clearCommandFor(operatingSystem string) execshell.ShellCommand {
	if operatingSystem == windowsOperatingSystemConstant {
		return execshell.ShellCommand{
			Name:    execshell.CommandWindows,
			Details: execshell.CommandDetails{Arguments: []string{windowsCommandFlagConstant, windowsClearBuiltinConstant}},
		}
	}
	return execshell.ShellCommand{Name: execshell.CommandClear}
}
