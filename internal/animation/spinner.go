package animation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const (
	spinnerCadenceConstant        = 80 * time.Millisecond
	spinnerPrefixTemplateConstant = "%s "
	spinnerSuffixConstant         = " working..."
	spinnerCompletionTemplate     = "%s working... done\n"
)

// SpinnerFrames is the glyph rotation drawn by the spinner.
var SpinnerFrames = []string{"|", "/", "-", `\`}

// Indicator is a background animation that runs between Start and Stop.
type Indicator interface {
	Start()
	Stop()
}

// IndicatorSettings describes the spinner an IndicatorFactory must build.
type IndicatorSettings struct {
	Frames  []string
	Cadence time.Duration
	Writer  io.Writer
	Prefix  string
	Suffix  string
}

// IndicatorFactory builds an Indicator from settings.
type IndicatorFactory func(settings IndicatorSettings) Indicator

// NewTerminalIndicator builds a briandowns spinner; it renders only when standard output is a terminal.
func NewTerminalIndicator(settings IndicatorSettings) Indicator {
	terminalSpinner := spinner.New(settings.Frames, settings.Cadence, spinner.WithWriter(settings.Writer))
	terminalSpinner.Prefix = settings.Prefix
	terminalSpinner.Suffix = settings.Suffix
	return terminalSpinner
}

// Spinner rotates SpinnerFrames every 80ms for duration and then prints a completion line.
func (animator *Animator) Spinner(spinnerContext context.Context, duration time.Duration) error {
	frames := make([]string, len(SpinnerFrames))
	copy(frames, SpinnerFrames)

	indicator := animator.indicatorFactory(IndicatorSettings{
		Frames:  frames,
		Cadence: spinnerCadenceConstant,
		Writer:  animator.writer,
		Prefix:  fmt.Sprintf(spinnerPrefixTemplateConstant, animator.timestamp()),
		Suffix:  spinnerSuffixConstant,
	})

	indicator.Start()
	sleepError := animator.clock.Sleep(spinnerContext, duration)
	indicator.Stop()
	if sleepError != nil {
		return sleepError
	}

	_, writeError := fmt.Fprintf(animator.writer, spinnerCompletionTemplate, animator.timestamp())
	return writeError
}
