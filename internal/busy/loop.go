package busy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/busyterm/internal/generator"
	"github.com/temirov/busyterm/internal/timing"
	"github.com/temirov/busyterm/internal/ui"
)

const (
	progressLineWeightConstant         = 3
	spinnerLineWeightConstant          = 2
	minimumJitterFactorConstant        = 0.6
	displayBufferNoticeTemplate        = "%s [SYSTEM] Switched display buffer."
	quoteLineTemplateConstant          = "%s QUOTE: %s"
	farewellNoticeTemplateConstant     = "%s [SYSTEM] Interrupted by user. Exiting."
	lineTerminatorConstant             = "\n"
	generatorMissingMessageConstant    = "line generator not configured"
	animatorMissingMessageConstant     = "animator not configured"
	writerMissingMessageConstant       = "output writer not configured"
	randomSourceMissingMessageConstant = "random source not configured"
	loopStartedMessageConstant         = "busy loop started"
	loopStoppedMessageConstant         = "busy loop stopped"
	logFieldSessionConstant            = "session_id"
	logFieldClearEveryConstant         = "clear_every"
	logFieldQuotesEnabledConstant      = "quotes_enabled"
	logFieldLinesConstant              = "lines_emitted"
	logFieldIterationsConstant         = "iterations"
	logFieldClearsConstant             = "screen_clears"
	logFieldProgressBarsConstant       = "progress_bars"
	logFieldSpinnersConstant           = "spinners"
	logFieldQuotesConstant             = "quotes"
	logFieldGeneratedConstant          = "generated_lines"
)

// ErrGeneratorNotConfigured indicates a missing line generator.
var ErrGeneratorNotConfigured = errors.New(generatorMissingMessageConstant)

// ErrAnimatorNotConfigured indicates a missing animator.
var ErrAnimatorNotConfigured = errors.New(animatorMissingMessageConstant)

// ErrWriterNotConfigured indicates a missing output writer.
var ErrWriterNotConfigured = errors.New(writerMissingMessageConstant)

// ErrRandomSourceNotConfigured indicates a missing random source.
var ErrRandomSourceNotConfigured = errors.New(randomSourceMissingMessageConstant)

// LineGenerator produces synthetic log lines.
type LineGenerator interface {
	Line() generator.LogLine
}

// Animator renders blocking terminal effects.
type Animator interface {
	ProgressBar(progressContext context.Context, duration time.Duration) error
	Spinner(spinnerContext context.Context, duration time.Duration) error
}

// QuoteSource yields an optional quote; false means none is available.
type QuoteSource interface {
	Next(fetchContext context.Context) (string, bool)
}

// ScreenClearer erases the terminal.
type ScreenClearer interface {
	Clear(clearContext context.Context) error
}

// RandomSource supplies uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Dependencies enumerates collaborators used by Loop. Quotes and Clearer are optional.
type Dependencies struct {
	Generator    LineGenerator
	Animator     Animator
	Quotes       QuoteSource
	Clearer      ScreenClearer
	Palette      *ui.Palette
	Clock        timing.Clock
	RandomSource RandomSource
	Writer       io.Writer
	Logger       *zap.Logger
}

// Summary counts what a loop run emitted.
type Summary struct {
	Iterations     int
	LinesEmitted   int
	ScreenClears   int
	ProgressBars   int
	Spinners       int
	Quotes         int
	GeneratedLines int
}

// Loop runs the busy stream until its context is cancelled.
type Loop struct {
	dependencies  Dependencies
	configuration CommandConfiguration
	sessionID     string
}

// NewLoop validates dependencies and configuration.
func NewLoop(dependencies Dependencies, configuration CommandConfiguration) (*Loop, error) {
	if dependencies.Generator == nil {
		return nil, ErrGeneratorNotConfigured
	}
	if dependencies.Animator == nil {
		return nil, ErrAnimatorNotConfigured
	}
	if dependencies.Writer == nil {
		return nil, ErrWriterNotConfigured
	}
	if dependencies.RandomSource == nil {
		return nil, ErrRandomSourceNotConfigured
	}
	if validationError := configuration.Validate(); validationError != nil {
		return nil, validationError
	}

	if dependencies.Palette == nil {
		dependencies.Palette = ui.NewPalette(false)
	}
	if dependencies.Clock == nil {
		dependencies.Clock = timing.NewSystemClock()
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}

	return &Loop{dependencies: dependencies, configuration: configuration, sessionID: uuid.NewString()}, nil
}

// SessionID identifies this loop in diagnostics.
func (loop *Loop) SessionID() string {
	return loop.sessionID
}

// Run emits the busy stream until runContext is cancelled, then prints the farewell line and returns nil.
// Only output write failures are returned as errors.
func (loop *Loop) Run(runContext context.Context) (Summary, error) {
	logger := loop.dependencies.Logger.With(zap.String(logFieldSessionConstant, loop.sessionID))
	logger.Info(
		loopStartedMessageConstant,
		zap.Int(logFieldClearEveryConstant, loop.configuration.ClearEvery),
		zap.Bool(logFieldQuotesEnabledConstant, loop.dependencies.Quotes != nil),
	)

	summary := Summary{}
	runError := loop.iterate(runContext, &summary)
	if runError == nil || isInterruption(runContext, runError) {
		runError = loop.writeFarewell()
	}

	logger.Info(
		loopStoppedMessageConstant,
		zap.Int(logFieldIterationsConstant, summary.Iterations),
		zap.Int(logFieldLinesConstant, summary.LinesEmitted),
		zap.Int(logFieldClearsConstant, summary.ScreenClears),
		zap.Int(logFieldProgressBarsConstant, summary.ProgressBars),
		zap.Int(logFieldSpinnersConstant, summary.Spinners),
		zap.Int(logFieldQuotesConstant, summary.Quotes),
		zap.Int(logFieldGeneratedConstant, summary.GeneratedLines),
	)

	return summary, runError
}

func (loop *Loop) iterate(runContext context.Context, summary *Summary) error {
	for runContext.Err() == nil {
		summary.Iterations++

		if loop.shouldClear(summary.LinesEmitted) {
			if clearError := loop.clearScreen(runContext); clearError != nil {
				return clearError
			}
			summary.ScreenClears++
		}

		if loop.configuration.ProgressBars && loop.roll(loop.configuration.ProgressChance) {
			duration := loop.uniformDuration(loop.configuration.ProgressDurationMin, loop.configuration.ProgressDurationMax)
			if progressError := loop.dependencies.Animator.ProgressBar(runContext, duration); progressError != nil {
				return progressError
			}
			summary.ProgressBars++
			summary.LinesEmitted += progressLineWeightConstant
			continue
		}

		if loop.roll(loop.configuration.SpinnerChance) {
			duration := loop.uniformDuration(loop.configuration.SpinnerDurationMin, loop.configuration.SpinnerDurationMax)
			if spinnerError := loop.dependencies.Animator.Spinner(runContext, duration); spinnerError != nil {
				return spinnerError
			}
			summary.Spinners++
			summary.LinesEmitted += spinnerLineWeightConstant
			continue
		}

		if loop.dependencies.Quotes != nil && loop.roll(loop.configuration.Quotes.Chance) {
			if quote, available := loop.dependencies.Quotes.Next(runContext); available {
				if writeError := loop.writeLine(loop.dependencies.Palette.Quote(fmt.Sprintf(quoteLineTemplateConstant, loop.timestamp(), quote))); writeError != nil {
					return writeError
				}
				summary.Quotes++
				summary.LinesEmitted++
				pause := loop.uniformDuration(loop.configuration.TickMinimum, loop.configuration.TickMaximum) + loop.configuration.Quotes.ExtraDelay
				if sleepError := loop.dependencies.Clock.Sleep(runContext, pause); sleepError != nil {
					return sleepError
				}
				continue
			}
		}

		line := loop.dependencies.Generator.Line()
		if writeError := loop.writeLine(loop.dependencies.Palette.Severity(line.Severity, line.String())); writeError != nil {
			return writeError
		}
		summary.GeneratedLines++
		summary.LinesEmitted++

		jitterFactor := minimumJitterFactorConstant + loop.dependencies.RandomSource.Float64()
		pause := time.Duration(float64(loop.uniformDuration(loop.configuration.TickMinimum, loop.configuration.TickMaximum)) * jitterFactor)
		if sleepError := loop.dependencies.Clock.Sleep(runContext, pause); sleepError != nil {
			return sleepError
		}
	}

	return nil
}

func (loop *Loop) shouldClear(linesEmitted int) bool {
	clearEvery := loop.configuration.ClearEvery
	return clearEvery > 0 && linesEmitted > 0 && linesEmitted%clearEvery == 0
}

func (loop *Loop) clearScreen(runContext context.Context) error {
	if loop.dependencies.Clearer != nil {
		if clearError := loop.dependencies.Clearer.Clear(runContext); clearError != nil {
			return clearError
		}
	}
	return loop.writeLine(loop.dependencies.Palette.System(fmt.Sprintf(displayBufferNoticeTemplate, loop.timestamp())))
}

func (loop *Loop) writeFarewell() error {
	farewell := loop.dependencies.Palette.System(fmt.Sprintf(farewellNoticeTemplateConstant, loop.timestamp()))
	return loop.writeLine(lineTerminatorConstant + farewell)
}

func (loop *Loop) writeLine(text string) error {
	_, writeError := io.WriteString(loop.dependencies.Writer, text+lineTerminatorConstant)
	return writeError
}

func (loop *Loop) timestamp() string {
	return timing.FormatTimestamp(loop.dependencies.Clock.Now())
}

func (loop *Loop) roll(chance float64) bool {
	return loop.dependencies.RandomSource.Float64() < chance
}

func (loop *Loop) uniformDuration(minimum time.Duration, maximum time.Duration) time.Duration {
	if maximum <= minimum {
		return minimum
	}
	return minimum + time.Duration(loop.dependencies.RandomSource.Float64()*float64(maximum-minimum))
}

func isInterruption(runContext context.Context, runError error) bool {
	if runContext.Err() == nil {
		return false
	}
	return errors.Is(runError, context.Canceled) || errors.Is(runError, context.DeadlineExceeded)
}
