package animation

import (
	"io"
	"math/rand/v2"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/temirov/busyterm/internal/timing"
	"github.com/temirov/busyterm/internal/ui"
)

const (
	defaultBarWidthConstant = 30
	minimumBarWidthConstant = 10
	barLineOverheadConstant = 42
)

// RandomSource supplies jitter for frame delays.
type RandomSource interface {
	Float64() float64
}

// TerminalWidthProvider reports the terminal column count when known.
type TerminalWidthProvider func() (int, bool)

// Options configures an Animator.
type Options struct {
	Writer           io.Writer
	Palette          *ui.Palette
	Clock            timing.Clock
	RandomSource     RandomSource
	BarWidth         int
	TerminalWidth    TerminalWidthProvider
	IndicatorFactory IndicatorFactory
}

// Animator draws progress bars and spinners onto a writer.
type Animator struct {
	writer           io.Writer
	palette          *ui.Palette
	clock            timing.Clock
	randomSource     RandomSource
	barWidth         int
	indicatorFactory IndicatorFactory
}

// NewAnimator constructs an Animator, defaulting every unset option.
func NewAnimator(options Options) *Animator {
	writer := options.Writer
	if writer == nil {
		writer = os.Stdout
	}

	palette := options.Palette
	if palette == nil {
		palette = ui.NewPalette(false)
	}

	clock := options.Clock
	if clock == nil {
		clock = timing.NewSystemClock()
	}

	var randomSource RandomSource = options.RandomSource
	if randomSource == nil {
		randomSource = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	indicatorFactory := options.IndicatorFactory
	if indicatorFactory == nil {
		indicatorFactory = NewTerminalIndicator
	}

	return &Animator{
		writer:           writer,
		palette:          palette,
		clock:            clock,
		randomSource:     randomSource,
		barWidth:         resolveBarWidth(options.BarWidth, options.TerminalWidth),
		indicatorFactory: indicatorFactory,
	}
}

// StandardOutputWidth reports the width of standard output when it is a terminal.
func StandardOutputWidth() (int, bool) {
	fileDescriptor := int(os.Stdout.Fd())
	if !term.IsTerminal(fileDescriptor) {
		return 0, false
	}
	columns, _, sizeError := term.GetSize(fileDescriptor)
	if sizeError != nil || columns <= 0 {
		return 0, false
	}
	return columns, true
}

func resolveBarWidth(requestedWidth int, terminalWidth TerminalWidthProvider) int {
	barWidth := requestedWidth
	if barWidth <= 0 {
		barWidth = defaultBarWidthConstant
	}
	if terminalWidth == nil {
		return barWidth
	}

	columns, known := terminalWidth()
	if !known {
		return barWidth
	}
	available := columns - barLineOverheadConstant
	if available < barWidth {
		barWidth = available
	}
	if barWidth < minimumBarWidthConstant {
		barWidth = minimumBarWidthConstant
	}
	return barWidth
}

func (animator *Animator) timestamp() string {
	return timing.FormatTimestamp(animator.clock.Now())
}

func jitteredDelay(randomSource RandomSource, base time.Duration, spread time.Duration) time.Duration {
	return base + time.Duration(randomSource.Float64()*float64(spread))
}
