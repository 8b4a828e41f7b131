package animation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	progressFilledGlyphConstant      = "#"
	progressEmptyGlyphConstant       = "."
	progressFrameTemplateConstant    = "%s [%s%s] %3d%%  (updating...)"
	carriageReturnConstant           = "\r"
	newlineConstant                  = "\n"
	progressFrameBaseDelayConstant   = 60 * time.Millisecond
	progressFrameDelaySpreadConstant = 80 * time.Millisecond
	fullPercentConstant              = 100
)

// ProgressBar redraws a bar that advances linearly over duration, ending on a single 100% frame followed by a newline.
// A cancelled context stops the bar early; the partial line is still terminated.
func (animator *Animator) ProgressBar(progressContext context.Context, duration time.Duration) error {
	startTime := animator.clock.Now()

	for {
		fraction := 1.0
		if duration > 0 {
			elapsed := animator.clock.Now().Sub(startTime)
			fraction = float64(elapsed) / float64(duration)
			if fraction > 1 {
				fraction = 1
			}
		}

		if writeError := animator.writeProgressFrame(fraction); writeError != nil {
			return writeError
		}
		if fraction >= 1 {
			break
		}

		delay := jitteredDelay(animator.randomSource, progressFrameBaseDelayConstant, progressFrameDelaySpreadConstant)
		if sleepError := animator.clock.Sleep(progressContext, delay); sleepError != nil {
			_, _ = io.WriteString(animator.writer, newlineConstant)
			return sleepError
		}
	}

	_, writeError := io.WriteString(animator.writer, newlineConstant)
	return writeError
}

func (animator *Animator) writeProgressFrame(fraction float64) error {
	filledCount := int(fraction * float64(animator.barWidth))
	percent := int(fraction * fullPercentConstant)
	if fraction < 1 && percent >= fullPercentConstant {
		percent = fullPercentConstant - 1
	}
	frame := fmt.Sprintf(
		progressFrameTemplateConstant,
		animator.timestamp(),
		strings.Repeat(progressFilledGlyphConstant, filledCount),
		strings.Repeat(progressEmptyGlyphConstant, animator.barWidth-filledCount),
		percent,
	)
	_, writeError := io.WriteString(animator.writer, animator.palette.Progress(frame)+carriageReturnConstant)
	return writeError
}
