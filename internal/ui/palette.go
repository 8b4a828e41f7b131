package ui

import (
	"github.com/fatih/color"

	"github.com/temirov/busyterm/internal/generator"
)

// Palette colors busy-stream output. A disabled palette returns text unchanged.
type Palette struct {
	enabled       bool
	errorColor    *color.Color
	warningColor  *color.Color
	debugColor    *color.Color
	defaultColor  *color.Color
	progressColor *color.Color
	systemColor   *color.Color
	quoteColor    *color.Color
}

// NewPalette constructs a palette; when enabled is false every method returns its input verbatim.
func NewPalette(enabled bool) *Palette {
	palette := &Palette{
		enabled:       enabled,
		errorColor:    color.New(color.FgRed),
		warningColor:  color.New(color.FgYellow),
		debugColor:    color.New(color.FgCyan),
		defaultColor:  color.New(color.FgWhite),
		progressColor: color.New(color.FgGreen),
		systemColor:   color.New(color.FgCyan),
		quoteColor:    color.New(color.FgMagenta),
	}

	for _, paletteColor := range palette.colors() {
		if enabled {
			paletteColor.EnableColor()
		} else {
			paletteColor.DisableColor()
		}
	}

	return palette
}

// Enabled reports whether ANSI sequences are emitted.
func (palette *Palette) Enabled() bool {
	return palette != nil && palette.enabled
}

// Severity colors a log line by its severity: errors red, warnings yellow, debug cyan, everything else white.
func (palette *Palette) Severity(severity generator.Severity, text string) string {
	switch severity {
	case generator.SeverityError, generator.SeverityCritical:
		return palette.paint(palette.errorColor, text)
	case generator.SeverityWarn:
		return palette.paint(palette.warningColor, text)
	case generator.SeverityDebug:
		return palette.paint(palette.debugColor, text)
	default:
		return palette.paint(palette.defaultColor, text)
	}
}

// Progress colors progress bar frames.
func (palette *Palette) Progress(text string) string {
	return palette.paint(palette.progressColor, text)
}

// System colors notices emitted by the loop itself.
func (palette *Palette) System(text string) string {
	return palette.paint(palette.systemColor, text)
}

// Quote colors fetched quotes.
func (palette *Palette) Quote(text string) string {
	return palette.paint(palette.quoteColor, text)
}

func (palette *Palette) paint(paletteColor *color.Color, text string) string {
	if !palette.Enabled() || paletteColor == nil {
		return text
	}
	return paletteColor.Sprint(text)
}

func (palette *Palette) colors() []*color.Color {
	return []*color.Color{
		palette.errorColor,
		palette.warningColor,
		palette.debugColor,
		palette.defaultColor,
		palette.progressColor,
		palette.systemColor,
		palette.quoteColor,
	}
}

// ColorSupported reports whether standard output can render ANSI colors; it honors NO_COLOR and non-terminal output.
func ColorSupported() bool {
	return !color.NoColor
}
