package busy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/busyterm/internal/quotes"
)

const (
	negativeClearIntervalTemplateConstant = "clear interval must not be negative: %d"
	invalidTickRangeTemplateConstant      = "tick range is invalid: minimum %s exceeds maximum %s"
	invalidChanceTemplateConstant         = "%s must be within [0, 1]: %v"
	invalidDurationRangeTemplateConstant  = "%s range is invalid: minimum %s exceeds maximum %s"
	progressChanceNameConstant            = "progress_chance"
	spinnerChanceNameConstant             = "spinner_chance"
	quoteChanceNameConstant               = "quotes.chance"
	progressDurationNameConstant          = "progress_duration"
	spinnerDurationNameConstant           = "spinner_duration"
	nonPositiveTickMessageConstant        = "tick maximum must be positive"
)

// ErrNonPositiveTick indicates a zero or negative tick upper bound.
var ErrNonPositiveTick = errors.New(nonPositiveTickMessageConstant)

// CommandConfiguration captures every tunable of the busy stream.
type CommandConfiguration struct {
	ClearEvery          int                `mapstructure:"clear_every"`
	NoColor             bool               `mapstructure:"no_color"`
	Seed                uint64             `mapstructure:"seed"`
	WordBanks           string             `mapstructure:"word_banks"`
	TickMinimum         time.Duration      `mapstructure:"tick_min"`
	TickMaximum         time.Duration      `mapstructure:"tick_max"`
	ProgressBars        bool               `mapstructure:"progress_bars"`
	ProgressChance      float64            `mapstructure:"progress_chance"`
	SpinnerChance       float64            `mapstructure:"spinner_chance"`
	ProgressDurationMin time.Duration      `mapstructure:"progress_duration_min"`
	ProgressDurationMax time.Duration      `mapstructure:"progress_duration_max"`
	SpinnerDurationMin  time.Duration      `mapstructure:"spinner_duration_min"`
	SpinnerDurationMax  time.Duration      `mapstructure:"spinner_duration_max"`
	Quotes              QuoteConfiguration `mapstructure:"quotes"`
}

// QuoteConfiguration controls the optional remote quote source.
type QuoteConfiguration struct {
	UseAPI     bool          `mapstructure:"use_api"`
	Endpoint   string        `mapstructure:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Chance     float64       `mapstructure:"chance"`
	ExtraDelay time.Duration `mapstructure:"extra_delay"`
}

// DefaultCommandConfiguration mirrors the embedded defaults.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ClearEvery:          200,
		TickMinimum:         50 * time.Millisecond,
		TickMaximum:         500 * time.Millisecond,
		ProgressBars:        true,
		ProgressChance:      0.06,
		SpinnerChance:       0.04,
		ProgressDurationMin: 800 * time.Millisecond,
		ProgressDurationMax: 2500 * time.Millisecond,
		SpinnerDurationMin:  600 * time.Millisecond,
		SpinnerDurationMax:  1800 * time.Millisecond,
		Quotes: QuoteConfiguration{
			Endpoint:   quotes.DefaultEndpoint,
			Timeout:    quotes.DefaultTimeout,
			Chance:     0.08,
			ExtraDelay: 150 * time.Millisecond,
		},
	}
}

// DefaultConfigurationValues exposes the defaults as dotted viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := strings.TrimSpace(prefix)
	if len(keyPrefix) > 0 {
		keyPrefix += "."
	}

	return map[string]any{
		keyPrefix + "clear_every":           defaults.ClearEvery,
		keyPrefix + "no_color":              defaults.NoColor,
		keyPrefix + "seed":                  defaults.Seed,
		keyPrefix + "word_banks":            defaults.WordBanks,
		keyPrefix + "tick_min":              defaults.TickMinimum,
		keyPrefix + "tick_max":              defaults.TickMaximum,
		keyPrefix + "progress_bars":         defaults.ProgressBars,
		keyPrefix + "progress_chance":       defaults.ProgressChance,
		keyPrefix + "spinner_chance":        defaults.SpinnerChance,
		keyPrefix + "progress_duration_min": defaults.ProgressDurationMin,
		keyPrefix + "progress_duration_max": defaults.ProgressDurationMax,
		keyPrefix + "spinner_duration_min":  defaults.SpinnerDurationMin,
		keyPrefix + "spinner_duration_max":  defaults.SpinnerDurationMax,
		keyPrefix + "quotes.use_api":        defaults.Quotes.UseAPI,
		keyPrefix + "quotes.endpoint":       defaults.Quotes.Endpoint,
		keyPrefix + "quotes.timeout":        defaults.Quotes.Timeout,
		keyPrefix + "quotes.chance":         defaults.Quotes.Chance,
		keyPrefix + "quotes.extra_delay":    defaults.Quotes.ExtraDelay,
	}
}

// Sanitize trims string values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WordBanks = strings.TrimSpace(configuration.WordBanks)
	sanitized.Quotes.Endpoint = strings.TrimSpace(configuration.Quotes.Endpoint)
	return sanitized
}

// Validate reports the first inconsistent value.
func (configuration CommandConfiguration) Validate() error {
	if configuration.ClearEvery < 0 {
		return fmt.Errorf(negativeClearIntervalTemplateConstant, configuration.ClearEvery)
	}
	if configuration.TickMaximum <= 0 {
		return ErrNonPositiveTick
	}
	if configuration.TickMinimum > configuration.TickMaximum {
		return fmt.Errorf(invalidTickRangeTemplateConstant, configuration.TickMinimum, configuration.TickMaximum)
	}

	chances := []struct {
		name  string
		value float64
	}{
		{name: progressChanceNameConstant, value: configuration.ProgressChance},
		{name: spinnerChanceNameConstant, value: configuration.SpinnerChance},
		{name: quoteChanceNameConstant, value: configuration.Quotes.Chance},
	}
	for _, chance := range chances {
		if chance.value < 0 || chance.value > 1 {
			return fmt.Errorf(invalidChanceTemplateConstant, chance.name, chance.value)
		}
	}

	durationRanges := []struct {
		name    string
		minimum time.Duration
		maximum time.Duration
	}{
		{name: progressDurationNameConstant, minimum: configuration.ProgressDurationMin, maximum: configuration.ProgressDurationMax},
		{name: spinnerDurationNameConstant, minimum: configuration.SpinnerDurationMin, maximum: configuration.SpinnerDurationMax},
	}
	for _, durationRange := range durationRanges {
		if durationRange.minimum > durationRange.maximum {
			return fmt.Errorf(invalidDurationRangeTemplateConstant, durationRange.name, durationRange.minimum, durationRange.maximum)
		}
	}

	return nil
}
