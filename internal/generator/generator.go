package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/temirov/busyterm/internal/timing"
)

const (
	chainProbabilityConstant         = 0.35
	commandProbabilityConstant       = 0.22
	minimumProcessIdentifierConstant = 1000
	maximumProcessIdentifierConstant = 99999
	minimumCountConstant             = 1
	maximumCountConstant             = 99999
	minimumPercentageConstant        = 0.1
	maximumPercentageConstant        = 99.9
	minimumMillisecondsConstant      = 1
	maximumMillisecondsConstant      = 1200
	sentenceSeparatorConstant        = " "
	logLineTemplateConstant          = "%s [%s] (pid:%d) %s"
	commandSuffixTemplateConstant    = "  cmd: %s"
	emptyBankTemplateConstant        = "word bank %q must contain at least one entry"
	invalidSeverityWeightTemplate    = "severity %q must have a positive weight"
	missingSeverityWeightsMessage    = "at least one severity weight must be configured"
	bankNameAdjectivesConstant       = "adjectives"
	bankNameVerbsConstant            = "verbs"
	bankNameNounsConstant            = "nouns"
	bankNameSystemsConstant          = "systems"
	bankNameStatusPhrasesConstant    = "status_phrases"
	bankNameDetailsConstant          = "details"
	bankNameTemplatesConstant        = "templates"
	bankNameCommandsConstant         = "commands"
	percentageRoundingFactorConstant = 100
)

// ErrSeverityWeightsMissing indicates the banks carry no severity distribution.
var ErrSeverityWeightsMissing = errors.New(missingSeverityWeightsMessage)

// LogLine is one generated line before rendering.
type LogLine struct {
	Timestamp         time.Time
	Severity          Severity
	ProcessIdentifier int
	Text              string
	Command           string
}

// String renders the line in its printed form.
func (line LogLine) String() string {
	rendered := fmt.Sprintf(logLineTemplateConstant, timing.FormatTimestamp(line.Timestamp), line.Severity, line.ProcessIdentifier, line.Text)
	if len(line.Command) > 0 {
		rendered += fmt.Sprintf(commandSuffixTemplateConstant, line.Command)
	}
	return rendered
}

// Options configures a Generator.
type Options struct {
	Banks        Banks
	RandomSource *rand.Rand
	Clock        timing.Clock
}

// Generator produces synthetic log lines. It is not safe for concurrent use.
type Generator struct {
	banks               Banks
	templates           []compiledTemplate
	randomSource        *rand.Rand
	clock               timing.Clock
	totalSeverityWeight int
}

// NewGenerator validates the banks and templates and constructs a Generator.
func NewGenerator(options Options) (*Generator, error) {
	if validationError := validateBanks(options.Banks); validationError != nil {
		return nil, validationError
	}

	templates, compileError := compileTemplates(options.Banks.Templates)
	if compileError != nil {
		return nil, compileError
	}

	totalSeverityWeight := 0
	for _, weightedSeverity := range options.Banks.SeverityWeights {
		totalSeverityWeight += weightedSeverity.Weight
	}

	randomSource := options.RandomSource
	if randomSource == nil {
		randomSource = NewRandomSource(0)
	}

	clock := options.Clock
	if clock == nil {
		clock = timing.NewSystemClock()
	}

	return &Generator{
		banks:               options.Banks,
		templates:           templates,
		randomSource:        randomSource,
		clock:               clock,
		totalSeverityWeight: totalSeverityWeight,
	}, nil
}

// NewRandomSource builds a PCG-backed random source; a zero seed draws one from the runtime.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns one fully rendered log line.
func (generator *Generator) Generate() string {
	return generator.Line().String()
}

// Line composes one log line: one or two sentences, a weighted severity, a pid, and sometimes a trailing command.
func (generator *Generator) Line() LogLine {
	text := generator.Sentence()
	if generator.randomSource.Float64() < chainProbabilityConstant {
		text = text + sentenceSeparatorConstant + strings.ToLower(generator.Sentence())
	}

	line := LogLine{
		Timestamp:         generator.clock.Now(),
		Severity:          generator.Severity(),
		ProcessIdentifier: minimumProcessIdentifierConstant + generator.randomSource.IntN(maximumProcessIdentifierConstant-minimumProcessIdentifierConstant),
		Text:              text,
	}

	if generator.randomSource.Float64() < commandProbabilityConstant {
		line.Command = generator.pick(generator.banks.Commands)
	}

	return line
}

// Sentence fills one uniformly chosen template.
func (generator *Generator) Sentence() string {
	template := generator.templates[generator.randomSource.IntN(len(generator.templates))]
	return template.render(generator.resolvePlaceholder)
}

// Fill renders an arbitrary template against the generator's banks.
func (generator *Generator) Fill(template string) (string, error) {
	compiled, compileError := compileTemplate(template)
	if compileError != nil {
		return "", compileError
	}
	return compiled.render(generator.resolvePlaceholder), nil
}

// Severity draws a severity according to the configured weights.
func (generator *Generator) Severity() Severity {
	threshold := generator.randomSource.IntN(generator.totalSeverityWeight)
	for _, weightedSeverity := range generator.banks.SeverityWeights {
		if threshold < weightedSeverity.Weight {
			return weightedSeverity.Severity
		}
		threshold -= weightedSeverity.Weight
	}
	return generator.banks.SeverityWeights[len(generator.banks.SeverityWeights)-1].Severity
}

func (generator *Generator) resolvePlaceholder(placeholder Placeholder) string {
	switch placeholder {
	case PlaceholderAdjective:
		return generator.pick(generator.banks.Adjectives)
	case PlaceholderVerb:
		return generator.pick(generator.banks.Verbs)
	case PlaceholderVerbCapitalized:
		return capitalize(generator.pick(generator.banks.Verbs))
	case PlaceholderNoun:
		return generator.pick(generator.banks.Nouns)
	case PlaceholderSystem:
		return generator.pick(generator.banks.Systems)
	case PlaceholderCount:
		return strconv.Itoa(generator.intBetween(minimumCountConstant, maximumCountConstant))
	case PlaceholderPercentage:
		percentage := minimumPercentageConstant + generator.randomSource.Float64()*(maximumPercentageConstant-minimumPercentageConstant)
		rounded := math.Round(percentage*percentageRoundingFactorConstant) / percentageRoundingFactorConstant
		return strconv.FormatFloat(rounded, 'f', -1, 64)
	case PlaceholderMilliseconds:
		return strconv.Itoa(generator.intBetween(minimumMillisecondsConstant, maximumMillisecondsConstant))
	case PlaceholderStatus:
		return generator.pick(generator.banks.StatusPhrases)
	case PlaceholderDetail:
		return generator.pick(generator.banks.Details)
	case PlaceholderClockTime:
		return generator.clock.Now().Format(timing.ClockTimeLayout)
	default:
		return string(placeholder)
	}
}

func (generator *Generator) pick(entries []string) string {
	return entries[generator.randomSource.IntN(len(entries))]
}

// intBetween returns a value in [minimum, maximum].
func (generator *Generator) intBetween(minimum int, maximum int) int {
	return minimum + generator.randomSource.IntN(maximum-minimum+1)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	if len(word) == 0 {
		return word
	}
	firstRune, runeWidth := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(firstRune)) + strings.ToLower(word[runeWidth:])
}

func validateBanks(banks Banks) error {
	namedBanks := []struct {
		name    string
		entries []string
	}{
		{name: bankNameAdjectivesConstant, entries: banks.Adjectives},
		{name: bankNameVerbsConstant, entries: banks.Verbs},
		{name: bankNameNounsConstant, entries: banks.Nouns},
		{name: bankNameSystemsConstant, entries: banks.Systems},
		{name: bankNameStatusPhrasesConstant, entries: banks.StatusPhrases},
		{name: bankNameDetailsConstant, entries: banks.Details},
		{name: bankNameTemplatesConstant, entries: banks.Templates},
		{name: bankNameCommandsConstant, entries: banks.Commands},
	}
	for _, namedBank := range namedBanks {
		if len(namedBank.entries) == 0 {
			return fmt.Errorf(emptyBankTemplateConstant, namedBank.name)
		}
	}

	if len(banks.SeverityWeights) == 0 {
		return ErrSeverityWeightsMissing
	}
	for _, weightedSeverity := range banks.SeverityWeights {
		if weightedSeverity.Weight <= 0 {
			return fmt.Errorf(invalidSeverityWeightTemplate, weightedSeverity.Severity)
		}
	}

	return nil
}
