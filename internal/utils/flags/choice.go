package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix     = "<"
	choicePlaceholderSuffix     = ">"
	choiceSeparatorLiteral      = "|"
	choiceUsageEmptyTemplate    = "`%s`"
	choiceUsageFullTemplate     = "`%s` %s"
	choiceParseErrorTemplate    = "invalid value %q (expected one of %s)"
	choiceValueTypeConstant     = "string"
	choiceListSeparatorConstant = ", "
)

// AddChoiceFlag registers a string flag restricted to choices, matched case-insensitively.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, defaultChoice string, choices []string, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &choiceValue{choices: uniqueChoices(choices), target: target}
	value.assign(strings.TrimSpace(defaultChoice))
	flagSet.Var(value, name, FormatChoiceUsage(defaultChoice, choices, usage))
}

// FormatChoiceUsage renders choices as a placeholder with the default upper-cased, e.g. "`<debug|INFO>` Log level".
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayed := uniqueChoices(choices)
	for index, choice := range displayed {
		if strings.ToLower(choice) == normalizedDefault {
			displayed[index] = strings.ToUpper(choice)
		}
	}
	placeholder := choicePlaceholderPrefix + strings.Join(displayed, choiceSeparatorLiteral) + choicePlaceholderSuffix
	return formatPlaceholderUsage(placeholder, description)
}

func formatPlaceholderUsage(placeholder string, description string) string {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, trimmed)
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmed := strings.TrimSpace(choice)
		normalized := strings.ToLower(trimmed)
		if len(trimmed) == 0 {
			continue
		}
		if _, duplicate := seen[normalized]; duplicate {
			continue
		}
		seen[normalized] = struct{}{}
		unique = append(unique, trimmed)
	}
	return unique
}

type choiceValue struct {
	current string
	choices []string
	target  *string
}

func (value *choiceValue) assign(choice string) {
	value.current = choice
	if value.target != nil {
		*value.target = choice
	}
}

func (value *choiceValue) Set(rawValue string) error {
	normalized := strings.ToLower(strings.TrimSpace(rawValue))
	for _, choice := range value.choices {
		if strings.ToLower(choice) == normalized {
			value.assign(choice)
			return nil
		}
	}
	return fmt.Errorf(choiceParseErrorTemplate, rawValue, strings.Join(value.choices, choiceListSeparatorConstant))
}

func (value *choiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.current
}

func (value *choiceValue) Type() string {
	return choiceValueTypeConstant
}
