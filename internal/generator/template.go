package generator

import (
	"errors"
	"fmt"
	"strings"
)

const (
	placeholderOpenDelimiterConstant         = "{"
	placeholderCloseDelimiterConstant        = "}"
	emptyTemplateMessageConstant             = "sentence template must not be empty"
	unterminatedPlaceholderTemplateConstant  = "template %q has an unterminated placeholder"
	unknownPlaceholderTemplateConstant       = "template %q references unknown placeholder %q"
	templateCompilationErrorTemplateConstant = "invalid sentence template #%d: %w"
)

// Placeholder names a substitution slot inside a sentence template.
type Placeholder string

// Supported placeholders.
const (
	PlaceholderAdjective       Placeholder = Placeholder("adj")
	PlaceholderVerb            Placeholder = Placeholder("verb")
	PlaceholderVerbCapitalized Placeholder = Placeholder("verb_cap")
	PlaceholderNoun            Placeholder = Placeholder("noun")
	PlaceholderSystem          Placeholder = Placeholder("system")
	PlaceholderCount           Placeholder = Placeholder("num")
	PlaceholderPercentage      Placeholder = Placeholder("pct")
	PlaceholderMilliseconds    Placeholder = Placeholder("ms")
	PlaceholderStatus          Placeholder = Placeholder("status")
	PlaceholderDetail          Placeholder = Placeholder("detail")
	PlaceholderClockTime       Placeholder = Placeholder("time")
)

// ErrEmptyTemplate indicates a blank sentence template.
var ErrEmptyTemplate = errors.New(emptyTemplateMessageConstant)

// UnknownPlaceholderError reports a template slot that no word bank can fill.
type UnknownPlaceholderError struct {
	Template    string
	Placeholder string
}

// Error describes the unknown placeholder.
func (unknownPlaceholderError UnknownPlaceholderError) Error() string {
	return fmt.Sprintf(unknownPlaceholderTemplateConstant, unknownPlaceholderError.Template, unknownPlaceholderError.Placeholder)
}

var supportedPlaceholders = map[Placeholder]struct{}{
	PlaceholderAdjective:       {},
	PlaceholderVerb:            {},
	PlaceholderVerbCapitalized: {},
	PlaceholderNoun:            {},
	PlaceholderSystem:          {},
	PlaceholderCount:           {},
	PlaceholderPercentage:      {},
	PlaceholderMilliseconds:    {},
	PlaceholderStatus:          {},
	PlaceholderDetail:          {},
	PlaceholderClockTime:       {},
}

type templateSegment struct {
	literal     string
	placeholder Placeholder
}

type compiledTemplate struct {
	source   string
	segments []templateSegment
}

// ValidateTemplate reports whether every placeholder in the template is supported.
func ValidateTemplate(template string) error {
	_, compileError := compileTemplate(template)
	return compileError
}

func compileTemplate(template string) (compiledTemplate, error) {
	if len(strings.TrimSpace(template)) == 0 {
		return compiledTemplate{}, ErrEmptyTemplate
	}

	segments := []templateSegment{}
	remaining := template
	for len(remaining) > 0 {
		openIndex := strings.Index(remaining, placeholderOpenDelimiterConstant)
		if openIndex < 0 {
			segments = append(segments, templateSegment{literal: remaining})
			break
		}
		if openIndex > 0 {
			segments = append(segments, templateSegment{literal: remaining[:openIndex]})
		}

		closeOffset := strings.Index(remaining[openIndex:], placeholderCloseDelimiterConstant)
		if closeOffset < 0 {
			return compiledTemplate{}, fmt.Errorf(unterminatedPlaceholderTemplateConstant, template)
		}

		placeholderName := remaining[openIndex+1 : openIndex+closeOffset]
		placeholder := Placeholder(placeholderName)
		if _, supported := supportedPlaceholders[placeholder]; !supported {
			return compiledTemplate{}, UnknownPlaceholderError{Template: template, Placeholder: placeholderName}
		}
		segments = append(segments, templateSegment{placeholder: placeholder})

		remaining = remaining[openIndex+closeOffset+1:]
	}

	return compiledTemplate{source: template, segments: segments}, nil
}

func compileTemplates(templates []string) ([]compiledTemplate, error) {
	compiled := make([]compiledTemplate, 0, len(templates))
	for templateIndex, template := range templates {
		compiledSentence, compileError := compileTemplate(template)
		if compileError != nil {
			return nil, fmt.Errorf(templateCompilationErrorTemplateConstant, templateIndex, compileError)
		}
		compiled = append(compiled, compiledSentence)
	}
	return compiled, nil
}

// render fills each distinct placeholder once so repeated slots share a value.
func (template compiledTemplate) render(resolve func(Placeholder) string) string {
	resolvedValues := map[Placeholder]string{}
	var builder strings.Builder
	for _, segment := range template.segments {
		if len(segment.placeholder) == 0 {
			builder.WriteString(segment.literal)
			continue
		}
		value, resolved := resolvedValues[segment.placeholder]
		if !resolved {
			value = resolve(segment.placeholder)
			resolvedValues[segment.placeholder] = value
		}
		builder.WriteString(value)
	}
	return builder.String()
}
