// Package flags provides pflag values for yes/no toggles and closed-choice options.
package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleValueTypeConstant                = "bool"
	longFlagPrefixConstant                 = "--"
	shortFlagPrefixConstant                = "-"
	flagValueSeparatorConstant             = "="
)

var toggleLiterals = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true, "t": true, "y": true,
	"false": false, "no": false, "off": false, "0": false, "f": false, "n": false,
}

// toggleRegistry remembers toggle names so NormalizeToggleArguments can join "--flag value" pairs.
var toggleRegistry = struct {
	sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}{names: map[string]struct{}{}, shorthands: map[string]struct{}{}}

// AddToggleFlag registers a boolean flag accepting yes/no, on/off, true/false, and 1/0.
// A bare flag means true.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &toggleValue{target: target}
	value.assign(defaultValue)
	flagSet.VarP(value, name, shorthand, usage)

	flag := flagSet.Lookup(name)
	flag.NoOptDefVal = toggleTrueCanonicalValue
	flag.Usage = formatToggleUsage(usage, defaultValue)

	toggleRegistry.Lock()
	defer toggleRegistry.Unlock()
	toggleRegistry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		toggleRegistry.shorthands[shorthand] = struct{}{}
	}
}

// NormalizeToggleArguments rewrites "--toggle value" into "--toggle=value" for registered toggles.
// Arguments after "--" pass through untouched.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefixConstant {
			return append(normalized, arguments[index:]...)
		}
		if index+1 < len(arguments) && expectsSeparateToggleValue(current) && isToggleLiteral(arguments[index+1]) {
			normalized = append(normalized, current+flagValueSeparatorConstant+arguments[index+1])
			index++
			continue
		}
		normalized = append(normalized, current)
	}
	return normalized
}

func expectsSeparateToggleValue(argument string) bool {
	if strings.Contains(argument, flagValueSeparatorConstant) {
		return false
	}

	toggleRegistry.RLock()
	defer toggleRegistry.RUnlock()

	if name, isLong := strings.CutPrefix(argument, longFlagPrefixConstant); isLong {
		_, registered := toggleRegistry.names[name]
		return registered
	}
	if shorthand, isShort := strings.CutPrefix(argument, shortFlagPrefixConstant); isShort && len(shorthand) == 1 {
		_, registered := toggleRegistry.shorthands[shorthand]
		return registered
	}
	return false
}

func isToggleLiteral(candidate string) bool {
	if strings.HasPrefix(candidate, shortFlagPrefixConstant) {
		return false
	}
	_, known := toggleLiterals[strings.ToLower(strings.TrimSpace(candidate))]
	return known
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	return formatPlaceholderUsage(placeholder, description)
}

type toggleValue struct {
	current bool
	target  *bool
}

func (value *toggleValue) assign(parsed bool) {
	value.current = parsed
	if value.target != nil {
		*value.target = parsed
	}
}

func (value *toggleValue) Set(rawValue string) error {
	normalized := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalized) == 0 {
		normalized = toggleTrueCanonicalValue
	}
	parsed, known := toggleLiterals[normalized]
	if !known {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	value.assign(parsed)
	return nil
}

func (value *toggleValue) String() string {
	if value != nil && value.current {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleValue) Type() string {
	return toggleValueTypeConstant
}
