package generator

// Severity is the fake log level printed in brackets on every line.
type Severity string

// Supported severities.
const (
	SeverityInfo     Severity = Severity("INFO")
	SeverityDebug    Severity = Severity("DEBUG")
	SeverityWarn     Severity = Severity("WARN")
	SeverityError    Severity = Severity("ERROR")
	SeverityTrace    Severity = Severity("TRACE")
	SeverityCritical Severity = Severity("CRITICAL")
)

// WeightedSeverity pairs a severity with its relative selection weight.
type WeightedSeverity struct {
	Severity Severity
	Weight   int
}

// DefaultSeverityWeights returns the built-in severity distribution.
func DefaultSeverityWeights() []WeightedSeverity {
	return []WeightedSeverity{
		{Severity: SeverityInfo, Weight: 40},
		{Severity: SeverityDebug, Weight: 25},
		{Severity: SeverityWarn, Weight: 15},
		{Severity: SeverityError, Weight: 8},
		{Severity: SeverityTrace, Weight: 8},
		{Severity: SeverityCritical, Weight: 4},
	}
}

// Severities lists every supported severity in weight-table order.
func Severities() []Severity {
	weights := DefaultSeverityWeights()
	severities := make([]Severity, 0, len(weights))
	for _, weightedSeverity := range weights {
		severities = append(severities, weightedSeverity.Severity)
	}
	return severities
}
