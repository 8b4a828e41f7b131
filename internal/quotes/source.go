package quotes

import (
	"context"

	"go.uber.org/zap"
)

const (
	quoteFetchFailedMessageConstant = "quote unavailable, falling back to generated line"
	logFieldEndpointConstant        = "endpoint"
)

// Fetcher retrieves a single quote.
type Fetcher interface {
	Fetch(fetchContext context.Context) (Quote, error)
}

// BestEffortSource swallows fetch failures so callers only see whether a quote is available.
type BestEffortSource struct {
	fetcher  Fetcher
	endpoint string
	logger   *zap.Logger
}

// NewBestEffortSource wraps a fetcher; a nil logger discards diagnostics.
func NewBestEffortSource(fetcher Fetcher, endpoint string, logger *zap.Logger) *BestEffortSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BestEffortSource{fetcher: fetcher, endpoint: endpoint, logger: logger}
}

// Next returns a rendered quote and true, or an empty string and false when none is available.
func (source *BestEffortSource) Next(fetchContext context.Context) (string, bool) {
	if source == nil || source.fetcher == nil {
		return "", false
	}

	quote, fetchError := source.fetcher.Fetch(fetchContext)
	if fetchError != nil {
		source.logger.Debug(
			quoteFetchFailedMessageConstant,
			zap.String(logFieldEndpointConstant, source.endpoint),
			zap.Error(fetchError),
		)
		return "", false
	}

	return quote.String(), true
}
