package generator

// Banks holds every word bank, sentence template, and trailing command a Generator draws from.
type Banks struct {
	Adjectives      []string
	Verbs           []string
	Nouns           []string
	Systems         []string
	StatusPhrases   []string
	Details         []string
	Templates       []string
	Commands        []string
	SeverityWeights []WeightedSeverity
}

// DefaultBanks returns a fresh copy of the built-in word banks.
func DefaultBanks() Banks {
	return Banks{
		Adjectives: []string{
			"optimized", "resilient", "concurrent", "deprecated", "asynchronous",
			"deterministic", "probabilistic", "scalable", "redundant", "compressed",
			"normalized", "encrypted", "authenticated", "verified", "transient",
		},
		Verbs: []string{
			"initializing", "synchronizing", "compacting", "indexing", "migrating",
			"ingesting", "persisting", "validating", "replicating", "profiling",
			"seeding", "evicting", "flushing", "calibrating", "probing",
		},
		Nouns: []string{
			"cluster", "shard", "manifest", "cache", "backplane", "registry", "snapshot",
			"transaction log", "pipeline", "matrix", "vector", "protocol", "kernel",
			"artifact", "handshake", "telemetry stream",
		},
		Systems: []string{
			"auth service", "payment gateway", "ingest worker", "analytics node",
			"time-series engine", "replicator", "orchestrator", "scheduler", "ETL job",
		},
		StatusPhrases: []string{
			"OK", "COMPLETE", "FAILED (retrying)", "PENDING", "QUEUED", "ABORTED", "SUCCESS",
			"PARTIAL SUCCESS", "TIMED OUT", "DEFERRED",
		},
		Details: []string{
			"waiting for quorum", "performing sanity checks", "evicting stale entries",
			"applying adaptive backoff", "rebuilding index", "rotating keys",
			"reconciling state across zones", "compressing deltas", "validating checksums",
		},
		Templates: []string{
			"The {adj} {noun} {verb} {detail}.",
			"{verb_cap} {noun} in the {system} to satisfy integrity checks.",
			"Checkpoint reached: {noun} {verb} with {num} entries processed.",
			"{verb_cap} {noun}... {status}.",
			"User-visible latency improved by {pct}% after {verb} of the {noun}.",
			"Scheduling background {noun} for {system} at {time}.",
			"Rolling update: {noun} on {system} moved to {adj} state.",
			"Telemetry: {num} events/sec for {system} (p90 {ms}ms).",
			"Cache miss ratio at {pct}%, invoking {verb} routine.",
			"{system} reported: {detail}",
		},
		Commands: []string{
			"run-migration", "sync-index", "rotate-keys", "reconcile --fast",
			"snapshot --compress", "audit --level=high", "throttle --limit=200",
		},
		SeverityWeights: DefaultSeverityWeights(),
	}
}

// Extend returns a copy of the banks with the extension's entries appended.
func (banks Banks) Extend(extension BankExtension) Banks {
	return Banks{
		Adjectives:      appendCopy(banks.Adjectives, extension.Adjectives),
		Verbs:           appendCopy(banks.Verbs, extension.Verbs),
		Nouns:           appendCopy(banks.Nouns, extension.Nouns),
		Systems:         appendCopy(banks.Systems, extension.Systems),
		StatusPhrases:   appendCopy(banks.StatusPhrases, extension.StatusPhrases),
		Details:         appendCopy(banks.Details, extension.Details),
		Templates:       appendCopy(banks.Templates, extension.Templates),
		Commands:        appendCopy(banks.Commands, extension.Commands),
		SeverityWeights: append([]WeightedSeverity{}, banks.SeverityWeights...),
	}
}

func appendCopy(base []string, additions []string) []string {
	combined := make([]string, 0, len(base)+len(additions))
	combined = append(combined, base...)
	for _, addition := range additions {
		if len(addition) == 0 {
			continue
		}
		combined = append(combined, addition)
	}
	return combined
}
