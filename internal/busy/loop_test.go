package busy_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/busyterm/internal/busy"
	"github.com/temirov/busyterm/internal/generator"
	"github.com/temirov/busyterm/internal/timing/testsupport"
)

const (
	testSubtestNameTemplateConstant = "%d_%s"
	testLineTextConstant            = "Cache warmed in 12ms."
	testQuoteConstant               = "\"Keep shipping\" — Anonymous"
	testFarewellSuffixConstant      = "[SYSTEM] Interrupted by user. Exiting.\n"
	testBufferNoticeConstant        = "[SYSTEM] Switched display buffer."
	testMidpointRandomConstant      = 0.5
)

var testStartTime = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

type fixedLineGenerator struct {
	calls int
}

func (lineGenerator *fixedLineGenerator) Line() generator.LogLine {
	lineGenerator.calls++
	return generator.LogLine{
		Timestamp:         testStartTime,
		Severity:          generator.SeverityInfo,
		ProcessIdentifier: 4242,
		Text:              testLineTextConstant,
	}
}

type constantRandomSource struct {
	value float64
}

func (source constantRandomSource) Float64() float64 {
	return source.value
}

type recordingAnimator struct {
	progressDurations []time.Duration
	spinnerDurations  []time.Duration
	stopAfter         int
	cancel            context.CancelFunc
	failure           error
}

func (animator *recordingAnimator) ProgressBar(progressContext context.Context, duration time.Duration) error {
	animator.progressDurations = append(animator.progressDurations, duration)
	return animator.finish(len(animator.progressDurations))
}

func (animator *recordingAnimator) Spinner(spinnerContext context.Context, duration time.Duration) error {
	animator.spinnerDurations = append(animator.spinnerDurations, duration)
	return animator.finish(len(animator.spinnerDurations))
}

func (animator *recordingAnimator) finish(calls int) error {
	if calls >= animator.stopAfter && animator.cancel != nil {
		animator.cancel()
		return animator.failure
	}
	return nil
}

type scriptedQuoteSource struct {
	quote     string
	available bool
	requests  int
}

func (source *scriptedQuoteSource) Next(fetchContext context.Context) (string, bool) {
	source.requests++
	return source.quote, source.available
}

type countingClearer struct {
	clears int
}

func (clearer *countingClearer) Clear(clearContext context.Context) error {
	clearer.clears++
	return nil
}

type failingWriter struct{}

func (failingWriter) Write(data []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

type loopFixture struct {
	clock     *testsupport.ManualClock
	animator  *recordingAnimator
	clearer   *countingClearer
	generator *fixedLineGenerator
	output    *bytes.Buffer
}

func newLoopFixture() loopFixture {
	return loopFixture{
		clock:     testsupport.NewManualClock(testStartTime),
		animator:  &recordingAnimator{},
		clearer:   &countingClearer{},
		generator: &fixedLineGenerator{},
		output:    &bytes.Buffer{},
	}
}

func (fixture loopFixture) dependencies() busy.Dependencies {
	return busy.Dependencies{
		Generator:    fixture.generator,
		Animator:     fixture.animator,
		Clearer:      fixture.clearer,
		Clock:        fixture.clock,
		RandomSource: constantRandomSource{value: testMidpointRandomConstant},
		Writer:       fixture.output,
	}
}

func TestLoopClearsScreenEveryConfiguredLines(testInstance *testing.T) {
	testCases := []struct {
		name           string
		clearEvery     int
		sleeps         int
		expectedClears int
	}{
		{name: "disabled", clearEvery: 0, sleeps: 20, expectedClears: 0},
		{name: "every_five", clearEvery: 5, sleeps: 20, expectedClears: 3},
		{name: "every_line", clearEvery: 1, sleeps: 4, expectedClears: 3},
		{name: "interval_not_reached", clearEvery: 200, sleeps: 50, expectedClears: 0},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			fixture := newLoopFixture()
			configuration := busy.DefaultCommandConfiguration()
			configuration.ClearEvery = testCase.clearEvery

			runContext, cancel := context.WithCancel(context.Background())
			defer cancel()
			fixture.clock.CancelAfterSleeps(testCase.sleeps, cancel)

			loop, creationError := busy.NewLoop(fixture.dependencies(), configuration)
			require.NoError(testInstance, creationError)

			summary, runError := loop.Run(runContext)
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.sleeps, summary.GeneratedLines)
			require.Equal(testInstance, testCase.sleeps, summary.LinesEmitted)
			require.Equal(testInstance, testCase.expectedClears, summary.ScreenClears)
			require.Equal(testInstance, testCase.expectedClears, fixture.clearer.clears)
			require.Equal(testInstance, testCase.expectedClears, strings.Count(fixture.output.String(), testBufferNoticeConstant))
			require.True(testInstance, strings.HasSuffix(fixture.output.String(), testFarewellSuffixConstant))
		})
	}
}

func TestLoopGeneratedLinePacing(testInstance *testing.T) {
	fixture := newLoopFixture()
	runContext, cancel := context.WithCancel(context.Background())
	defer cancel()
	fixture.clock.CancelAfterSleeps(3, cancel)

	loop, creationError := busy.NewLoop(fixture.dependencies(), busy.DefaultCommandConfiguration())
	require.NoError(testInstance, creationError)

	_, runError := loop.Run(runContext)
	require.NoError(testInstance, runError)

	jitterFactor := 0.6
	randomValue := testMidpointRandomConstant
	jitterFactor += randomValue
	expectedPause := time.Duration(float64(275*time.Millisecond) * jitterFactor)
	require.Equal(testInstance, []time.Duration{expectedPause, expectedPause, expectedPause}, fixture.clock.Sleeps())

	lines := strings.Split(strings.TrimSuffix(fixture.output.String(), "\n"), "\n")
	require.Len(testInstance, lines, 5)
	require.Equal(testInstance, "2026-03-04 09:30:00 [INFO] (pid:4242) "+testLineTextConstant, lines[0])
	require.Empty(testInstance, lines[3])
	require.Equal(testInstance, "2026-03-04 09:30:00 [SYSTEM] Interrupted by user. Exiting.", lines[4])
}

func TestLoopRunsAnimations(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		progressChance       float64
		spinnerChance        float64
		progressBarsEnabled  bool
		expectedProgressBars int
		expectedSpinners     int
		expectedLinesEmitted int
		expectedDuration     time.Duration
	}{
		{
			name:                 "progress_bars",
			progressChance:       1,
			progressBarsEnabled:  true,
			expectedProgressBars: 4,
			expectedLinesEmitted: 12,
			expectedDuration:     1650 * time.Millisecond,
		},
		{
			name:                 "spinners",
			spinnerChance:        1,
			progressBarsEnabled:  true,
			expectedSpinners:     4,
			expectedLinesEmitted: 8,
			expectedDuration:     1200 * time.Millisecond,
		},
		{
			name:                 "progress_bars_disabled",
			progressChance:       1,
			spinnerChance:        1,
			expectedSpinners:     4,
			expectedLinesEmitted: 8,
			expectedDuration:     1200 * time.Millisecond,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			fixture := newLoopFixture()
			runContext, cancel := context.WithCancel(context.Background())
			defer cancel()
			fixture.animator.stopAfter = 4
			fixture.animator.cancel = cancel

			configuration := busy.DefaultCommandConfiguration()
			configuration.ProgressChance = testCase.progressChance
			configuration.SpinnerChance = testCase.spinnerChance
			configuration.ProgressBars = testCase.progressBarsEnabled

			loop, creationError := busy.NewLoop(fixture.dependencies(), configuration)
			require.NoError(testInstance, creationError)

			summary, runError := loop.Run(runContext)
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedProgressBars, summary.ProgressBars)
			require.Equal(testInstance, testCase.expectedSpinners, summary.Spinners)
			require.Equal(testInstance, testCase.expectedLinesEmitted, summary.LinesEmitted)
			require.Zero(testInstance, summary.GeneratedLines)
			require.Empty(testInstance, fixture.clock.Sleeps())

			recordedDurations := append(fixture.animator.progressDurations, fixture.animator.spinnerDurations...)
			require.Len(testInstance, recordedDurations, 4)
			for _, duration := range recordedDurations {
				require.Equal(testInstance, testCase.expectedDuration, duration)
			}
		})
	}
}

func TestLoopInterruptedAnimationStillSaysGoodbye(testInstance *testing.T) {
	fixture := newLoopFixture()
	runContext, cancel := context.WithCancel(context.Background())
	defer cancel()
	fixture.animator.stopAfter = 1
	fixture.animator.cancel = cancel
	fixture.animator.failure = context.Canceled

	configuration := busy.DefaultCommandConfiguration()
	configuration.ProgressChance = 1

	loop, creationError := busy.NewLoop(fixture.dependencies(), configuration)
	require.NoError(testInstance, creationError)

	summary, runError := loop.Run(runContext)
	require.NoError(testInstance, runError)
	require.Zero(testInstance, summary.ProgressBars)
	require.Equal(testInstance, "\n2026-03-04 09:30:00 "+testFarewellSuffixConstant, fixture.output.String())
}

func TestLoopQuotes(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		quoteSource            *scriptedQuoteSource
		expectedQuotes         int
		expectedGeneratedLines int
		expectedPause          time.Duration
	}{
		{
			name:           "quote_printed",
			quoteSource:    &scriptedQuoteSource{quote: testQuoteConstant, available: true},
			expectedQuotes: 2,
			expectedPause:  425 * time.Millisecond,
		},
		{
			name:                   "failure_falls_through",
			quoteSource:            &scriptedQuoteSource{},
			expectedGeneratedLines: 2,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			fixture := newLoopFixture()
			runContext, cancel := context.WithCancel(context.Background())
			defer cancel()
			fixture.clock.CancelAfterSleeps(2, cancel)

			dependencies := fixture.dependencies()
			dependencies.Quotes = testCase.quoteSource
			configuration := busy.DefaultCommandConfiguration()
			configuration.Quotes.Chance = 1

			loop, creationError := busy.NewLoop(dependencies, configuration)
			require.NoError(testInstance, creationError)

			summary, runError := loop.Run(runContext)
			require.NoError(testInstance, runError)
			require.Equal(testInstance, 2, testCase.quoteSource.requests)
			require.Equal(testInstance, testCase.expectedQuotes, summary.Quotes)
			require.Equal(testInstance, testCase.expectedGeneratedLines, summary.GeneratedLines)
			require.Equal(testInstance, testCase.expectedQuotes, strings.Count(fixture.output.String(), " QUOTE: "+testQuoteConstant))
			if testCase.expectedPause > 0 {
				require.Equal(testInstance, []time.Duration{testCase.expectedPause, testCase.expectedPause}, fixture.clock.Sleeps())
			}
		})
	}
}

func TestLoopLogsSessionLifecycle(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.InfoLevel)
	fixture := newLoopFixture()
	runContext, cancel := context.WithCancel(context.Background())
	defer cancel()
	fixture.clock.CancelAfterSleeps(1, cancel)

	dependencies := fixture.dependencies()
	dependencies.Logger = zap.New(observedCore)

	loop, creationError := busy.NewLoop(dependencies, busy.DefaultCommandConfiguration())
	require.NoError(testInstance, creationError)
	require.Len(testInstance, loop.SessionID(), 36)

	_, runError := loop.Run(runContext)
	require.NoError(testInstance, runError)

	entries := observedLogs.All()
	require.Len(testInstance, entries, 2)
	for _, entry := range entries {
		require.Equal(testInstance, loop.SessionID(), entry.ContextMap()["session_id"])
	}
	require.Equal(testInstance, int64(1), entries[1].ContextMap()["generated_lines"])
}

func TestLoopReturnsWriteFailures(testInstance *testing.T) {
	fixture := newLoopFixture()
	dependencies := fixture.dependencies()
	dependencies.Writer = failingWriter{}

	loop, creationError := busy.NewLoop(dependencies, busy.DefaultCommandConfiguration())
	require.NoError(testInstance, creationError)

	_, runError := loop.Run(context.Background())
	require.ErrorContains(testInstance, runError, "broken pipe")
}

func TestNewLoopRequiresDependencies(testInstance *testing.T) {
	fixture := newLoopFixture()
	testCases := []struct {
		name          string
		mutate        func(dependencies *busy.Dependencies)
		expectedError error
	}{
		{name: "generator", mutate: func(dependencies *busy.Dependencies) { dependencies.Generator = nil }, expectedError: busy.ErrGeneratorNotConfigured},
		{name: "animator", mutate: func(dependencies *busy.Dependencies) { dependencies.Animator = nil }, expectedError: busy.ErrAnimatorNotConfigured},
		{name: "writer", mutate: func(dependencies *busy.Dependencies) { dependencies.Writer = nil }, expectedError: busy.ErrWriterNotConfigured},
		{name: "random_source", mutate: func(dependencies *busy.Dependencies) { dependencies.RandomSource = nil }, expectedError: busy.ErrRandomSourceNotConfigured},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			dependencies := fixture.dependencies()
			testCase.mutate(&dependencies)
			_, creationError := busy.NewLoop(dependencies, busy.DefaultCommandConfiguration())
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
		})
	}
}
