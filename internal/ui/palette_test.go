package ui_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/busyterm/internal/generator"
	"github.com/temirov/busyterm/internal/ui"
)

const (
	testPaletteTextConstant       = "2024-03-05 14:30:15 [INFO] (pid:4242) Indexing shard... OK."
	testPaletteSubtestTemplate    = "%d_%s"
	testRedForegroundSequence     = "\x1b[31m"
	testYellowForegroundSequence  = "\x1b[33m"
	testCyanForegroundSequence    = "\x1b[36m"
	testWhiteForegroundSequence   = "\x1b[37m"
	testGreenForegroundSequence   = "\x1b[32m"
	testMagentaForegroundSequence = "\x1b[35m"
	testResetSequence             = "\x1b[0m"
)

func TestPaletteColorsBySeverity(testInstance *testing.T) {
	testCases := []struct {
		severity         generator.Severity
		expectedSequence string
	}{
		{severity: generator.SeverityError, expectedSequence: testRedForegroundSequence},
		{severity: generator.SeverityCritical, expectedSequence: testRedForegroundSequence},
		{severity: generator.SeverityWarn, expectedSequence: testYellowForegroundSequence},
		{severity: generator.SeverityDebug, expectedSequence: testCyanForegroundSequence},
		{severity: generator.SeverityInfo, expectedSequence: testWhiteForegroundSequence},
		{severity: generator.SeverityTrace, expectedSequence: testWhiteForegroundSequence},
	}

	palette := ui.NewPalette(true)
	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testPaletteSubtestTemplate, testCaseIndex, testCase.severity), func(testInstance *testing.T) {
			colored := palette.Severity(testCase.severity, testPaletteTextConstant)
			require.Equal(testInstance, testCase.expectedSequence+testPaletteTextConstant+testResetSequence, colored)
		})
	}
}

func TestPaletteNoticeColors(testInstance *testing.T) {
	palette := ui.NewPalette(true)
	require.Equal(testInstance, testGreenForegroundSequence+testPaletteTextConstant+testResetSequence, palette.Progress(testPaletteTextConstant))
	require.Equal(testInstance, testCyanForegroundSequence+testPaletteTextConstant+testResetSequence, palette.System(testPaletteTextConstant))
	require.Equal(testInstance, testMagentaForegroundSequence+testPaletteTextConstant+testResetSequence, palette.Quote(testPaletteTextConstant))
}

func TestDisabledPaletteReturnsPlainText(testInstance *testing.T) {
	palette := ui.NewPalette(false)
	require.False(testInstance, palette.Enabled())

	for _, severity := range generator.Severities() {
		require.Equal(testInstance, testPaletteTextConstant, palette.Severity(severity, testPaletteTextConstant))
	}
	require.Equal(testInstance, testPaletteTextConstant, palette.Progress(testPaletteTextConstant))
	require.Equal(testInstance, testPaletteTextConstant, palette.System(testPaletteTextConstant))
	require.Equal(testInstance, testPaletteTextConstant, palette.Quote(testPaletteTextConstant))
}
