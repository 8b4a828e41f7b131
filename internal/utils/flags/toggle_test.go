package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestAddToggleFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		expectedValue   bool
		expectedChanged bool
	}{
		{name: "DefaultFalse", arguments: []string{}, expectedValue: false, expectedChanged: false},
		{name: "ImplicitTrue", arguments: []string{"--use-api"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitYes", arguments: []string{"--use-api", "yes"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitOnUppercase", arguments: []string{"--use-api", "ON"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitNo", arguments: []string{"--use-api", "no"}, expectedValue: false, expectedChanged: true},
		{name: "EqualsForm", arguments: []string{"--use-api=off"}, expectedValue: false, expectedChanged: true},
		{name: "FollowedByFlag", arguments: []string{"--use-api", "--clear-every", "5"}, expectedValue: true, expectedChanged: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}

			var toggle bool
			AddToggleFlag(command.Flags(), &toggle, "use-api", "", false, "Fetch quotes")
			command.Flags().Int("clear-every", 200, "Clear interval")

			require.NoError(t, command.ParseFlags(NormalizeToggleArguments(testCase.arguments)))
			require.Equal(t, testCase.expectedValue, toggle)

			flag := command.Flags().Lookup("use-api")
			require.NotNil(t, flag)
			require.Equal(t, testCase.expectedChanged, flag.Changed)

			parsed, lookupError := command.Flags().GetBool("use-api")
			require.NoError(t, lookupError)
			require.Equal(t, testCase.expectedValue, parsed)
		})
	}
}

func TestAddToggleFlagRejectsInvalidValues(t *testing.T) {
	command := &cobra.Command{}

	var toggle bool
	AddToggleFlag(command.Flags(), &toggle, "no-color", "", false, "Disable color")

	require.Error(t, command.ParseFlags([]string{"--no-color=maybe"}))
	require.False(t, toggle)
	require.False(t, command.Flags().Lookup("no-color").Changed)
}

func TestNormalizeToggleArgumentsLeavesPositionalValues(t *testing.T) {
	command := &cobra.Command{}

	var toggle bool
	AddToggleFlag(command.Flags(), &toggle, "quiet", "q", false, "Quiet")

	require.Equal(t, []string{"-q=no", "--", "--quiet", "yes"}, NormalizeToggleArguments([]string{"-q", "no", "--", "--quiet", "yes"}))
	require.Equal(t, []string{"--quiet", "report.txt"}, NormalizeToggleArguments([]string{"--quiet", "report.txt"}))
	require.Nil(t, NormalizeToggleArguments(nil))
}

func TestToggleUsageHighlightsDefault(t *testing.T) {
	command := &cobra.Command{}

	var toggle bool
	AddToggleFlag(command.Flags(), &toggle, "color", "", true, "Colorize output")

	require.Equal(t, "`<YES|no>` Colorize output", command.Flags().Lookup("color").Usage)
	require.True(t, toggle)
}
