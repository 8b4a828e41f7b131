package generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/busyterm/internal/generator"
)

const (
	testBankFileNameConstant     = "banks.yaml"
	testValidBankContentConstant = `
nouns:
  - quorum ledger
systems:
  - billing daemon
templates:
  - "Draining {noun} on {system}."
commands:
  - drain --graceful
`
	testInvalidTemplateBankContentConstant = `
templates:
  - "Draining {nonsense}."
`
	testMalformedBankContentConstant = "nouns: [unterminated"
)

func TestLoadBankExtensionExtendsDefaults(testInstance *testing.T) {
	bankFilePath := filepath.Join(testInstance.TempDir(), testBankFileNameConstant)
	require.NoError(testInstance, os.WriteFile(bankFilePath, []byte(testValidBankContentConstant), 0o600))

	extension, loadError := generator.LoadBankExtension(bankFilePath)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"quorum ledger"}, extension.Nouns)

	defaultBanks := generator.DefaultBanks()
	extendedBanks := defaultBanks.Extend(extension)
	require.Len(testInstance, extendedBanks.Nouns, len(defaultBanks.Nouns)+1)
	require.Len(testInstance, extendedBanks.Templates, len(defaultBanks.Templates)+1)
	require.Contains(testInstance, extendedBanks.Commands, "drain --graceful")
	require.Len(testInstance, generator.DefaultBanks().Nouns, len(defaultBanks.Nouns))

	extendedGenerator, creationError := generator.NewGenerator(generator.Options{Banks: extendedBanks})
	require.NoError(testInstance, creationError)
	require.NotEmpty(testInstance, extendedGenerator.Generate())
}

func TestLoadBankExtensionRejectsInvalidContent(testInstance *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "unknown_placeholder", content: testInvalidTemplateBankContentConstant},
		{name: "malformed_yaml", content: testMalformedBankContentConstant},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, parseError := generator.ParseBankExtension([]byte(testCase.content))
			require.Error(testInstance, parseError)
		})
	}

	_, missingPathError := generator.LoadBankExtension(" ")
	require.ErrorIs(testInstance, missingPathError, generator.ErrBankFilePathRequired)
}
