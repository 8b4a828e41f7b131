package generator

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	bankFilePathRequiredMessageConstant   = "word bank file path must be provided"
	bankFileReadErrorTemplateConstant     = "failed to read word bank file: %w"
	bankFileParseErrorTemplateConstant    = "failed to parse word bank file: %w"
	bankFileTemplateErrorTemplateConstant = "word bank file template #%d: %w"
)

// ErrBankFilePathRequired indicates an empty word bank file path.
var ErrBankFilePathRequired = errors.New(bankFilePathRequiredMessageConstant)

// BankExtension carries user-supplied entries appended to the built-in banks.
type BankExtension struct {
	Adjectives    []string `yaml:"adjectives"`
	Verbs         []string `yaml:"verbs"`
	Nouns         []string `yaml:"nouns"`
	Systems       []string `yaml:"systems"`
	StatusPhrases []string `yaml:"status_phrases"`
	Details       []string `yaml:"details"`
	Templates     []string `yaml:"templates"`
	Commands      []string `yaml:"commands"`
}

// LoadBankExtension reads a YAML word bank file and validates its templates.
func LoadBankExtension(filePath string) (BankExtension, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return BankExtension{}, ErrBankFilePathRequired
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return BankExtension{}, fmt.Errorf(bankFileReadErrorTemplateConstant, readError)
	}

	return ParseBankExtension(contentBytes)
}

// ParseBankExtension decodes YAML word bank content and validates its templates.
func ParseBankExtension(content []byte) (BankExtension, error) {
	var extension BankExtension
	if unmarshalError := yaml.Unmarshal(content, &extension); unmarshalError != nil {
		return BankExtension{}, fmt.Errorf(bankFileParseErrorTemplateConstant, unmarshalError)
	}

	for templateIndex, template := range extension.Templates {
		if validationError := ValidateTemplate(template); validationError != nil {
			return BankExtension{}, fmt.Errorf(bankFileTemplateErrorTemplateConstant, templateIndex, validationError)
		}
	}

	return extension, nil
}
