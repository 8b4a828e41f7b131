package busy

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/busyterm/internal/animation"
	"github.com/temirov/busyterm/internal/execshell"
	"github.com/temirov/busyterm/internal/generator"
	"github.com/temirov/busyterm/internal/quotes"
	"github.com/temirov/busyterm/internal/screen"
	"github.com/temirov/busyterm/internal/timing"
	"github.com/temirov/busyterm/internal/ui"
	"github.com/temirov/busyterm/internal/utils"
	"github.com/temirov/busyterm/internal/utils/flags"
)

const (
	commandUseConstant                     = "busyterm"
	commandShortDescriptionConstant        = "Stream synthetic log lines to make a terminal look busy"
	commandLongDescriptionConstant         = "busyterm prints an endless stream of plausible service logs, progress bars, and spinners until interrupted."
	useAPIFlagNameConstant                 = "use-api"
	useAPIFlagUsageConstant                = "Occasionally print a quote fetched from the web."
	noColorFlagNameConstant                = "no-color"
	noColorFlagUsageConstant               = "Disable colored output."
	clearEveryFlagNameConstant             = "clear-every"
	clearEveryFlagUsageConstant            = "Clear the screen every N lines (0 disables)."
	seedFlagNameConstant                   = "seed"
	seedFlagUsageConstant                  = "Seed for the random source (0 seeds from the runtime)."
	wordBanksFlagNameConstant              = "word-banks"
	wordBanksFlagUsageConstant             = "Optional YAML file with extra words, templates, and commands."
	quotesUnavailableMessageConstant       = "remote quotes unavailable; continuing without API"
	wordBanksLoadErrorTemplateConstant     = "unable to load word banks: %w"
	generatorCreationErrorTemplateConstant = "unable to create line generator: %w"
	logFieldErrorDetailConstant            = "reason"
	randomStreamOffsetConstant             = 0x5bd1e995
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ContextDecorator derives the loop context; the default cancels on SIGINT and SIGTERM.
type ContextDecorator func(parentContext context.Context) (context.Context, context.CancelFunc)

// CommandBuilder assembles the busy stream command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Clock                 timing.Clock
	CommandRunner         execshell.CommandRunner
	IndicatorFactory      animation.IndicatorFactory
	TerminalWidth         animation.TerminalWidthProvider
	ColorSupported        func() bool
	ContextDecorator      ContextDecorator
}

// Build constructs the busy stream command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	var useAPI bool
	var noColor bool
	flags.AddToggleFlag(command.Flags(), &useAPI, useAPIFlagNameConstant, "", false, useAPIFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &noColor, noColorFlagNameConstant, "", false, noColorFlagUsageConstant)
	command.Flags().Int(clearEveryFlagNameConstant, DefaultCommandConfiguration().ClearEvery, clearEveryFlagUsageConstant)
	command.Flags().Uint64(seedFlagNameConstant, 0, seedFlagUsageConstant)
	command.Flags().String(wordBanksFlagNameConstant, "", wordBanksFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, flagError := builder.applyFlags(command, builder.resolveConfiguration())
	if flagError != nil {
		return flagError
	}
	if validationError := configuration.Validate(); validationError != nil {
		return validationError
	}

	logger := builder.resolveLogger()
	clock := builder.resolveClock()
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	banks := generator.DefaultBanks()
	if len(configuration.WordBanks) > 0 {
		extension, loadError := generator.LoadBankExtension(configuration.WordBanks)
		if loadError != nil {
			return fmt.Errorf(wordBanksLoadErrorTemplateConstant, loadError)
		}
		banks = banks.Extend(extension)
	}

	lineGenerator, generatorError := generator.NewGenerator(generator.Options{
		Banks:        banks,
		RandomSource: generator.NewRandomSource(configuration.Seed),
		Clock:        clock,
	})
	if generatorError != nil {
		return fmt.Errorf(generatorCreationErrorTemplateConstant, generatorError)
	}

	loopRandomSeed := uint64(0)
	if configuration.Seed != 0 {
		loopRandomSeed = configuration.Seed + randomStreamOffsetConstant
	}
	loopRandomSource := generator.NewRandomSource(loopRandomSeed)

	palette := ui.NewPalette(!configuration.NoColor && builder.colorSupported())

	animator := animation.NewAnimator(animation.Options{
		Writer:           outputWriter,
		Palette:          palette,
		Clock:            clock,
		RandomSource:     loopRandomSource,
		TerminalWidth:    builder.resolveTerminalWidth(),
		IndicatorFactory: builder.IndicatorFactory,
	})

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	dependencies := Dependencies{
		Generator:    lineGenerator,
		Animator:     animator,
		Clearer:      screen.NewClearer(commandRunner, outputWriter, logger),
		Palette:      palette,
		Clock:        clock,
		RandomSource: loopRandomSource,
		Writer:       outputWriter,
		Logger:       logger,
	}
	if quoteSource := builder.resolveQuoteSource(configuration.Quotes, logger); quoteSource != nil {
		dependencies.Quotes = quoteSource
	}

	loop, loopError := NewLoop(dependencies, configuration)
	if loopError != nil {
		return loopError
	}

	loopContext, cancel := builder.decorateContext(command.Context())
	defer cancel()

	_, runError := loop.Run(loopContext)
	return runError
}

// resolveQuoteSource returns nil when quotes are disabled or the endpoint is unusable.
func (builder *CommandBuilder) resolveQuoteSource(configuration QuoteConfiguration, logger *zap.Logger) QuoteSource {
	if !configuration.UseAPI {
		return nil
	}

	client, clientError := quotes.NewClient(configuration.Endpoint, quotes.WithTimeout(configuration.Timeout))
	if clientError != nil {
		logger.Warn(quotesUnavailableMessageConstant, zap.String(logFieldErrorDetailConstant, clientError.Error()))
		return nil
	}

	return quotes.NewBestEffortSource(client, client.Endpoint(), logger)
}

func (builder *CommandBuilder) applyFlags(command *cobra.Command, configuration CommandConfiguration) (CommandConfiguration, error) {
	flagSet := command.Flags()

	if flagSet.Changed(useAPIFlagNameConstant) {
		useAPI, lookupError := flagSet.GetBool(useAPIFlagNameConstant)
		if lookupError != nil {
			return configuration, lookupError
		}
		configuration.Quotes.UseAPI = useAPI
	}

	if flagSet.Changed(noColorFlagNameConstant) {
		noColor, lookupError := flagSet.GetBool(noColorFlagNameConstant)
		if lookupError != nil {
			return configuration, lookupError
		}
		configuration.NoColor = noColor
	}

	if flagSet.Changed(clearEveryFlagNameConstant) {
		clearEvery, lookupError := flagSet.GetInt(clearEveryFlagNameConstant)
		if lookupError != nil {
			return configuration, lookupError
		}
		configuration.ClearEvery = clearEvery
	}

	if flagSet.Changed(seedFlagNameConstant) {
		seed, lookupError := flagSet.GetUint64(seedFlagNameConstant)
		if lookupError != nil {
			return configuration, lookupError
		}
		configuration.Seed = seed
	}

	if flagSet.Changed(wordBanksFlagNameConstant) {
		wordBanks, lookupError := flagSet.GetString(wordBanksFlagNameConstant)
		if lookupError != nil {
			return configuration, lookupError
		}
		configuration.WordBanks = wordBanks
	}

	return configuration.Sanitize(), nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveClock() timing.Clock {
	if builder.Clock == nil {
		return timing.NewSystemClock()
	}
	return builder.Clock
}

func (builder *CommandBuilder) resolveTerminalWidth() animation.TerminalWidthProvider {
	if builder.TerminalWidth == nil {
		return animation.StandardOutputWidth
	}
	return builder.TerminalWidth
}

func (builder *CommandBuilder) colorSupported() bool {
	if builder.ColorSupported == nil {
		return ui.ColorSupported()
	}
	return builder.ColorSupported()
}

func (builder *CommandBuilder) decorateContext(parentContext context.Context) (context.Context, context.CancelFunc) {
	if parentContext == nil {
		parentContext = context.Background()
	}
	if builder.ContextDecorator != nil {
		return builder.ContextDecorator(parentContext)
	}
	return signal.NotifyContext(parentContext, os.Interrupt, syscall.SIGTERM)
}
