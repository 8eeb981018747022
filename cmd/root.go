package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/regex"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile   string
	timeout   time.Duration
	verbose   bool
	colorFlag string

	logger *zap.Logger
)

// errFailed is returned once the failure has already been reported to the user.
var errFailed = errors.New("trex: failed")

var rootCmd = &cobra.Command{
	Use:              "trex [expression]",
	Short:            "trex - draw regular expressions as railroad diagrams in the terminal",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return err
		}
		if colorFlag != "" {
			if _, err := formatter.ParseColorMode(colorFlag); err != nil {
				return err
			}
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// Format: trex <expression> => behaves like the parse subcommand
		parseCmd.Run(parseCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (default "+regex.DefaultConfigPath+" when present)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for batch and watch")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color output: auto, always or never (overrides the config file)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// configPath returns the --config value, falling back to the default file
// when it exists in the working directory.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(regex.DefaultConfigPath); err == nil {
		return regex.DefaultConfigPath
	}
	return ""
}

// loadEngine builds the engine from the configuration file with the --color
// override applied. It also switches fatih/color so that error reports follow
// the same mode.
func loadEngine(path, colorOverride string) (*regex.Engine, error) {
	config, err := regex.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if colorOverride != "" {
		config.Color = colorOverride
	}

	engine, err := regex.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	mode, _ := config.ColorMode()
	switch mode {
	case formatter.ColorAlways:
		color.NoColor = false
	case formatter.ColorNever:
		color.NoColor = true
	}
	return engine, nil
}

// mustLoadEngine is loadEngine for command handlers.
func mustLoadEngine() *regex.Engine {
	engine, err := loadEngine(configPath(), colorFlag)
	if err != nil {
		logger.Fatal("Failed to initialize engine", zap.Error(err))
	}
	return engine
}

func exitOnFailure(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, errFailed) {
		logger.Error("Command failed", zap.Error(err))
	}
	os.Exit(1)
}
