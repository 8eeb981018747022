package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/trex/regex"
)

// initCmd: trex init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(afero.NewOsFs(), cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(fs afero.Fs, configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = regex.DefaultConfigPath
	}
	if err := regex.WriteConfigFS(fs, configurationPath, regex.DefaultConfig()); err != nil {
		return "", err
	}
	return configurationPath, nil
}
