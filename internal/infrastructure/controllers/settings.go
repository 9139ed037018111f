package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// loadSettings reads --config, or the first configuration file found in the default
// locations, or falls back to the defaults when there is none.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			logger.Infof("No config file found, using defaults")
			return entities.DefaultSettings(), nil
		}
	}

	logger.Infof("Using config file: %s", cfgPath)
	return entities.NewSettings(cfgPath)
}
