// Package cmd provides the sheetform command-line interface.
//
// Configuration precedence, highest first:
//  1. command-line flags (--log-level, --addr, ...)
//  2. SHEETFORM_<KEY> environment variables (SHEETFORM_SUBMIT_URL, SHEETFORM_FETCH_ATTACH_ACTION, ...)
//  3. the config file: --config, SHEETFORM_CONFIG_FILE or ./.sheetform.yml
//  4. built-in defaults
package cmd

import (
	"fmt"
	"os"

	"sheetform/internal/config"
	"sheetform/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sheetform",
	Short: "Relay a contact form to a spreadsheet-backed script endpoint",
	Long: `sheetform collects the five contact-form fields (name, email, phone,
subject, message) and forwards them as one form-encoded POST to a
spreadsheet script. It can also read back every stored row.

  sheetform serve      Serve the contact form over HTTP
  sheetform submit     Submit one form from flags or interactive prompts
  sheetform fetch      Print every stored row`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLevel(viper.GetString("log_level")); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	config.Configure(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .sheetform.yml, can also use SHEETFORM_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(config.EnvPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sheetform")
	}

	// A missing file is fine; env and flags still apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}
