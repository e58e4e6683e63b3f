package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indobig/sizecompare/app_config"
	"github.com/indobig/sizecompare/version"
)

const DEFAULT_CONFIG_FILENAME = "configs/sizecompare.toml"

var (
	configFilename string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "sizecompare",
	Short: "Compare the size of any country with Indonesia",
	Long: `sizecompare overlays the outline of a reference country (Indonesia by
default), rescaled to the area of any other country and centered on it, and
reports how many times bigger or smaller the reference is.

Run 'sizecompare serve' for the JSON API used by the map UI, or use the
one-shot commands from a terminal.`,
	Version:       version.APP_VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFilename, "config", "f", DEFAULT_CONFIG_FILENAME, "config file to use")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "override config and turn on debug logging")

	rootCmd.AddCommand(serveCmd, compareCmd, countriesCmd, atCmd)
}

// loadConfig reads the config file. A missing default config file is fine:
// defaults and the environment are used instead.
func loadConfig(cmd *cobra.Command) (*app_config.Config, error) {
	filename := configFilename
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			filename = ""
		}
	}

	cfg, err := app_config.LoadConfig(filename, app_config.GetDefaultConfig())
	if err != nil {
		return nil, err
	}

	if debugFlag {
		cfg.Logging.Debug = true
	}

	return cfg, nil
}

// cliLogger is used by the one-shot commands: no log file, and only
// warnings unless --debug, so stdout stays clean.
func cliLogger(cfg *app_config.Config, output io.Writer) *logrus.Logger {
	logConfig := cfg.Logging
	logConfig.Filename = ""

	logger := logConfig.CreateLogger(false, false)
	logger.SetOutput(output)
	if !logConfig.Debug {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
