package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "config", "", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logTimeFlag, "log-time", false, "include timestamps in the log lines")
}

var (
	rootCmd = &cobra.Command{
		Use:   "sysinfo",
		Short: "Inspect the host's interface addresses and resources.",
		Long: "sysinfo enumerates the addresses assigned to each network interface\n" +
			"together with a few host facts, either once or over HTTP.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := ReadConf(confPath)
			if err != nil {
				return err
			}
			conf = c

			if cmd.Flags().Changed("log-level") {
				conf.LogLevel = logLevelFlag
			}
			return setupLogging(conf.LogLevel)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get the built version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("built commit: %s\n", builtCommit)
		},
	}

	confPath     string
	logLevelFlag string
	logTimeFlag  bool

	conf *Config

	builtCommit = "dev"
)

func init() {
	// Disable completion please!
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the different sub-commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
