package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "greenpitch",
	Short: "Serve the Green Pitch sports club site",
	Long: `Green Pitch serves the club's single page site: theme and language
preferences, page and sport navigation, the validated contact form and the
accessibility helpers, rendered server side for every visitor.

Configuration comes from, highest priority first:
  1. command line flags
  2. GREENPITCH_<SECTION>_<OPTION> environment variables (and .env)
  3. the --config file, or .greenpitch.yaml in the working directory
  4. built-in defaults`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .greenpitch.yaml)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}
