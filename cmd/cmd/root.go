package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scout/cmd/handlers"
	"scout/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Scout is a CLI tool for automated web research.",
	Long: `Scout searches the web for a topic, filters the results down to
text-rich sources, analyzes each one with a local or hosted language
model, and assembles the findings into a structured research report.

Reports are written as plain text, markdown, and JSON artifacts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scout.yaml)")

	rootCmd.AddCommand(handlers.NewResearchCmd())
	rootCmd.AddCommand(handlers.NewClassifyCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}
