// Package cmd provides the command-line interface for the Dakota Country Home site.
package cmd

import (
	"os"

	"dakota/config"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dakota",
	Short: "Dakota Country Home site server and hero slideshow.",
	Long: `Serves the Dakota Country Home marketing site with its hero ` +
		`slideshow, ChatKit booking assistant and Stripe checkout. Runs the ` +
		`server when no subcommand is given.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
