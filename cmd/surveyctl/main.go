// Command surveyctl checks survey definitions and evaluates branching offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "surveyctl",
	Short:         "Survey definition tooling",
	Long:          `Validate survey definition files, preview which questions an answer set shows, and export responses to CSV.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(checkCmd, visibleCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
