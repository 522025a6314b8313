package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"surveyflow/internal/surveydef"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <file|dir>...",
	Short: "Parse survey definitions and report lint issues",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat lint issues as failures")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, arg := range args {
		surveys, err := loadSurveys(arg)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", arg, err)
			failed++
			continue
		}
		for _, s := range surveys {
			issues := surveydef.Lint(s)
			if len(issues) == 0 {
				fmt.Fprintf(out, "ok   %s (%d sections, %d questions)\n", s.ID, len(s.Sections), len(s.Questions()))
				continue
			}
			fmt.Fprintf(out, "warn %s: %d issue(s)\n", s.ID, len(issues))
			for _, issue := range issues {
				fmt.Fprintf(out, "     %s\n", issue)
			}
			if checkStrict {
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d definition(s) failed", failed)
	}
	return nil
}
