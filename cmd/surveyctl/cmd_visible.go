package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
	"surveyflow/internal/surveydef"
)

var (
	visibleAnswers     string
	visibleAnswersFile string
)

var visibleCmd = &cobra.Command{
	Use:   "visible <survey-file>",
	Short: "Print the questions shown for an answer set",
	Long: `Evaluates the survey's branching rules against the given answers and prints the
visible question ids with any visible required question still missing an answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runVisible,
}

func init() {
	visibleCmd.Flags().StringVar(&visibleAnswers, "answers", "{}", "answers as a JSON object of question id to string or string array")
	visibleCmd.Flags().StringVar(&visibleAnswersFile, "answers-file", "", "read answers from a JSON file instead")
}

func runVisible(cmd *cobra.Command, args []string) error {
	survey, err := surveydef.ParseFile(args[0])
	if err != nil {
		return err
	}

	raw := []byte(visibleAnswers)
	if visibleAnswersFile != "" {
		if raw, err = os.ReadFile(visibleAnswersFile); err != nil {
			return err
		}
	}
	var answers model.Answers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	vis := service.Evaluate(survey, answers)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		SurveyID           string            `json:"surveyId"`
		VisibleQuestionIDs []string          `json:"visibleQuestionIds"`
		Missing            map[string]string `json:"missing,omitempty"`
		Complete           bool              `json:"complete"`
	}{vis.SurveyID, vis.VisibleQuestionIDs, vis.Errors, vis.Complete})
}
