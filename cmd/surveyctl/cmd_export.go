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
	exportSurvey     string
	exportHeaderText bool
)

var exportCmd = &cobra.Command{
	Use:   "export <responses.json>",
	Short: "Convert a saved response listing to CSV",
	Long: `Reads the "responses" array of a GET /api/responses/survey/{id}?answers=true payload
(or a bare array of responses) and writes CSV to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSurvey, "survey", "", "survey definition file used for column order and labels")
	exportCmd.Flags().BoolVar(&exportHeaderText, "header-text", false, "label columns with question text")
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	responses, err := decodeResponses(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var survey *model.Survey
	if exportSurvey != "" {
		if survey, err = surveydef.ParseFile(exportSurvey); err != nil {
			return err
		}
	}
	return service.WriteCSV(cmd.OutOrStdout(), survey, responses, service.ExportOptions{HeaderText: exportHeaderText})
}

func decodeResponses(data []byte) ([]*model.Response, error) {
	var listing struct {
		Responses []*model.Response `json:"responses"`
	}
	if err := json.Unmarshal(data, &listing); err == nil && listing.Responses != nil {
		return listing.Responses, nil
	}
	var responses []*model.Response
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("expected a response listing or an array of responses: %w", err)
	}
	return responses, nil
}
