package main

import (
	"os"

	"surveyflow/internal/model"
	"surveyflow/internal/surveydef"
)

// loadSurveys parses a single definition file or every definition in a directory
func loadSurveys(path string) ([]*model.Survey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return surveydef.LoadDir(path)
	}
	s, err := surveydef.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return []*model.Survey{s}, nil
}
