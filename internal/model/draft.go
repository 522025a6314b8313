package model

import "time"

// Draft is an in-progress answer set parked between requests
type Draft struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"surveyId"`
	Answers   Answers   `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
