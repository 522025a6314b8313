package model

import "time"

// ClientMetadata identifies where a submission came from
type ClientMetadata struct {
	Address string `json:"address"`
	Agent   string `json:"agent"`
}

// Response is one persisted, completed answer set
type Response struct {
	ID          string           `json:"id"`
	SurveyID    string           `json:"surveyId"`
	StartedAt   *time.Time       `json:"startedAt,omitempty"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	IPAddress   string           `json:"ipAddress,omitempty"`
	UserAgent   string           `json:"userAgent,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	AnswerCount int              `json:"answerCount"`
	Answers     []ResponseAnswer `json:"answers,omitempty"`
}

// ResponseAnswer is one stored question/answer pair. Value holds the stored column text.
type ResponseAnswer struct {
	QuestionID string    `json:"questionId"`
	Value      string    `json:"answer"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Answer decodes the stored value
func (ra ResponseAnswer) Answer() AnswerValue {
	return ParseStored(ra.Value)
}

// AnswerFor returns the stored answer for questionID, if any
func (r *Response) AnswerFor(questionID string) (AnswerValue, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a.Answer(), true
		}
	}
	return AnswerValue{}, false
}
