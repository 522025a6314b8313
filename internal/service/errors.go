package service

import (
	"errors"

	"surveyflow/internal/registry"
)

var (
	// ErrSurveyNotFound is returned when no bundled or imported survey has the id
	ErrSurveyNotFound = registry.ErrNotFound
	// ErrResponseNotFound is returned for unknown response ids
	ErrResponseNotFound = errors.New("response not found")
	// ErrDraftNotFound is returned for unknown or expired drafts
	ErrDraftNotFound = errors.New("draft not found")
	// ErrSurveyReadOnly is returned when an import would replace a bundled survey
	ErrSurveyReadOnly = errors.New("survey is bundled and cannot be replaced")
	// ErrInvalidInput marks requests rejected before any work was done
	ErrInvalidInput = errors.New("invalid input")
)
