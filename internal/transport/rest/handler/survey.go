package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc    *service.SurveyService
	converterSvc *service.ConverterService
	logger       *zap.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, converterSvc *service.ConverterService, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveySvc:    surveySvc,
		converterSvc: converterSvc,
		logger:       logger,
	}
}

// ConvertSurveyRequest is the request body for converting survey text
type ConvertSurveyRequest struct {
	SurveyText string `json:"surveyText"`
	SurveyID   string `json:"surveyId"`
}

// VisibilityRequest carries the current answer store
type VisibilityRequest struct {
	Answers model.Answers `json:"answers"`
}

// List handles GET /api/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "surveys": surveys})
}

// Get handles GET /api/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Import handles POST /api/surveys
func (h *SurveyHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, issues, err := h.surveySvc.Import(r.Context(), data)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"survey":  survey,
		"issues":  issues,
	})
}

// Delete handles DELETE /api/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Delete(r.Context(), mux.Vars(r)["surveyId"]); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Convert handles POST /api/surveys/convert
func (h *SurveyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertSurveyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	survey, err := h.converterSvc.Convert(r.Context(), req.SurveyText, req.SurveyID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "survey": survey})
}

// Visibility handles POST /api/surveys/{surveyId}/visibility
func (h *SurveyHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req VisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vis, err := h.surveySvc.Visibility(r.Context(), surveyID, req.Answers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, vis)
}
