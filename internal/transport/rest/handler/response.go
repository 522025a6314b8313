package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

// ResponseHandler handles response submission, lookup and export
type ResponseHandler struct {
	responseSvc *service.ResponseService
	exportSvc   *service.ExportService
	logger      *zap.Logger
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService, exportSvc *service.ExportService, logger *zap.Logger) *ResponseHandler {
	return &ResponseHandler{
		responseSvc: responseSvc,
		exportSvc:   exportSvc,
		logger:      logger,
	}
}

// SubmitResponseRequest is the request body for submitting a completed survey
type SubmitResponseRequest struct {
	SurveyID  string        `json:"surveyId"`
	Answers   model.Answers `json:"answers"`
	StartedAt *time.Time    `json:"startedAt"`
}

// Submit handles POST /api/responses/submit
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitResponseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SurveyID == "" || req.Answers == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: surveyId and answers")
		return
	}

	id, err := h.responseSvc.Submit(r.Context(), service.Submission{
		SurveyID:  req.SurveyID,
		Answers:   req.Answers,
		Client:    clientMetadata(r),
		StartedAt: req.StartedAt,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Survey response saved successfully",
		"responseId": id,
	})
}

// ListBySurvey handles GET /api/responses/survey/{surveyId}
func (h *ResponseHandler) ListBySurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	withAnswers := r.URL.Query().Get("answers") == "true"

	responses, err := h.responseSvc.List(r.Context(), surveyID, withAnswers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"count":     len(responses),
		"responses": responses,
	})
}

// Get handles GET /api/responses/response/{responseId}
func (h *ResponseHandler) Get(w http.ResponseWriter, r *http.Request) {
	responseID := mux.Vars(r)["responseId"]

	resp, err := h.responseSvc.Get(r.Context(), responseID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	answers := resp.Answers
	if answers == nil {
		answers = []model.ResponseAnswer{}
	}
	head := *resp
	head.Answers = nil
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"response": head,
		"answers":  answers,
	})
}

// Export handles GET /api/responses/export/{surveyId}
func (h *ResponseHandler) Export(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	opts := service.ExportOptions{HeaderText: r.URL.Query().Get("header") == "text"}

	// Buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.exportSvc.Export(r.Context(), surveyID, &buf, opts); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="survey-responses-%s.csv"`, surveyID))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
