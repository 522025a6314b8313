package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

// DraftHandler handles server-side in-progress answer sets
type DraftHandler struct {
	draftSvc *service.DraftService
	logger   *zap.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftSvc *service.DraftService, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{draftSvc: draftSvc, logger: logger}
}

// CreateDraftRequest is the request body for starting a draft
type CreateDraftRequest struct {
	SurveyID string        `json:"surveyId"`
	Answers  model.Answers `json:"answers"`
}

// UpdateDraftRequest replaces a draft's answers
type UpdateDraftRequest struct {
	Answers model.Answers `json:"answers"`
}

// Create handles POST /api/drafts
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SurveyID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: surveyId")
		return
	}

	draft, err := h.draftSvc.Create(r.Context(), req.SurveyID, req.Answers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "draftId": draft.ID, "draft": draft})
}

// Get handles GET /api/drafts/{draftId}
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftSvc.Get(r.Context(), mux.Vars(r)["draftId"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// Update handles PUT /api/drafts/{draftId}
func (h *DraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.draftSvc.Update(r.Context(), mux.Vars(r)["draftId"], req.Answers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// Delete handles DELETE /api/drafts/{draftId}
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.draftSvc.Delete(r.Context(), mux.Vars(r)["draftId"]); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Visibility handles GET /api/drafts/{draftId}/visibility
func (h *DraftHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	vis, err := h.draftSvc.Visibility(r.Context(), mux.Vars(r)["draftId"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, vis)
}

// Submit handles POST /api/drafts/{draftId}/submit
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := h.draftSvc.Submit(r.Context(), mux.Vars(r)["draftId"], clientMetadata(r))
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
