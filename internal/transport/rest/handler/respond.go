package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"surveyflow/internal/branching"
	"surveyflow/internal/model"
	"surveyflow/internal/service"
	"surveyflow/internal/surveydef"
)

// maxBodyBytes bounds request bodies; converted survey text is the largest payload
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

// writeServiceError maps service errors to status codes. Unexpected errors are logged and
// reported with a generic message.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verrs branching.ValidationErrors
	var perr *surveydef.ParseError
	switch {
	case errors.Is(err, service.ErrConversionDisabled):
		writeError(w, http.StatusServiceUnavailable, "Survey conversion is not configured")
	case errors.Is(err, service.ErrConversion):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Missing required answers",
			"errors":  verrs,
		})
	case errors.As(err, &perr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid survey definition",
			"path":    perr.Path,
			"reason":  perr.Reason,
		})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, surveydef.ErrInvalidSurvey):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, "Survey not found")
	case errors.Is(err, service.ErrResponseNotFound):
		writeError(w, http.StatusNotFound, "Response not found")
	case errors.Is(err, service.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, "Draft not found")
	case errors.Is(err, service.ErrSurveyReadOnly):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON decodes the request body into v. Unknown fields are tolerated, wrong types are not.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// clientMetadata takes the first X-Forwarded-For hop, else the connection's remote host
func clientMetadata(r *http.Request) model.ClientMetadata {
	addr := ""
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		addr = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if addr == "" {
		addr = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			addr = host
		}
	}
	return model.ClientMetadata{Address: addr, Agent: r.UserAgent()}
}
