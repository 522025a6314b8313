package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"surveyflow/internal/service"
	"surveyflow/internal/transport/rest/handler"
	"surveyflow/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService    *service.SurveyService
	ResponseService  *service.ResponseService
	ExportService    *service.ExportService
	ConverterService *service.ConverterService
	DraftService     *service.DraftService
	Logger           *zap.Logger
	CORSOrigins      string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := mux.NewRouter()

	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.ConverterService, logger)
	responseHandler := handler.NewResponseHandler(c.ResponseService, c.ExportService, logger)
	draftHandler := handler.NewDraftHandler(c.DraftService, logger)

	// Recover wraps everything else so panics in logging or CORS are caught too
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(c.CORSOrigins))

	r.HandleFunc("/health", handler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/surveys", surveyHandler.Import).Methods("POST", "OPTIONS")
	api.HandleFunc("/surveys/convert", surveyHandler.Convert).Methods("POST", "OPTIONS")
	api.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/surveys/{surveyId}/visibility", surveyHandler.Visibility).Methods("POST", "OPTIONS")

	api.HandleFunc("/responses/submit", responseHandler.Submit).Methods("POST", "OPTIONS")
	api.HandleFunc("/responses/survey/{surveyId}", responseHandler.ListBySurvey).Methods("GET", "OPTIONS")
	api.HandleFunc("/responses/response/{responseId}", responseHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/responses/export/{surveyId}", responseHandler.Export).Methods("GET", "OPTIONS")

	api.HandleFunc("/drafts", draftHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/drafts/{draftId}", draftHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/drafts/{draftId}", draftHandler.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/drafts/{draftId}", draftHandler.Delete).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/drafts/{draftId}/visibility", draftHandler.Visibility).Methods("GET", "OPTIONS")
	api.HandleFunc("/drafts/{draftId}/submit", draftHandler.Submit).Methods("POST", "OPTIONS")

	return r
}
