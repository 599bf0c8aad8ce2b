package rest

import (
	"net/http"

	"listenerlab/internal/config"
	"listenerlab/internal/metrics"
	"listenerlab/internal/service"
	"listenerlab/internal/transport/rest/handler"
	"listenerlab/internal/transport/rest/middleware"
	"listenerlab/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Metrics        *metrics.Recorder
	Gatherer       prometheus.Gatherer
	AuthService    *service.AuthService
	SurveyService  *service.SurveyService
	SessionService *service.SessionService
	ProfileService *service.ProfileService
	ReportService  *service.ReportService
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	sessionHandler := handler.NewSessionHandler(c.SessionService, logger)
	profileHandler := handler.NewProfileHandler(c.ProfileService, logger)
	reportHandler := handler.NewReportHandler(c.ReportService, logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))
	r.Use(middleware.TraceID)
	r.Use(middleware.AccessLog(logger, c.Metrics))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/survey/questions", surveyHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/personas", surveyHandler.Personas).Methods("GET", "OPTIONS")
	v1.HandleFunc("/profiles", profileHandler.Score).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/reports/population", reportHandler.Population).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/submissions/{id}/profile", profileHandler.ForSubmission).Methods("GET", "OPTIONS")

	// Respondent routes (require a token for the session in the path)
	respondentRoutes := v1.NewRoute().Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/sessions/{sessionId}/question/current", sessionHandler.Current).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/sessions/{sessionId}/responses/{questionId:[0-9]+}", sessionHandler.Answer).Methods("PUT", "OPTIONS")
	respondentRoutes.HandleFunc("/sessions/{sessionId}/complete", sessionHandler.Complete).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	allowedOrigins, allowedMethods, allowedHeaders := "*", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, Authorization"
	if cfg != nil {
		allowedOrigins = cfg.CORSAllowedOrigins
		allowedMethods = cfg.CORSAllowedMethods
		allowedHeaders = cfg.CORSAllowedHeaders
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
