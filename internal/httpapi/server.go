// Package httpapi provides the localhost REST and WebSocket surface the
// UI shell talks to.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/oguzkagan/asista/backend/internal/alarm"
	apperrors "github.com/oguzkagan/asista/backend/internal/errors"
	"github.com/oguzkagan/asista/backend/internal/notes"
	"github.com/oguzkagan/asista/backend/internal/settings"
)

// Server bundles the stores behind the REST handlers.
type Server struct {
	alarms   *alarm.Store
	notes    *notes.Store
	settings *settings.Service
	hub      *Hub
}

// NewServer creates the API server over the given stores and hub.
func NewServer(alarms *alarm.Store, noteStore *notes.Store, settingsSvc *settings.Service, hub *Hub) *Server {
	return &Server{
		alarms:   alarms,
		notes:    noteStore,
		settings: settingsSvc,
		hub:      hub,
	}
}

// Routes builds the HTTP handler with CORS applied to every route.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/alarms", s.handleAlarms)
	mux.HandleFunc("/api/alarms/", s.handleAlarmByID)
	mux.HandleFunc("/api/notes", s.handleNotes)
	mux.HandleFunc("/api/notes/", s.handleNoteByID)
	mux.HandleFunc("/api/settings/language", s.handleLanguage)
	mux.HandleFunc("/api/settings/avatar", s.handleAvatar)
	mux.HandleFunc("/api/settings/weather-key", s.handleWeatherKey)
	mux.HandleFunc("/ws", s.hub.handleWebSocket)

	return corsMiddleware(mux)
}

// corsMiddleware lets the UI shell reach the API from its own origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "asista-core",
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps an application error to an HTTP reply.
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{}
	status := http.StatusInternalServerError

	if appErr, ok := err.(*apperrors.AppError); ok {
		resp.Error.Code = string(appErr.Code)
		resp.Error.Message = appErr.Message
		switch appErr.Code {
		case apperrors.ErrAlarmMissingField, apperrors.ErrNoteEmpty,
			apperrors.ErrLanguageInvalid, apperrors.ErrValidation, apperrors.ErrInvalid:
			status = http.StatusBadRequest
		case apperrors.ErrNotFound, apperrors.ErrAlarmNotFound, apperrors.ErrNoteNotFound:
			status = http.StatusNotFound
		}
	} else {
		resp.Error.Code = string(apperrors.ErrInternal)
		resp.Error.Message = err.Error()
	}

	writeJSON(w, status, resp)
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, apperrors.New(apperrors.ErrInvalid, message))
}
