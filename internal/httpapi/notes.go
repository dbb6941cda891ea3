package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// handleNotes handles GET and POST /api/notes.
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"notes": s.notes.List(),
		})

	case http.MethodPost:
		var request noteRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		note, err := s.notes.Create(request.Title, request.Body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{"note": note})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleNoteByID handles PUT/DELETE /api/notes/{id} and
// POST /api/notes/{id}/toggle.
func (s *Server) handleNoteByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case action == "toggle" && r.Method == http.MethodPost:
		note, err := s.notes.ToggleDone(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})

	case action == "" && r.Method == http.MethodPut:
		var request noteRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		note, err := s.notes.Update(id, request.Title, request.Body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})

	case action == "" && r.Method == http.MethodDelete:
		s.notes.Delete(id)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
