package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oguzkagan/asista/backend/internal/i18n"
)

// handleAlarms handles GET and POST /api/alarms.
func (s *Server) handleAlarms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"alarms": s.alarms.List(),
		})

	case http.MethodPost:
		var request struct {
			Day    string `json:"day"`
			Hour   string `json:"hour"`
			Minute string `json:"minute"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		catalog := i18n.Messages(s.settings.Language())

		record, err := s.alarms.Add(request.Day, request.Hour, request.Minute)
		if err != nil {
			// Surface the localized "missing info" message alongside the code
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error": map[string]string{
					"code":    "ALARM_MISSING_FIELD",
					"title":   catalog.AlarmMissingTitle,
					"message": catalog.AlarmMissingBody,
				},
			})
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"alarm":   record,
			"title":   catalog.AlarmScheduledTitle,
			"message": catalog.AlarmScheduledBody(record.Day, record.Hour, record.Minute),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleAlarmByID handles DELETE /api/alarms/{id}.
func (s *Server) handleAlarmByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/alarms/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		// Deleting an unknown id is a no-op, mirroring the store contract
		s.alarms.Delete(id)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
