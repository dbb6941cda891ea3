package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/oguzkagan/asista/backend/internal/i18n"
)

// handleLanguage handles GET and PUT /api/settings/language.
func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{
			"language": string(s.settings.Language()),
		})

	case http.MethodPut:
		var request struct {
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if err := s.settings.SetLanguage(i18n.Lang(request.Language)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"language": request.Language})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleAvatar handles GET and PUT /api/settings/avatar.
func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{
			"avatar": s.settings.Avatar(),
		})

	case http.MethodPut:
		var request struct {
			Avatar string `json:"avatar"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if err := s.settings.SetAvatar(request.Avatar); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"avatar": request.Avatar})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWeatherKey handles GET and PUT /api/settings/weather-key.
func (s *Server) handleWeatherKey(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{
			"api_key": s.settings.WeatherAPIKey(),
		})

	case http.MethodPut:
		var request struct {
			APIKey string `json:"api_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if err := s.settings.SetWeatherAPIKey(request.APIKey); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"api_key": s.settings.WeatherAPIKey(),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
