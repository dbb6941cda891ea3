// Package settings provides typed access to the small pieces of user
// state every screen shares: UI language, profile avatar and the weather
// API credential.
package settings

import (
	"strings"

	"github.com/oguzkagan/asista/backend/internal/errors"
	"github.com/oguzkagan/asista/backend/internal/i18n"
	"github.com/oguzkagan/asista/backend/internal/kvstore"
	"github.com/oguzkagan/asista/backend/internal/logging"
)

// Fixed persistence keys.
const (
	KeyLanguage      = "app_language"
	KeyAvatar        = "profile_avatar"
	KeyWeatherAPIKey = "weather_api_key"
)

// Service reads and writes settings through the record store. Reads
// treat absent values and storage failures alike: the default wins.
type Service struct {
	kv *kvstore.Store
}

// NewService creates a settings service over the given record store.
func NewService(kv *kvstore.Store) *Service {
	return &Service{kv: kv}
}

// Language returns the chosen UI language, defaulting to i18n.Default
// when unset, unreadable or invalid.
func (s *Service) Language() i18n.Lang {
	var lang string
	ok, err := s.kv.GetJSON(KeyLanguage, &lang)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to read language, using default")
		return i18n.Default
	}
	if !ok || !i18n.Lang(lang).IsValid() {
		return i18n.Default
	}
	return i18n.Lang(lang)
}

// SetLanguage stores the UI language. Unsupported values are rejected.
func (s *Service) SetLanguage(lang i18n.Lang) error {
	if !lang.IsValid() {
		return errors.New(errors.ErrLanguageInvalid, "unsupported language "+string(lang))
	}
	return s.kv.SetJSON(KeyLanguage, string(lang))
}

// Avatar returns the stored profile image reference, empty when unset.
func (s *Service) Avatar() string {
	var uri string
	ok, err := s.kv.GetJSON(KeyAvatar, &uri)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to read avatar")
		return ""
	}
	if !ok {
		return ""
	}
	return uri
}

// SetAvatar stores the profile image reference.
func (s *Service) SetAvatar(uri string) error {
	return s.kv.SetJSON(KeyAvatar, uri)
}

// WeatherAPIKey returns the stored weather credential, empty when unset.
func (s *Service) WeatherAPIKey() string {
	var key string
	ok, err := s.kv.GetJSON(KeyWeatherAPIKey, &key)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to read weather api key")
		return ""
	}
	if !ok {
		return ""
	}
	return key
}

// SetWeatherAPIKey trims and stores the weather credential. Blank input
// is ignored, keeping whatever was stored before.
func (s *Service) SetWeatherAPIKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil
	}
	return s.kv.SetJSON(KeyWeatherAPIKey, trimmed)
}
