// Package settings tests for typed settings access.
package settings

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/oguzkagan/asista/backend/internal/errors"
	"github.com/oguzkagan/asista/backend/internal/i18n"
	"github.com/oguzkagan/asista/backend/internal/kvstore"
)

// setupTestService creates a settings service over an in-memory store.
func setupTestService(t *testing.T) (*kvstore.Store, *Service) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	kv, err := kvstore.New(db)
	if err != nil {
		t.Fatalf("Failed to create record store: %v", err)
	}
	return kv, NewService(kv)
}

// TestLanguage_defaultWhenUnset verifies the tr default.
func TestLanguage_defaultWhenUnset(t *testing.T) {
	_, svc := setupTestService(t)

	if got := svc.Language(); got != i18n.Default {
		t.Errorf("Language() = %q, want %q", got, i18n.Default)
	}
}

// TestSetLanguage_roundTrip verifies each supported language persists.
func TestSetLanguage_roundTrip(t *testing.T) {
	for _, lang := range []i18n.Lang{i18n.Turkish, i18n.English, i18n.Arabic} {
		t.Run(string(lang), func(t *testing.T) {
			_, svc := setupTestService(t)

			if err := svc.SetLanguage(lang); err != nil {
				t.Fatalf("SetLanguage() error = %v", err)
			}
			if got := svc.Language(); got != lang {
				t.Errorf("Language() = %q, want %q", got, lang)
			}
		})
	}
}

// TestSetLanguage_invalidRejected verifies unsupported codes are refused.
func TestSetLanguage_invalidRejected(t *testing.T) {
	_, svc := setupTestService(t)

	err := svc.SetLanguage(i18n.Lang("de"))
	if !errors.Is(err, errors.ErrLanguageInvalid) {
		t.Errorf("SetLanguage() error = %v, want LANGUAGE_INVALID", err)
	}
	if got := svc.Language(); got != i18n.Default {
		t.Errorf("Language() = %q after rejected set, want default", got)
	}
}

// TestLanguage_invalidStoredValueFallsBack verifies a corrupt stored
// value yields the default rather than an error.
func TestLanguage_invalidStoredValueFallsBack(t *testing.T) {
	kv, svc := setupTestService(t)

	kv.SetJSON(KeyLanguage, "elvish")
	if got := svc.Language(); got != i18n.Default {
		t.Errorf("Language() = %q, want default for invalid stored value", got)
	}
}

// TestAvatar_roundTrip verifies avatar storage.
func TestAvatar_roundTrip(t *testing.T) {
	_, svc := setupTestService(t)

	if got := svc.Avatar(); got != "" {
		t.Errorf("Avatar() = %q when unset, want empty", got)
	}

	if err := svc.SetAvatar("file:///data/avatar.png"); err != nil {
		t.Fatalf("SetAvatar() error = %v", err)
	}
	if got := svc.Avatar(); got != "file:///data/avatar.png" {
		t.Errorf("Avatar() = %q", got)
	}
}

// TestWeatherAPIKey_trimsInput verifies the credential is trimmed.
func TestWeatherAPIKey_trimsInput(t *testing.T) {
	_, svc := setupTestService(t)

	if err := svc.SetWeatherAPIKey("  abc123  "); err != nil {
		t.Fatalf("SetWeatherAPIKey() error = %v", err)
	}
	if got := svc.WeatherAPIKey(); got != "abc123" {
		t.Errorf("WeatherAPIKey() = %q, want %q", got, "abc123")
	}
}

// TestWeatherAPIKey_blankInputIgnored verifies a blank set keeps the
// previous credential.
func TestWeatherAPIKey_blankInputIgnored(t *testing.T) {
	_, svc := setupTestService(t)

	svc.SetWeatherAPIKey("abc123")
	if err := svc.SetWeatherAPIKey("   "); err != nil {
		t.Fatalf("SetWeatherAPIKey() error = %v", err)
	}
	if got := svc.WeatherAPIKey(); got != "abc123" {
		t.Errorf("WeatherAPIKey() = %q, want previous value kept", got)
	}
}
