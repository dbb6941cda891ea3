// Package i18n provides the localized user-facing messages of the Asista core.
package i18n

import "fmt"

// Lang identifies one of the supported UI languages.
type Lang string

const (
	Turkish Lang = "tr"
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Default is the language used when none has been chosen.
const Default = Turkish

// IsValid reports whether l is a supported language.
func (l Lang) IsValid() bool {
	switch l {
	case Turkish, English, Arabic:
		return true
	}
	return false
}

// Catalog holds the message strings for one language.
type Catalog struct {
	AlarmAlertTitle     string
	AlarmMissingTitle   string
	AlarmMissingBody    string
	AlarmScheduledTitle string
	alarmScheduledBody  func(day, hour, minute string) string
}

// AlarmScheduledBody renders the confirmation shown after an alarm is set.
func (c Catalog) AlarmScheduledBody(day, hour, minute string) string {
	return c.alarmScheduledBody(day, hour, minute)
}

var catalogs = map[Lang]Catalog{
	Turkish: {
		AlarmAlertTitle:     "⏰ Alarm",
		AlarmMissingTitle:   "⚠️ Eksik Bilgi",
		AlarmMissingBody:    "Lütfen gün, saat ve dakika girin.",
		AlarmScheduledTitle: "✅ Alarm Kuruldu",
		alarmScheduledBody: func(day, hour, minute string) string {
			return fmt.Sprintf("%s günü %s:%s için alarm ayarlandı.", day, hour, minute)
		},
	},
	English: {
		AlarmAlertTitle:     "⏰ Alarm",
		AlarmMissingTitle:   "⚠️ Missing Info",
		AlarmMissingBody:    "Please enter day, hour and minute.",
		AlarmScheduledTitle: "✅ Alarm Set",
		alarmScheduledBody: func(day, hour, minute string) string {
			return fmt.Sprintf("Alarm scheduled for %s at %s:%s.", day, hour, minute)
		},
	},
	Arabic: {
		AlarmAlertTitle:     "⏰ منبّه",
		AlarmMissingTitle:   "⚠️ معلومات ناقصة",
		AlarmMissingBody:    "يرجى إدخال اليوم والساعة والدقيقة.",
		AlarmScheduledTitle: "✅ تم ضبط المنبه",
		alarmScheduledBody: func(day, hour, minute string) string {
			return fmt.Sprintf("تم ضبط المنبه ليوم %s عند %s:%s.", day, hour, minute)
		},
	},
}

// Messages returns the catalog for the given language. Unknown languages
// fall back to the default.
func Messages(l Lang) Catalog {
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs[Default]
}
