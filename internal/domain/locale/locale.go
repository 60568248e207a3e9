// Package locale holds the fixed country reference tables.
// Countries are matched exactly as entered; unknown countries fall back to defaults.
package locale

// DefaultLanguage is used when a country is not in the table.
const DefaultLanguage = "en"

var languages = map[string]string{
	"USA":       "en",
	"UK":        "en",
	"Canada":    "en",
	"Australia": "en",
	"Germany":   "de",
	"Japan":     "ja",
	"Brazil":    "pt",
	"India":     "hi",
}

var timezones = map[string]string{
	"USA":       "America/New_York",
	"UK":        "Europe/London",
	"Germany":   "Europe/Berlin",
	"Japan":     "Asia/Tokyo",
	"Australia": "Australia/Sydney",
	"India":     "Asia/Kolkata",
	"Brazil":    "America/Sao_Paulo",
	"Canada":    "America/Toronto",
}

// Language returns the ISO 639-1 code for a country, or DefaultLanguage.
func Language(country string) string {
	if lang, ok := languages[country]; ok {
		return lang
	}
	return DefaultLanguage
}

// Timezone returns the IANA zone name for a country and whether it is known.
func Timezone(country string) (string, bool) {
	tz, ok := timezones[country]
	return tz, ok
}
