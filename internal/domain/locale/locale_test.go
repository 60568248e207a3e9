package locale_test

import (
	"testing"

	"celebration/internal/domain/locale"
)

// TestLanguage tests the country to language lookup.
func TestLanguage(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{"USA", "en"},
		{"Germany", "de"},
		{"Japan", "ja"},
		{"Brazil", "pt"},
		{"India", "hi"},
		{"France", locale.DefaultLanguage},
		{"germany", locale.DefaultLanguage},
		{"", locale.DefaultLanguage},
	}

	for _, tt := range tests {
		if got := locale.Language(tt.country); got != tt.want {
			t.Errorf("Language(%q) = %q, want %q", tt.country, got, tt.want)
		}
	}
}

// TestTimezone tests the country to timezone lookup.
func TestTimezone(t *testing.T) {
	if tz, ok := locale.Timezone("Japan"); !ok || tz != "Asia/Tokyo" {
		t.Errorf("Timezone(Japan) = %q, %v", tz, ok)
	}
	if _, ok := locale.Timezone("Atlantis"); ok {
		t.Error("Timezone(Atlantis) should be unknown")
	}
}
