package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestWordBasedEnglish(t *testing.T) {
	f := WordBased(language.English)
	tests := []struct {
		p    Period
		want string
	}{
		{New(1, 2, 0, 3, 0, 0, 0, 0), "1 year, 2 months and 3 days"},
		{New(0, 0, 0, 1, 0, 30, 0, 0), "1 day and 30 minutes"},
		{Days(1), "1 day"},
		{Zero, "0 milliseconds"},
		{NewTime(0, 0, 1, 1), "1 second and 1 millisecond"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, printed(t, f, tt.p))
	}

	for text, want := range map[string]Period{
		"1 year, 2 months and 3 days": New(1, 2, 0, 3, 0, 0, 0, 0),
		"2 years 5 days":              New(2, 0, 0, 5, 0, 0, 0, 0),
		"1 day, and 1 hour":           New(0, 0, 0, 1, 1, 0, 0, 0),
		"3 Weeks":                     Weeks(3),
	} {
		p, err := f.ParsePeriod(text)
		require.NoError(t, err, text)
		assert.True(t, p.Equal(want), "%q parsed as %s", text, p)
	}
}

func TestWordBasedLanguages(t *testing.T) {
	de := WordBased(language.German)
	assert.Equal(t, language.German, de.Locale())
	assert.Equal(t, "2 Tage und 1 Stunde", printed(t, de, New(0, 0, 0, 2, 1, 0, 0, 0)))

	fr := WordBased(language.French)
	assert.Equal(t, "1 an et 6 mois", printed(t, fr, New(1, 6, 0, 0, 0, 0, 0, 0)))

	assert.Same(t, de, WordBased(language.MustParse("de-CH")))
	assert.Same(t, WordBased(language.English), WordBased(language.Japanese), "falls back to English")
}
