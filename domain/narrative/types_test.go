package narrative

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTagline(t *testing.T) {
	t.Run("short tagline untouched", func(t *testing.T) {
		assert.Equal(t, "AI for everyone", TruncateTagline("AI for everyone"))
	})

	t.Run("exactly at limit untouched", func(t *testing.T) {
		s := strings.Repeat("a", MaxTaglineLen)
		assert.Equal(t, s, TruncateTagline(s))
	})

	t.Run("over limit truncated to exactly 100 with ellipsis", func(t *testing.T) {
		s := strings.Repeat("a", 150)
		got := TruncateTagline(s)
		assert.Equal(t, MaxTaglineLen, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "…"))
	})

	t.Run("multibyte input counted in runes", func(t *testing.T) {
		s := strings.Repeat("é", 120)
		got := TruncateTagline(s)
		assert.Equal(t, MaxTaglineLen, utf8.RuneCountInString(got))
	})
}
