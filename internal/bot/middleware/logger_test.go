package middleware

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	// Короткий текст остаётся как есть.
	assert.Equal(t, "заброс eth", TruncateText("заброс eth", 50))
	assert.Equal(t, "", TruncateText("", 50))

	// Длинная кириллица: ровно 50 символов плюс многоточие,
	// без порванных байтов посередине руны.
	long := strings.Repeat("рыба", 30)
	got := TruncateText(long, 50)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 53, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	// Граница: текст ровно в лимит не трогаем.
	exact := strings.Repeat("щ", 50)
	assert.Equal(t, exact, TruncateText(exact, 50))
}
