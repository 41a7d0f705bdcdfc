package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeBait(t *testing.T) {
	cases := map[int]string{
		1:   "наживка",
		21:  "наживка",
		2:   "наживки",
		4:   "наживки",
		23:  "наживки",
		0:   "наживок",
		5:   "наживок",
		11:  "наживок",
		12:  "наживок",
		14:  "наживок",
		100: "наживок",
	}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeBait(n), "n=%d", n)
	}
}

func TestPluralizeCatches(t *testing.T) {
	assert.Equal(t, "улов", PluralizeCatches(1))
	assert.Equal(t, "улова", PluralizeCatches(3))
	assert.Equal(t, "уловов", PluralizeCatches(11))
	assert.Equal(t, "уловов", PluralizeCatches(25))
}

func TestFormatPnL(t *testing.T) {
	assert.Equal(t, "🟢 +5.20%", FormatPnL(5.2))
	assert.Equal(t, "🔴 -3.10%", FormatPnL(-3.1))
	assert.Equal(t, "⚪ +0.00%", FormatPnL(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45с", FormatDuration(45*time.Second))
	assert.Equal(t, "5мин 30с", FormatDuration(5*time.Minute+30*time.Second))
	assert.Equal(t, "2ч 15мин", FormatDuration(2*time.Hour+15*time.Minute))
	assert.Equal(t, "0с", FormatDuration(-time.Second))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "2 350", FormatNumber(2350))
	assert.Equal(t, "1 000 000", FormatNumber(1000000))
	assert.Equal(t, "-2 350", FormatNumber(-2350))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.8500", FormatPrice(0.85))
	assert.Equal(t, "$3500.00", FormatPrice(3500))
}

func TestFormatDateTime(t *testing.T) {
	// Зимой в Москве UTC+3: полдень по UTC — это 15:00.
	utc := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "15.01.2026 15:00", FormatDateTime(utc))
}

func TestGetMoscowTime(t *testing.T) {
	now := GetMoscowTime()
	_, offset := now.Zone()
	assert.Equal(t, 3*60*60, offset)
}
