package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 25, ParseInt("25", 50))
	assert.Equal(t, 50, ParseInt("", 50))
	assert.Equal(t, 50, ParseInt("abc", 50))
	assert.Equal(t, 50, ParseInt("0", 50))
	assert.Equal(t, 50, ParseInt("-3", 50))
}

func TestParseDate(t *testing.T) {
	date, ok := ParseDate("2026-09-10")
	assert.True(t, ok)
	assert.Equal(t, "2026-09-10", date)

	_, ok = ParseDate("10-09-2026")
	assert.False(t, ok)

	_, ok = ParseDate("2026-02-30")
	assert.False(t, ok)

	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "es-kopi-susu", Slugify("Es Kopi Susu"))
	assert.Equal(t, "caffe-latte", Slugify("  Caffe   Latte  "))
	assert.Equal(t, "v60-pour-over", Slugify("V60 (Pour Over)"))
	assert.Equal(t, "americano", Slugify("Americano"))
}
