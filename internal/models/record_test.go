package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawRecord_Envelope(t *testing.T) {
	r := NewRawRecord(map[string]any{
		"userId":          json.Number("42"),
		"event_timestamp": "2025-07-25T08:10",
		"event_type":      "vitals",
	})
	assert.Equal(t, "42", r.SubjectID)
	assert.Equal(t, "2025-07-25T08:10", r.Timestamp)
	assert.Equal(t, "vitals", r.Category)
	assert.Equal(t, "2025-07-25", r.Day())
	assert.Equal(t, "08:10", r.Clock())
}

func TestRawRecord_Number(t *testing.T) {
	r := NewRawRecord(map[string]any{
		"amount":  "120",
		"pulse":   json.Number("72"),
		"spo2":    "",
		"comment": "abc",
	})

	n, err := r.Number("amount")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 120.0, *n)

	n, err = r.Number("missing", "pulse")
	require.NoError(t, err)
	assert.Equal(t, 72.0, *n)

	n, err = r.Number("spo2")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = r.Number("comment")
	assert.Error(t, err)
	assert.Nil(t, r.LooseNumber("comment"))
}

func TestClockOf(t *testing.T) {
	assert.Equal(t, "08:10", ClockOf("2025-07-25T08:10:33.000Z"))
	assert.Equal(t, "21:05", ClockOf("2025-07-25 21:05"))
	assert.Equal(t, "07:00", ClockOf("07:00"))
	assert.Equal(t, "morning", ClockOf("morning"))
	assert.Equal(t, "", DayOf("25/07/2025"))
}

func TestParseCategoryTag(t *testing.T) {
	c, ok := ParseCategoryTag("vitals")
	assert.True(t, ok)
	assert.Equal(t, CategoryVital, c)

	c, ok = ParseCategoryTag("Hydration")
	assert.True(t, ok)
	assert.Equal(t, CategoryHydration, c)

	_, ok = ParseCategoryTag("bathing")
	assert.False(t, ok)

	assert.Equal(t, "発作", CategorySeizure.Label())
	assert.Equal(t, "bathing", CategoryID("bathing").Label())
}

func TestTrimUnit(t *testing.T) {
	assert.Equal(t, "120", TrimUnit("120ml", "ml", "cc"))
	assert.Equal(t, "50", TrimUnit(" 50 CC ", "ml", "cc"))
	assert.Equal(t, "120", TrimUnit("120"))
	assert.Equal(t, "たくさん", TrimUnit("たくさん", "ml"))
}
