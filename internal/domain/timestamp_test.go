package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLegacyTime(t *testing.T, raw string) LegacyTime {
	t.Helper()
	var lt LegacyTime
	require.NoError(t, json.Unmarshal([]byte(raw), &lt))
	return lt
}

func TestLegacyTimeStringShapes(t *testing.T) {
	lt := decodeLegacyTime(t, `"2024-01-10T09:30:00Z"`)
	assert.True(t, lt.Resolved())
	assert.Equal(t, time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC), lt.Time)

	lt = decodeLegacyTime(t, `"2024-01-10"`)
	assert.True(t, lt.Resolved())
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), lt.Time)
}

func TestLegacyTimeEpochSeconds(t *testing.T) {
	lt := decodeLegacyTime(t, `1704879000`)
	assert.True(t, lt.Resolved())
	assert.Equal(t, time.Unix(1704879000, 0).UTC(), lt.Time)
}

func TestLegacyTimeEpochMillis(t *testing.T) {
	lt := decodeLegacyTime(t, `1704879000123`)
	assert.True(t, lt.Resolved())
	assert.Equal(t, time.UnixMilli(1704879000123).UTC(), lt.Time)
}

func TestLegacyTimeSecondsNanosObject(t *testing.T) {
	lt := decodeLegacyTime(t, `{"seconds": 1704879000, "nanoseconds": 500000000}`)
	assert.True(t, lt.Resolved())
	assert.Equal(t, time.Unix(1704879000, 500000000).UTC(), lt.Time)

	// Some exports prefix the fields with underscores.
	lt = decodeLegacyTime(t, `{"_seconds": 1704879000, "_nanoseconds": 0}`)
	assert.True(t, lt.Resolved())
	assert.Equal(t, time.Unix(1704879000, 0).UTC(), lt.Time)
}

func TestLegacyTimeUnresolvableShapes(t *testing.T) {
	for _, raw := range []string{`"not a date"`, `null`, `{}`, `{"foo": 1}`, `true`, `[]`} {
		lt := decodeLegacyTime(t, raw)
		assert.False(t, lt.Resolved(), "shape %s should not resolve", raw)
	}
}
