package domain

import (
	"encoding/json"
	"time"
)

// LegacyTime decodes the three timestamp shapes found in records exported
// from the previous hosted backend: an RFC 3339 (or date-only) string, an
// epoch number in seconds or milliseconds, or a {seconds, nanoseconds}
// object. Values that resolve to none of the shapes decode to the zero
// time; downstream filters and exports treat zero as "unresolvable" rather
// than erroring.
type LegacyTime struct {
	time.Time
}

type epochParts struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  *int64 `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds *int64 `json:"_nanoseconds"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *LegacyTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Time = parseTimeString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		t.Time = fromEpoch(int64(n))
		return nil
	}

	var parts epochParts
	if err := json.Unmarshal(data, &parts); err == nil {
		sec, nsec := parts.USeconds, parts.UNanoseconds
		if parts.Seconds != nil {
			sec, nsec = parts.Seconds, parts.Nanoseconds
		}
		if sec != nil {
			var ns int64
			if nsec != nil {
				ns = *nsec
			}
			t.Time = time.Unix(*sec, ns).UTC()
		}
		return nil
	}

	// Unrecognized shape: leave zero, do not fail the whole record.
	return nil
}

// Resolved reports whether the timestamp decoded to a usable value.
func (t LegacyTime) Resolved() bool {
	return !t.Time.IsZero()
}

func parseTimeString(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func fromEpoch(n int64) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	// Values this large can only be milliseconds.
	if n > 1e12 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}
