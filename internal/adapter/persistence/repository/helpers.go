package repository

import "time"

const itemTimeFormat = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(itemTimeFormat)
}

// parseTime tolerates malformed timestamps from older records; a zero time
// sorts last, which is acceptable for display ordering.
func parseTime(raw string) time.Time {
	t, err := time.Parse(itemTimeFormat, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
