package utils

import (
	"time"
)

// Millis renders t as epoch milliseconds, the unit stored in stamp columns.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis is the inverse of Millis.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
