package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import "time"

// FormatTimestamp formats a time for display in views. Returns "—" for the
// zero time so un-set dates do not render as year 1.
func FormatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "—"
	}
	return ts.Format("Jan 2, 2006 15:04")
}
