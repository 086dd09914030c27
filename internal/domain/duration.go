package domain

import "fmt"

// FormatDuration renders a second count as H:MM:SS when the hour component
// is non-zero, else M:SS, with minutes and seconds zero-padded to two
// digits. A missing or negative input renders as "N/A".
func FormatDuration(seconds *int64) string {
	if seconds == nil || *seconds < 0 {
		return "N/A"
	}
	total := *seconds
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
