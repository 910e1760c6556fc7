package cmd

import (
	"fmt"
	"time"
)

// formatUKDate formats a date in UK format: "25 Jul 2024"
func formatUKDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// formatSize returns a human-readable byte count
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMG"[exp])
}
