package exporter

import (
	"fmt"
	"time"
)

// formatAmount formats a monetary amount for CSV output with exactly 2
// decimal places, so values like 13.4 appear as 13.40.
func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer count for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatDate formats a bucket label date for CSV output
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
