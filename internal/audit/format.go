package audit

import (
	"fmt"
	"strings"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders events as a human-readable text timeline.
func FormatTimeline(events []Event) string {
	if len(events) == 0 {
		return "No audit events recorded.\n"
	}

	var b strings.Builder
	first := events[0].Timestamp.Format("2006-01-02 15:04:05")
	last := events[len(events)-1].Timestamp.Format("15:04:05")
	b.WriteString(fmt.Sprintf("Audit trail | %s–%s UTC\n", first, last))
	b.WriteString(separator + "\n")

	okCount, failCount := 0, 0
	for _, e := range events {
		status := "OK"
		if !e.Success {
			status = "FAIL"
			failCount++
		} else {
			okCount++
		}
		detail := ""
		if reason, ok := e.Details["error"].(string); ok && reason != "" {
			detail = "  " + reason
		}
		b.WriteString(fmt.Sprintf("%-10s %-4s %-12s %-8s %-40s%s\n",
			e.Timestamp.Format("15:04:05"), status,
			truncate(e.AgentID, 12), truncate(e.Operation, 8),
			truncate(e.Path, 40), detail))
	}

	b.WriteString(separator + "\n")
	b.WriteString(fmt.Sprintf("Summary: %d ok, %d failed\n", okCount, failCount))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
