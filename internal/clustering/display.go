package clustering

import (
	"fmt"
	"strings"
)

const sampleVideoCount = 3

// FormatGroupSummary returns a human-readable summary of duration groups.
// Shows each group's label, video count and first 3 videos.
// Ungrouped videos are summarized by count only.
func FormatGroupSummary(groups []DurationGroup, ungrouped int) string {
	var sb strings.Builder

	total := ungrouped
	for _, g := range groups {
		total += len(g.Videos)
	}

	// Header
	if len(groups) == 0 {
		sb.WriteString(fmt.Sprintf("No groups found from %d videos", total))
		if ungrouped > 0 {
			sb.WriteString(fmt.Sprintf(" (%d ungrouped)", ungrouped))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	groupWord := "group"
	if len(groups) > 1 {
		groupWord = "groups"
	}

	sb.WriteString(fmt.Sprintf("Found %d %s from %d videos", len(groups), groupWord, total))
	if ungrouped > 0 {
		sb.WriteString(fmt.Sprintf(" (%d ungrouped)", ungrouped))
	}
	sb.WriteString("\n")

	for i, g := range groups {
		sb.WriteString("\n")
		sb.WriteString(formatGroup(i+1, g))
	}

	return sb.String()
}

// formatGroup formats a single group with its sample videos.
func formatGroup(num int, g DurationGroup) string {
	var sb strings.Builder

	videoWord := "video"
	if len(g.Videos) > 1 {
		videoWord = "videos"
	}

	sb.WriteString(fmt.Sprintf("Group %d: %s (%d %s)\n", num, g.Label, len(g.Videos), videoWord))

	sampleCount := min(sampleVideoCount, len(g.Videos))
	for i := 0; i < sampleCount; i++ {
		v := g.Videos[i]
		sb.WriteString(fmt.Sprintf("  • \"%s\" - %s\n", v.Name, v.Artist.Name))
	}

	remaining := len(g.Videos) - sampleVideoCount
	if remaining > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", remaining))
	}

	return sb.String()
}
