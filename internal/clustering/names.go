package clustering

import "fmt"

// lengthName names a group by its centroid in seconds.
//
//   - under 3 minutes:   "Short"
//   - under 5 minutes:   "Medium"
//   - under 10 minutes:  "Long"
//   - anything longer:   "Extended"
func lengthName(centroid int) string {
	switch {
	case centroid < 180:
		return "Short"
	case centroid < 300:
		return "Medium"
	case centroid < 600:
		return "Long"
	default:
		return "Extended"
	}
}

func groupLabel(g DurationGroup) string {
	return fmt.Sprintf("%s: %s - %s", lengthName(g.Centroid), formatDuration(g.Min), formatDuration(g.Max))
}

// formatDuration renders seconds as m:ss, or h:mm:ss past an hour.
func formatDuration(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
