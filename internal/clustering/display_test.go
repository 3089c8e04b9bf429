package clustering

import (
	"strings"
	"testing"
)

func TestFormatGroupSummary(t *testing.T) {
	makeGroup := func(label string, ids ...string) DurationGroup {
		g := DurationGroup{Label: label}
		for _, id := range ids {
			g.Videos = append(g.Videos, video(id, 120))
		}
		return g
	}

	tests := []struct {
		name           string
		groups         []DurationGroup
		ungrouped      int
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "no groups",
			wantContains:   []string{"No groups found from 0 videos"},
			wantNotContain: []string{"ungrouped"},
		},
		{
			name:         "no groups with ungrouped",
			ungrouped:    2,
			wantContains: []string{"No groups found from 2 videos", "(2 ungrouped)"},
		},
		{
			name:   "single group of 3",
			groups: []DurationGroup{makeGroup("Short: 2:00 - 2:00", "a", "b", "c")},
			wantContains: []string{
				"Found 1 group from 3 videos",
				"Group 1: Short: 2:00 - 2:00 (3 videos)",
				`"Video a" - Artist a`,
				`"Video c" - Artist c`,
			},
			wantNotContain: []string{"more", "ungrouped"},
		},
		{
			name: "multiple groups truncate samples",
			groups: []DurationGroup{
				makeGroup("Short", "a", "b", "c", "d", "e"),
				makeGroup("Long", "z"),
			},
			ungrouped: 1,
			wantContains: []string{
				"Found 2 groups from 7 videos",
				"(1 ungrouped)",
				"... and 2 more",
				"Group 2: Long (1 video)",
			},
			wantNotContain: []string{`"Video d"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatGroupSummary(tt.groups, tt.ungrouped)

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatGroupSummary() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNotContain {
				if strings.Contains(got, notWant) {
					t.Errorf("FormatGroupSummary() contains %q\nGot:\n%s", notWant, got)
				}
			}
		})
	}
}
