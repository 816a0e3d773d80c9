package ai

import (
	"fmt"
	"strings"
)

// composeJobMatch reports the best-matching job postings with their match
// percentages, best first.
func composeJobMatch(state State) string {
	ranked := jobsByMatch(state.Data.Jobs)
	if len(ranked) == 0 {
		return "No job postings are loaded for this session, so there is nothing to match against yet."
	}

	var b strings.Builder
	b.WriteString("Job match analysis:\n")
	limit := len(ranked)
	if limit > 3 {
		limit = 3
	}
	for _, j := range ranked[:limit] {
		fmt.Fprintf(&b, "- %s at %s: %d%% match", j.Title, j.Company, j.Match)
		if len(j.Skills) > 0 {
			fmt.Fprintf(&b, " (wants %s)", strings.Join(j.Skills, ", "))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Best bet: %s at %s.", ranked[0].Title, ranked[0].Company)
	return b.String()
}
