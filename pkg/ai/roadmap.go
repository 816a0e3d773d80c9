package ai

import (
	"fmt"
	"strings"
)

// composeRoadmap writes a prioritized learning plan, one line per skill,
// largest gap-to-target first.
func composeRoadmap(state State) string {
	ranked := skillsByGap(state.Data.Skills)
	if len(ranked) == 0 {
		return "No skills are tracked yet, so there is nothing to prioritize. Add skills with a current and target level to get a roadmap."
	}

	var b strings.Builder
	b.WriteString("Prioritized skill roadmap (largest gap first):\n")
	for i, s := range ranked {
		fmt.Fprintf(&b, "%d. %s: %d -> %d (gap %d)\n", i+1, s.Name, s.Current, s.Target, s.Gap())
	}
	fmt.Fprintf(&b, "Start with %s; closing its %d-point gap moves the needle most.", ranked[0].Name, ranked[0].Gap())
	return b.String()
}
