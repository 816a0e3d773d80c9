package ai

import (
	"fmt"
	"strings"
)

// composeSummary writes a short professional summary from the strongest
// skills and project counts.
func composeSummary(state State) string {
	name := state.User.Name
	if name == "" {
		name = "This student"
	}

	var b strings.Builder
	if best, ok := strongestSkill(state.Data.Skills); ok {
		fmt.Fprintf(&b, "%s is a developing engineer whose strongest skill is %s (%d/100). ", name, best.Name, best.Current)
	} else {
		fmt.Fprintf(&b, "%s is a developing engineer building a portfolio. ", name)
	}

	total := len(state.Data.Projects)
	completed := countByStatus(state.Data.Projects, "completed")
	if total > 0 {
		fmt.Fprintf(&b, "The portfolio covers %d project(s), %d of them completed. ", total, completed)
	}

	if jobs := jobsByMatch(state.Data.Jobs); len(jobs) > 0 {
		fmt.Fprintf(&b, "The closest job match right now is %s at %s (%d%% match).", jobs[0].Title, jobs[0].Company, jobs[0].Match)
	}
	return strings.TrimSpace(b.String())
}
