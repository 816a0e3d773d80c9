package ai

import (
	"fmt"
	"math/rand"
	"strings"
)

// ideaTemplates are the fixed phrasings project-idea synthesis picks from.
// The pick itself is random; the skills interpolated into it are not.
var ideaTemplates = []string{
	"Build a %s-focused capstone that showcases %s end to end.",
	"A small but polished tool written around %s would highlight your %s work nicely.",
	"Consider an open-source contribution that exercises %s; it pairs well with your %s experience.",
}

// composeProjectIdeas suggests a next project. Advisory output, so unlike the
// other intents it may vary in phrasing between calls with the same state.
func composeProjectIdeas(state State) string {
	ranked := skillsByGap(state.Data.Skills)
	if len(ranked) == 0 {
		return "Add some tracked skills first; project ideas are shaped around the skills you want to grow."
	}

	grow := ranked[0].Name
	anchor := grow
	if best, ok := strongestSkill(state.Data.Skills); ok {
		anchor = best.Name
	}

	tpl := ideaTemplates[rand.Intn(len(ideaTemplates))]
	var b strings.Builder
	fmt.Fprintf(&b, tpl, grow, anchor)
	fmt.Fprintf(&b, " You currently have %d project(s) in the portfolio.", len(state.Data.Projects))
	return b.String()
}
