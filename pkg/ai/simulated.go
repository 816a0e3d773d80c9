package ai

import (
	"context"
	"fmt"
	"sort"

	"portfolio-studio/internal/domain"
)

// Simulated derives generation output deterministically from the given state,
// so identical input state always yields identical text. The one sanctioned
// exception is project-idea synthesis, which picks among a small fixed set of
// phrasings (it is advisory, not authoritative).
type Simulated struct{}

func NewSimulated() *Simulated { return &Simulated{} }

func (s *Simulated) Generate(ctx context.Context, kind Kind, state State) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch kind {
	case KindPortfolioSummary:
		return composeSummary(state), nil
	case KindSkillRoadmap:
		return composeRoadmap(state), nil
	case KindProjectIdeas:
		return composeProjectIdeas(state), nil
	case KindJobMatch:
		return composeJobMatch(state), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownIntent, kind)
	}
}

// skillsByGap returns the skills sorted by gap-to-target, largest gap first.
// Name breaks ties so the ordering is stable across calls.
func skillsByGap(skills []domain.Skill) []domain.Skill {
	out := append([]domain.Skill(nil), skills...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gap() != out[j].Gap() {
			return out[i].Gap() > out[j].Gap()
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func strongestSkill(skills []domain.Skill) (domain.Skill, bool) {
	if len(skills) == 0 {
		return domain.Skill{}, false
	}
	best := skills[0]
	for _, s := range skills[1:] {
		if s.Current > best.Current {
			best = s
		}
	}
	return best, true
}

func jobsByMatch(jobs []domain.JobPosting) []domain.JobPosting {
	out := append([]domain.JobPosting(nil), jobs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Match != out[j].Match {
			return out[i].Match > out[j].Match
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func countByStatus(projects []domain.Project, status string) int {
	n := 0
	for _, p := range projects {
		if p.Status == status {
			n++
		}
	}
	return n
}
