package usecase

import (
	"strings"

	"portfolio-studio/internal/domain"
)

// FilterDatasets returns the subset of each collection matching the query by
// case-insensitive substring over that collection's designated text fields.
// It is pure and recomputed from scratch per call; the three collections are
// filtered independently. An empty query returns everything.
func FilterDatasets(query string, data domain.Datasets) domain.Datasets {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return data
	}

	out := domain.Datasets{}
	for _, p := range data.Projects {
		if matchesAny(q, append([]string{p.Title, p.Description}, p.Tech...)) {
			out.Projects = append(out.Projects, p)
		}
	}
	for _, j := range data.Jobs {
		if matchesAny(q, append([]string{j.Title, j.Company}, j.Skills...)) {
			out.Jobs = append(out.Jobs, j)
		}
	}
	for _, s := range data.Skills {
		if matchesAny(q, []string{s.Name, s.Category}) {
			out.Skills = append(out.Skills, s)
		}
	}
	return out
}

func matchesAny(q string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
