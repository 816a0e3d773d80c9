package usecase

import (
	"strings"
	"testing"

	"portfolio-studio/internal/domain"
)

func searchData() domain.Datasets {
	return domain.Datasets{
		Skills: []domain.Skill{
			{Name: "TypeScript", Category: "Languages"},
			{Name: "React", Category: "Frontend"},
			{Name: "Docker", Category: "DevOps"},
		},
		Projects: []domain.Project{
			{Title: "Task Manager", Description: "realtime sync", Tech: []string{"React", "Node.js"}},
			{Title: "Weather Dashboard", Description: "charts", Tech: []string{"TypeScript"}},
		},
		Jobs: []domain.JobPosting{
			{Title: "Frontend Developer", Company: "TechCorp", Skills: []string{"React"}},
			{Title: "Data Engineer", Company: "DataWorks", Skills: []string{"SQL"}},
		},
	}
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	data := searchData()
	got := FilterDatasets("", data)
	if len(got.Skills) != 3 || len(got.Projects) != 2 || len(got.Jobs) != 2 {
		t.Fatalf("empty query should return everything: %+v", got)
	}
	got = FilterDatasets("   ", data)
	if len(got.Skills) != 3 {
		t.Fatalf("whitespace query should return everything")
	}
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	got := FilterDatasets("REACT", searchData())

	if len(got.Skills) != 1 || got.Skills[0].Name != "React" {
		t.Fatalf("skills: %+v", got.Skills)
	}
	// Task Manager matches on tech, not title
	if len(got.Projects) != 1 || got.Projects[0].Title != "Task Manager" {
		t.Fatalf("projects: %+v", got.Projects)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].Title != "Frontend Developer" {
		t.Fatalf("jobs: %+v", got.Jobs)
	}
}

func TestFilterCollectionsIndependent(t *testing.T) {
	// "techcorp" only matches a job's company; the other collections empty out
	got := FilterDatasets("techcorp", searchData())
	if len(got.Jobs) != 1 {
		t.Fatalf("jobs: %+v", got.Jobs)
	}
	if len(got.Skills) != 0 || len(got.Projects) != 0 {
		t.Fatalf("other collections should be empty: %+v", got)
	}
}

// Every returned item must actually contain the query in a designated field,
// and every excluded item must not.
func TestFilterSoundAndComplete(t *testing.T) {
	data := searchData()
	for _, q := range []string{"react", "data", "type", "manager", "zzz"} {
		got := FilterDatasets(q, data)

		contains := func(fields []string) bool {
			for _, f := range fields {
				if strings.Contains(strings.ToLower(f), q) {
					return true
				}
			}
			return false
		}

		matched := map[string]bool{}
		for _, p := range got.Projects {
			if !contains(append([]string{p.Title, p.Description}, p.Tech...)) {
				t.Fatalf("q=%q: project %q should not match", q, p.Title)
			}
			matched[p.Title] = true
		}
		for _, p := range data.Projects {
			if !matched[p.Title] && contains(append([]string{p.Title, p.Description}, p.Tech...)) {
				t.Fatalf("q=%q: project %q missing from results", q, p.Title)
			}
		}

		matched = map[string]bool{}
		for _, j := range got.Jobs {
			if !contains(append([]string{j.Title, j.Company}, j.Skills...)) {
				t.Fatalf("q=%q: job %q should not match", q, j.Title)
			}
			matched[j.Title] = true
		}
		for _, j := range data.Jobs {
			if !matched[j.Title] && contains(append([]string{j.Title, j.Company}, j.Skills...)) {
				t.Fatalf("q=%q: job %q missing from results", q, j.Title)
			}
		}

		matched = map[string]bool{}
		for _, s := range got.Skills {
			if !contains([]string{s.Name, s.Category}) {
				t.Fatalf("q=%q: skill %q should not match", q, s.Name)
			}
			matched[s.Name] = true
		}
		for _, s := range data.Skills {
			if !matched[s.Name] && contains([]string{s.Name, s.Category}) {
				t.Fatalf("q=%q: skill %q missing from results", q, s.Name)
			}
		}
	}
}

func TestFilterPureAndIdempotent(t *testing.T) {
	data := searchData()
	a := FilterDatasets("react", data)
	b := FilterDatasets("react", data)
	if len(a.Projects) != len(b.Projects) || len(a.Jobs) != len(b.Jobs) || len(a.Skills) != len(b.Skills) {
		t.Fatalf("identical query and data must give identical results")
	}
	// the source datasets are untouched
	if len(data.Skills) != 3 || len(data.Projects) != 2 || len(data.Jobs) != 2 {
		t.Fatalf("filtering mutated the source data: %+v", data)
	}
}
