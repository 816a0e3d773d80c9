package repository

import (
	"context"
	"encoding/json"

	"portfolio-studio/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into out.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, out interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DatasetsForUser collects the read-only analytics collections (skills,
// projects, job postings) supplied to a session. It is intentionally
// best-effort: a nil pool or missing tables fall back to the bundled demo
// datasets, and a partial fetch keeps whatever it could get.
func DatasetsForUser(ctx context.Context, pool *pgxpool.Pool, email string) domain.Datasets {
	data := DefaultDatasets()
	if pool == nil {
		return data
	}

	var skills []domain.Skill
	if err := queryJSON(ctx, pool, &skills, `SELECT coalesce(json_agg(row_to_json(s)), '[]') FROM skills s WHERE s.user_email=$1`, email); err == nil && len(skills) > 0 {
		data.Skills = skills
	}
	var projects []domain.Project
	if err := queryJSON(ctx, pool, &projects, `SELECT coalesce(json_agg(row_to_json(p)), '[]') FROM projects p WHERE p.user_email=$1`, email); err == nil && len(projects) > 0 {
		data.Projects = projects
	}
	var jobs []domain.JobPosting
	if err := queryJSON(ctx, pool, &jobs, `SELECT coalesce(json_agg(row_to_json(j)), '[]') FROM job_postings j`); err == nil && len(jobs) > 0 {
		data.Jobs = jobs
	}
	return data
}

// DefaultDatasets is the bundled demo snapshot used when no analytics
// database is configured.
func DefaultDatasets() domain.Datasets {
	return domain.Datasets{
		Skills: []domain.Skill{
			{Name: "TypeScript", Current: 45, Target: 80, Growth: 12, Category: "Languages"},
			{Name: "React", Current: 85, Target: 95, Growth: 5, Category: "Frontend"},
			{Name: "Node.js", Current: 60, Target: 85, Growth: 8, Category: "Backend"},
			{Name: "SQL", Current: 55, Target: 75, Growth: 6, Category: "Data"},
			{Name: "Docker", Current: 30, Target: 70, Growth: 10, Category: "DevOps"},
		},
		Projects: []domain.Project{
			{Title: "Task Manager App", Description: "Full-stack task tracker with realtime sync", Tech: []string{"React", "Node.js", "PostgreSQL"}, Status: "completed", Progress: 100},
			{Title: "Weather Dashboard", Description: "Weather visualization with charting", Tech: []string{"TypeScript", "React"}, Status: "in-progress", Progress: 65},
			{Title: "Portfolio Site", Description: "Personal site with a custom theme", Tech: []string{"React"}, Status: "completed", Progress: 100},
		},
		Jobs: []domain.JobPosting{
			{Title: "Frontend Developer", Company: "TechCorp", Match: 92, Skills: []string{"React", "TypeScript"}, Deadline: "2026-09-30"},
			{Title: "Full Stack Engineer", Company: "StartupXYZ", Match: 78, Skills: []string{"Node.js", "React", "SQL"}},
			{Title: "Junior Backend Developer", Company: "DataWorks", Match: 64, Skills: []string{"Node.js", "SQL", "Docker"}, Deadline: "2026-10-15"},
		},
	}
}
