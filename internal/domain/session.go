package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity handed over by the auth collaborator at session start.
// The engine only uses it to seed placeholder content and personalize replies.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Skill is a read-only analytics snapshot entry: where the student is versus
// where they want to be for one skill.
type Skill struct {
	Name     string `json:"name"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Growth   int    `json:"growth"`
	Category string `json:"category"`
}

// Gap returns how far the skill is from its target level.
func (s Skill) Gap() int {
	return s.Target - s.Current
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
}

type JobPosting struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Match    int      `json:"match"`
	Skills   []string `json:"skills"`
	Deadline string   `json:"deadline,omitempty"`
}

// Datasets bundles the three immutable collections supplied at session start.
type Datasets struct {
	Skills   []Skill      `json:"skills"`
	Projects []Project    `json:"projects"`
	Jobs     []JobPosting `json:"jobs"`
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session ties one user to one in-memory dashboard session. The document and
// transcript live only as long as the session does; persistence, when
// configured, is a best-effort snapshot and never changes what the session
// observes.
type Session struct {
	ID        uuid.UUID `json:"id"`
	User      User      `json:"user"`
	Datasets  Datasets  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
