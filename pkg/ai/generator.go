package ai

import (
	"context"
	"errors"

	"portfolio-studio/internal/domain"
)

// Kind is a generation intent.
type Kind string

const (
	KindPortfolioSummary Kind = "portfolio-summary"
	KindSkillRoadmap     Kind = "skill-roadmap"
	KindProjectIdeas     Kind = "project-ideas"
	KindJobMatch         Kind = "job-match"
)

// Kinds lists every defined generation intent.
var Kinds = []Kind{KindPortfolioSummary, KindSkillRoadmap, KindProjectIdeas, KindJobMatch}

var ErrUnknownIntent = errors.New("unknown generation intent")

// State is the read-only snapshot a generator derives its output from: the
// session user, the analytics datasets, and the current document block count.
// Generators never get write access to the document; they only return text.
type State struct {
	User       domain.User
	Data       domain.Datasets
	BlockCount int
}

// Generator synthesizes portfolio text for one intent from the live state.
// Simulated is the in-process default; Client talks to an external ai-service.
// The single-flight workflow in internal/usecase does not care which one it
// holds.
type Generator interface {
	Generate(ctx context.Context, kind Kind, state State) (string, error)
}
