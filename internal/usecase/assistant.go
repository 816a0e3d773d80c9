package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio-studio/internal/domain"
	"portfolio-studio/pkg/ai"
	"portfolio-studio/pkg/logger"

	"github.com/google/uuid"
)

// ErrAssistantBusy rejects a user turn sent while a reply is still pending.
// Same single-flight discipline as the generation workflow, separate latch.
var ErrAssistantBusy = errors.New("an assistant reply is already pending")

// ReplyFunc produces the assistant text for one user turn. The default is the
// rule engine below; tests substitute failing ones to exercise the error path.
type ReplyFunc func(state ai.State, input string) (string, error)

// assistantRule pairs a match predicate with a responder. Rules are evaluated
// top to bottom; the first match wins.
type assistantRule struct {
	keywords []string
	respond  func(state ai.State, input string) string
}

// Assistant is the rule-based conversational engine. It owns the append-only
// session transcript: the user turn is appended as soon as it is accepted, the
// assistant turn only when the reply resolves, so a failed turn stays visibly
// unanswered and the user just sends another message.
type Assistant struct {
	mu      sync.Mutex
	pending bool
	msgs    []domain.ChatMessage
	reply   ReplyFunc
	latency func() time.Duration
	log     *logger.Logger
}

func NewAssistant(log *logger.Logger) *Assistant {
	return &Assistant{
		reply:   ruleReply,
		latency: simulatedLatency,
		log:     log,
	}
}

// SetLatency overrides the simulated latency window. Tests pass a zero delay.
func (a *Assistant) SetLatency(f func() time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if f != nil {
		a.latency = f
	}
}

// SetReplyFunc swaps the responder behind the engine.
func (a *Assistant) SetReplyFunc(f ReplyFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if f != nil {
		a.reply = f
	}
}

// Messages returns a copy of the transcript in append order.
func (a *Assistant) Messages() []domain.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ChatMessage(nil), a.msgs...)
}

// Respond handles one user turn: append it, wait the simulated latency,
// compute the reply from the live state and append that too. A turn arriving
// while one is pending is rejected with ErrAssistantBusy and leaves the
// transcript untouched.
func (a *Assistant) Respond(ctx context.Context, userText string, state ai.State) (string, error) {
	a.mu.Lock()
	if a.pending {
		a.mu.Unlock()
		return "", ErrAssistantBusy
	}
	a.pending = true
	a.msgs = append(a.msgs, domain.ChatMessage{
		ID:        uuid.New(),
		Role:      domain.RoleUser,
		Text:      userText,
		Timestamp: time.Now(),
	})
	delay := a.latency()
	reply := a.reply
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.pending = false
		a.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	text, err := reply(state, userText)
	if err != nil {
		a.log.Warn("assistant reply failed", "error", err)
		return "", err
	}

	a.mu.Lock()
	a.msgs = append(a.msgs, domain.ChatMessage{
		ID:        uuid.New(),
		Role:      domain.RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
	})
	a.mu.Unlock()
	return text, nil
}

// rules is the ordered topic table. Matching is case-insensitive substring
// over the whole input; responders read the live state so the same question
// gets different numbers as the state moves.
var rules = []assistantRule{
	{keywords: []string{"portfolio"}, respond: portfolioReply},
	{keywords: []string{"career", "job"}, respond: careerReply},
	{keywords: []string{"skill", "learn"}, respond: skillReply},
	{keywords: []string{"project"}, respond: projectReply},
	{keywords: []string{"deadline", "time"}, respond: deadlineReply},
	{keywords: []string{"help", "assist"}, respond: helpReply},
}

func ruleReply(state ai.State, input string) (string, error) {
	lower := strings.ToLower(input)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.respond(state, input), nil
			}
		}
	}
	return fmt.Sprintf("I'm not sure what you mean by %q. Ask me about your portfolio, skills, projects, or job matches.", input), nil
}

func portfolioReply(state ai.State, _ string) string {
	if state.BlockCount == 0 {
		return "Your portfolio is empty so far. Add a text or project block to get started; I can generate a summary once there is something to summarize."
	}
	return fmt.Sprintf("Your portfolio currently has %d block(s). A summary block up top and a couple of project blocks tend to read best.", state.BlockCount)
}

func careerReply(state ai.State, _ string) string {
	jobs := state.Data.Jobs
	if len(jobs) == 0 {
		return "There are no job postings loaded for this session yet, so I can't score matches."
	}
	best := jobs[0]
	for _, j := range jobs[1:] {
		if j.Match > best.Match {
			best = j
		}
	}
	return fmt.Sprintf("Out of %d posting(s), your best match is %s at %s with %d%%. Closing your biggest skill gap would push that higher.", len(jobs), best.Title, best.Company, best.Match)
}

func skillReply(state ai.State, _ string) string {
	skills := state.Data.Skills
	if len(skills) == 0 {
		return "You aren't tracking any skills yet. Add a few with current and target levels and I'll tell you what to learn first."
	}
	strongest, weakest := skills[0], skills[0]
	for _, s := range skills[1:] {
		if s.Current > strongest.Current {
			strongest = s
		}
		if s.Current < weakest.Current {
			weakest = s
		}
	}
	return fmt.Sprintf("Your strongest skill is %s at %d/100. The one needing the most work is %s, currently %d against a target of %d.",
		strongest.Name, strongest.Current, weakest.Name, weakest.Current, weakest.Target)
}

func projectReply(state ai.State, _ string) string {
	total := len(state.Data.Projects)
	if total == 0 {
		return "No projects on file. Even one small finished project makes a portfolio much stronger than several unfinished ones."
	}
	done := 0
	for _, p := range state.Data.Projects {
		if p.Status == "completed" {
			done++
		}
	}
	return fmt.Sprintf("You have %d project(s), %d completed. Featuring the completed ones prominently is the usual move.", total, done)
}

func deadlineReply(state ai.State, _ string) string {
	withDeadline := 0
	for _, j := range state.Data.Jobs {
		if j.Deadline != "" {
			withDeadline++
		}
	}
	if withDeadline == 0 {
		return "None of the loaded job postings carry a deadline, so nothing is time-critical right now."
	}
	return fmt.Sprintf("%d of %d posting(s) have application deadlines. Worth sorting those first.", withDeadline, len(state.Data.Jobs))
}

func helpReply(state ai.State, _ string) string {
	name := state.User.Name
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s. I can talk about your portfolio blocks, your skills and what to learn next, your projects, and how you match the loaded job postings.", name)
}
