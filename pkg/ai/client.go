package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client generates portfolio text by calling an external ai-service. It is
// the drop-in replacement for Simulated when AI_SERVICE_URL is set; the
// request carries an explicit timeout so a dead service resolves to a failed
// generation instead of keeping the single-flight latch stuck.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	base := os.Getenv("AI_SERVICE_URL")
	if base == "" {
		base = "http://ai-service:8000"
	}
	return &Client{BaseURL: base, HTTP: &http.Client{Timeout: 60 * time.Second}}
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// exponential backoff before retrying
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

var intentPrompts = map[Kind]string{
	KindPortfolioSummary: "Write a short professional portfolio summary (2-3 sentences) for the student described in the context. Mention the strongest skill and project counts.",
	KindSkillRoadmap:     "Write a prioritized skill roadmap for the student in the context. Order skills by the gap between current and target level, largest gap first, one line per skill as 'name: current -> target (gap n)'.",
	KindProjectIdeas:     "Suggest one concrete portfolio project idea that grows the student's weakest skill while leaning on their strongest.",
	KindJobMatch:         "Analyze the job postings in the context against the student's skills and report the best matches with their match percentages, best first.",
}

func (c *Client) Generate(ctx context.Context, kind Kind, state State) (string, error) {
	instr, ok := intentPrompts[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownIntent, kind)
	}

	userCtx := map[string]interface{}{
		"user":        state.User,
		"skills":      state.Data.Skills,
		"projects":    state.Data.Projects,
		"jobs":        state.Data.Jobs,
		"block_count": state.BlockCount,
	}
	ctxBytes, err := json.Marshal(userCtx)
	if err != nil {
		return "", err
	}

	prompt := instr + " Respond with plain text only, no markdown, no code fences.\n\nContext:\n" + string(ctxBytes)
	chatReq := map[string]interface{}{
		"agent": "auto",
		"input": prompt,
	}
	b, err := json.Marshal(chatReq)
	if err != nil {
		return "", err
	}

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("ai-service returned non-200 status")
	}

	var chatResp struct {
		Agent  string `json:"agent"`
		Output string `json:"output"`
	}
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", err
	}

	out := strings.TrimSpace(stripFences(chatResp.Output))
	if out == "" {
		return "", errors.New("ai-service returned empty output")
	}
	return out, nil
}

// stripFences removes a wrapping markdown code fence if the service added one
// despite the instructions.
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return t
}
