package repository

import (
	"context"
	"encoding/json"
	"time"

	"portfolio-studio/internal/domain"
	"portfolio-studio/internal/model"

	"github.com/jackc/pgx/v4/pgxpool"
)

// SessionsRepo persists best-effort snapshots of a session's document and
// transcript. The in-memory engine is the source of truth; a nil pool turns
// every call into a no-op and nothing observable changes.
type SessionsRepo struct {
	pool *pgxpool.Pool
}

func NewSessionsRepo(pool *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{pool: pool}
}

func (r *SessionsRepo) Save(ctx context.Context, s *domain.Session, blocks []model.ContentBlock, transcript []domain.ChatMessage) error {
	if r.pool == nil {
		return nil
	}

	docB, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	trB, err := json.Marshal(transcript)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO portfolio_sessions (id, user_name, user_email, user_role, document, transcript, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET user_name = EXCLUDED.user_name, user_email = EXCLUDED.user_email, user_role = EXCLUDED.user_role, document = EXCLUDED.document, transcript = EXCLUDED.transcript, updated_at = EXCLUDED.updated_at`,
		s.ID, s.User.Name, s.User.Email, s.User.Role, docB, trB, s.CreatedAt, time.Now())
	return err
}
