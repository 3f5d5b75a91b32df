package tutor

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) SaveMessage(ctx context.Context, msg *StoredMessage) error {
	var provider sql.NullString
	if msg.Provider != "" {
		provider = sql.NullString{String: msg.Provider, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, student_id, role, text, category, provider)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		uuid.New(),
		msg.StudentID,
		string(msg.Role),
		msg.Text,
		string(msg.Category),
		provider,
	)
	return err
}

// NopRepo drops transcripts; used when no database is configured.
type NopRepo struct{}

func (NopRepo) SaveMessage(context.Context, *StoredMessage) error { return nil }
