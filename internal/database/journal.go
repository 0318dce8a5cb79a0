package database

import (
	"context"
	"fmt"
	"time"

	"sheetform/internal/contact"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Submission is one journaled submit attempt.
type Submission struct {
	ID         string    `json:"id"`
	Outcome    string    `json:"outcome"`
	StatusCode *int      `json:"status_code,omitempty"`
	Error      *string   `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Journal keeps an audit trail of submit attempts. It stores outcomes only,
// never form contents.
type Journal struct {
	db querier
}

func NewJournal(db querier) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Record(ctx context.Context, attempt contact.Attempt) error {
	var code *int
	if attempt.StatusCode != 0 {
		code = &attempt.StatusCode
	}
	var errText *string
	if attempt.Err != "" {
		errText = &attempt.Err
	}

	_, err := j.db.Exec(ctx, `
		INSERT INTO submissions (id, outcome, status_code, error, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, attempt.ID.String(), string(attempt.Outcome), code, errText, attempt.At)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, err := j.db.Query(ctx, `
		SELECT id::text, outcome, status_code, error, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	results := []Submission{}
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.Outcome, &s.StatusCode, &s.Error, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}
	return results, nil
}
