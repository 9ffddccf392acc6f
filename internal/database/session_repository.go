package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studyplan/pkg/models"
)

// SessionRepository handles database operations for study sessions
type SessionRepository struct {
	db sqlx.ExtContext
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db sqlx.ExtContext) *SessionRepository {
	return &SessionRepository{db: db}
}

// Exists reports whether the topic already has a session due on date
func (r *SessionRepository) Exists(ctx context.Context, topicID int64, date string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM study_sessions WHERE study_topic_id = ? AND due_date = ?`)

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, topicID, date); err != nil {
		return false, fmt.Errorf("failed to check study session: %w", err)
	}
	return count > 0, nil
}

// Create inserts a session for the topic due on date and reports whether a
// row was written. A second session for the same topic and day is ignored.
func (r *SessionRepository) Create(ctx context.Context, topicID int64, date string) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO study_sessions (study_topic_id, due_date) VALUES (?, ?)
		ON CONFLICT (study_topic_id, due_date) DO NOTHING
	`)
	res, err := r.db.ExecContext(ctx, query, topicID, date)
	if err != nil {
		return false, fmt.Errorf("failed to create study session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create study session: %w", err)
	}
	return n > 0, nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, sessionID int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM study_sessions WHERE id = ?`), sessionID); err != nil {
		return fmt.Errorf("failed to delete study session: %w", err)
	}
	return nil
}

// TopicID resolves the topic a session belongs to. found is false when no
// session (or no topic) matches.
func (r *SessionRepository) TopicID(ctx context.Context, sessionID int64) (id int64, found bool, err error) {
	query := r.db.Rebind(`
		SELECT t.id
		FROM study_sessions s
		JOIN study_topics t ON s.study_topic_id = t.id
		WHERE s.id = ?
	`)
	err = sqlx.GetContext(ctx, r.db, &id, query, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get study topic for session: %w", err)
	}
	return id, true, nil
}

// GetBySubject returns the pending sessions of a subject's topics
func (r *SessionRepository) GetBySubject(ctx context.Context, subjectName string) ([]models.StudySessionInfo, error) {
	query := r.db.Rebind(`
		SELECT s.id, s.due_date, t.name AS study_topic_name
		FROM study_sessions s
		JOIN study_topics t ON s.study_topic_id = t.id
		WHERE t.subject_name = ?
		ORDER BY s.due_date ASC, s.id ASC
	`)

	sessions := []models.StudySessionInfo{}
	if err := sqlx.SelectContext(ctx, r.db, &sessions, query, subjectName); err != nil {
		return nil, fmt.Errorf("failed to get study sessions for subject: %w", err)
	}
	return sessions, nil
}
