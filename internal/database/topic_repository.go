package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studyplan/pkg/models"
)

const topicColumns = `id, name, description, subject_name, creation_date, last_session_date,
	total_sessions, completed_sessions`

// TopicRepository handles database operations for study topics
type TopicRepository struct {
	db sqlx.ExtContext
}

// NewTopicRepository creates a new repository instance
func NewTopicRepository(db sqlx.ExtContext) *TopicRepository {
	return &TopicRepository{db: db}
}

// GetAll returns every topic
func (r *TopicRepository) GetAll(ctx context.Context) ([]models.StudyTopic, error) {
	topics := []models.StudyTopic{}
	query := `SELECT ` + topicColumns + ` FROM study_topics ORDER BY id`

	if err := sqlx.SelectContext(ctx, r.db, &topics, query); err != nil {
		return nil, fmt.Errorf("failed to get study topics: %w", err)
	}
	return topics, nil
}

// GetBySubject returns the topics of a subject
func (r *TopicRepository) GetBySubject(ctx context.Context, subjectName string) ([]models.StudyTopic, error) {
	topics := []models.StudyTopic{}
	query := r.db.Rebind(`SELECT ` + topicColumns + ` FROM study_topics WHERE subject_name = ? ORDER BY id`)

	if err := sqlx.SelectContext(ctx, r.db, &topics, query, subjectName); err != nil {
		return nil, fmt.Errorf("failed to get study topics for subject: %w", err)
	}
	return topics, nil
}

// Create inserts a new topic created on creationDate and returns its id
func (r *TopicRepository) Create(ctx context.Context, info models.StudyTopicInfo, creationDate string) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO study_topics (name, description, subject_name, creation_date)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		info.Name,
		info.Description,
		info.SubjectName,
		creationDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create study topic: %w", err)
	}
	return id, nil
}

// Delete removes a topic; its pending sessions go with it
func (r *TopicRepository) Delete(ctx context.Context, topicID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM study_topics WHERE id = ?`), topicID)
	if err != nil {
		return fmt.Errorf("failed to delete study topic: %w", err)
	}
	return nil
}

// IncrementTotalSessions adds one to the topic's total sessions counter
func (r *TopicRepository) IncrementTotalSessions(ctx context.Context, topicID int64) error {
	query := r.db.Rebind(`UPDATE study_topics SET total_sessions = total_sessions + 1 WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, topicID); err != nil {
		return fmt.Errorf("failed to increase total sessions: %w", err)
	}
	return nil
}

// IncrementCompletedSessions adds one to the topic's completed sessions counter.
// The counter never overtakes total_sessions.
func (r *TopicRepository) IncrementCompletedSessions(ctx context.Context, topicID int64) error {
	query := r.db.Rebind(`
		UPDATE study_topics SET completed_sessions = completed_sessions + 1
		WHERE id = ? AND completed_sessions < total_sessions
	`)
	if _, err := r.db.ExecContext(ctx, query, topicID); err != nil {
		return fmt.Errorf("failed to increase completed sessions: %w", err)
	}
	return nil
}

// SetLastSessionDate moves the topic's last session date forward to date.
// Older dates are ignored.
func (r *TopicRepository) SetLastSessionDate(ctx context.Context, topicID int64, date string) error {
	query := r.db.Rebind(`
		UPDATE study_topics SET last_session_date = ?
		WHERE id = ? AND (last_session_date IS NULL OR last_session_date < ?)
	`)
	if _, err := r.db.ExecContext(ctx, query, date, topicID, date); err != nil {
		return fmt.Errorf("failed to set last session date: %w", err)
	}
	return nil
}
