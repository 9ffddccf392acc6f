package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studyplan/pkg/models"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db sqlx.ExtContext
}

// NewSubjectRepository creates a new repository instance
func NewSubjectRepository(db sqlx.ExtContext) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// GetAll returns every subject ordered by name
func (r *SubjectRepository) GetAll(ctx context.Context) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := sqlx.SelectContext(ctx, r.db, &subjects, `SELECT name FROM subjects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	return subjects, nil
}

// Create inserts a subject; names are unique
func (r *SubjectRepository) Create(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO subjects (name) VALUES (?)`), name); err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// Delete removes a subject. Topics referring to it are kept.
func (r *SubjectRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM subjects WHERE name = ?`), name); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}
