package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studyplan/internal/study"
	"github.com/example/studyplan/pkg/models"
)

// Store bundles the repositories into the storage used by the study service
type Store struct {
	db *sqlx.DB

	Topics   *TopicRepository
	Subjects *SubjectRepository
	Sessions *SessionRepository
}

// NewStore creates a store backed by db
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:       db,
		Topics:   NewTopicRepository(db),
		Subjects: NewSubjectRepository(db),
		Sessions: NewSessionRepository(db),
	}
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WithinTx runs fn against a storage bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(study.Storage) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	txStore := &Store{
		Topics:   NewTopicRepository(tx),
		Subjects: NewSubjectRepository(tx),
		Sessions: NewSessionRepository(tx),
	}
	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) GetAllTopics(ctx context.Context) ([]models.StudyTopic, error) {
	return s.Topics.GetAll(ctx)
}

func (s *Store) GetTopicsForSubject(ctx context.Context, subjectName string) ([]models.StudyTopic, error) {
	return s.Topics.GetBySubject(ctx, subjectName)
}

func (s *Store) AddTopic(ctx context.Context, info models.StudyTopicInfo, creationDate string) (int64, error) {
	return s.Topics.Create(ctx, info, creationDate)
}

func (s *Store) DeleteTopic(ctx context.Context, topicID int64) error {
	return s.Topics.Delete(ctx, topicID)
}

func (s *Store) SessionExists(ctx context.Context, topicID int64, date string) (bool, error) {
	return s.Sessions.Exists(ctx, topicID, date)
}

func (s *Store) CreateSession(ctx context.Context, topicID int64, date string) (bool, error) {
	return s.Sessions.Create(ctx, topicID, date)
}

func (s *Store) DeleteSession(ctx context.Context, sessionID int64) error {
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *Store) TopicIDForSession(ctx context.Context, sessionID int64) (int64, bool, error) {
	return s.Sessions.TopicID(ctx, sessionID)
}

func (s *Store) GetSessionsForSubject(ctx context.Context, subjectName string) ([]models.StudySessionInfo, error) {
	return s.Sessions.GetBySubject(ctx, subjectName)
}

func (s *Store) IncrementTotalSessions(ctx context.Context, topicID int64) error {
	return s.Topics.IncrementTotalSessions(ctx, topicID)
}

func (s *Store) IncrementCompletedSessions(ctx context.Context, topicID int64) error {
	return s.Topics.IncrementCompletedSessions(ctx, topicID)
}

func (s *Store) SetLastSessionDate(ctx context.Context, topicID int64, date string) error {
	return s.Topics.SetLastSessionDate(ctx, topicID, date)
}

func (s *Store) GetSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.Subjects.GetAll(ctx)
}

func (s *Store) AddSubject(ctx context.Context, name string) error {
	return s.Subjects.Create(ctx, name)
}

func (s *Store) DeleteSubject(ctx context.Context, name string) error {
	return s.Subjects.Delete(ctx, name)
}

var (
	_ study.Storage    = (*Store)(nil)
	_ study.Transactor = (*Store)(nil)
)
