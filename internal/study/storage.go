package study

import (
	"context"

	"github.com/example/studyplan/pkg/models"
)

// Storage is the record store the study service runs on. Every method is a
// single statement; nothing spans two calls.
type Storage interface {
	GetAllTopics(ctx context.Context) ([]models.StudyTopic, error)
	GetTopicsForSubject(ctx context.Context, subjectName string) ([]models.StudyTopic, error)
	AddTopic(ctx context.Context, info models.StudyTopicInfo, creationDate string) (int64, error)
	DeleteTopic(ctx context.Context, topicID int64) error

	SessionExists(ctx context.Context, topicID int64, date string) (bool, error)
	// CreateSession reports created=false when the topic already had a session on date
	CreateSession(ctx context.Context, topicID int64, date string) (created bool, err error)
	DeleteSession(ctx context.Context, sessionID int64) error
	// TopicIDForSession reports found=false when the session does not resolve to a topic
	TopicIDForSession(ctx context.Context, sessionID int64) (topicID int64, found bool, err error)
	GetSessionsForSubject(ctx context.Context, subjectName string) ([]models.StudySessionInfo, error)

	IncrementTotalSessions(ctx context.Context, topicID int64) error
	IncrementCompletedSessions(ctx context.Context, topicID int64) error
	SetLastSessionDate(ctx context.Context, topicID int64, date string) error

	GetSubjects(ctx context.Context) ([]models.Subject, error)
	AddSubject(ctx context.Context, name string) error
	DeleteSubject(ctx context.Context, name string) error
}

// Transactor is implemented by storages that can run several statements atomically.
// When available, the multi-step writes of materialization and completion use it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Storage) error) error
}

// atomically runs fn inside a transaction when the storage supports it and
// directly against the storage otherwise.
func atomically(ctx context.Context, store Storage, fn func(Storage) error) error {
	if tx, ok := store.(Transactor); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(store)
}
