package study

import (
	"context"
	"sync"
	"time"

	"github.com/example/studyplan/internal/logger"
	"github.com/example/studyplan/internal/spaced_repetition"
	"github.com/example/studyplan/pkg/models"
)

// Service answers which topics are due, keeps today's sessions materialized
// and completes sessions. It is safe for concurrent use.
type Service struct {
	store Storage
	log   *logger.Logger
	now   func() time.Time

	// materializeMu serializes MaterializeToday end to end
	materializeMu sync.Mutex
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the source of "now"
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger used for soft failures
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a study service on top of store
func NewService(store Storage, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() time.Time {
	return spaced_repetition.Truncate(s.now())
}

// GetStudyTopics lists every topic
func (s *Service) GetStudyTopics(ctx context.Context) ([]models.StudyTopic, error) {
	return s.store.GetAllTopics(ctx)
}

// GetStudyTopicsForSubject lists the topics of one subject
func (s *Service) GetStudyTopicsForSubject(ctx context.Context, subjectName string) ([]models.StudyTopic, error) {
	return s.store.GetTopicsForSubject(ctx, subjectName)
}

// AddStudyTopic creates a topic dated today and returns its id
func (s *Service) AddStudyTopic(ctx context.Context, info models.StudyTopicInfo) (int64, error) {
	return s.store.AddTopic(ctx, info, spaced_repetition.FormatDate(s.today()))
}

// DeleteStudyTopic removes a topic
func (s *Service) DeleteStudyTopic(ctx context.Context, topicID int64) error {
	return s.store.DeleteTopic(ctx, topicID)
}

// GetSubjects lists every subject
func (s *Service) GetSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.store.GetSubjects(ctx)
}

// AddSubject creates a subject
func (s *Service) AddSubject(ctx context.Context, name string) error {
	return s.store.AddSubject(ctx, name)
}

// DeleteSubject removes a subject. Its topics are not touched.
func (s *Service) DeleteSubject(ctx context.Context, name string) error {
	return s.store.DeleteSubject(ctx, name)
}

// GetStudySessionsForSubject materializes today's sessions and then lists the
// pending sessions of the subject.
func (s *Service) GetStudySessionsForSubject(ctx context.Context, subjectName string) ([]models.StudySessionResponse, error) {
	if err := s.MaterializeToday(ctx); err != nil {
		return nil, err
	}

	sessions, err := s.store.GetSessionsForSubject(ctx, subjectName)
	if err != nil {
		return nil, err
	}

	today := s.today()
	responses := make([]models.StudySessionResponse, 0, len(sessions))
	for _, session := range sessions {
		days, err := spaced_repetition.DaysSince(session.DueDate, today)
		if err != nil {
			return nil, err
		}
		responses = append(responses, models.StudySessionResponse{
			ID:             session.ID,
			StudyTopicName: session.StudyTopicName,
			DaysPassed:     days,
		})
	}
	return responses, nil
}
