package study

import (
	"context"
	"time"

	"github.com/example/studyplan/internal/spaced_repetition"
	"github.com/example/studyplan/pkg/models"
)

// GetStudyTopicsForToday returns the topics due today. Topics whose creation
// date cannot be parsed are logged and left out.
func (s *Service) GetStudyTopicsForToday(ctx context.Context) ([]models.StudyTopic, error) {
	return s.dueTopics(ctx, s.today())
}

func (s *Service) dueTopics(ctx context.Context, today time.Time) ([]models.StudyTopic, error) {
	topics, err := s.store.GetAllTopics(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]models.StudyTopic, 0, len(topics))
	for _, topic := range topics {
		created, err := spaced_repetition.ParseDate(topic.CreationDate)
		if err != nil {
			s.log.Warn("Skipping topic with unreadable creation date",
				"topic_id", topic.ID,
				"creation_date", topic.CreationDate,
				"error", err,
			)
			continue
		}
		if spaced_repetition.IsDue(created, today) {
			due = append(due, topic)
		}
	}
	return due, nil
}
