package study

import (
	"context"

	"github.com/example/studyplan/internal/spaced_repetition"
)

// MaterializeToday makes sure every topic due today has exactly one session
// dated today, advancing the topic's bookkeeping for each session it creates.
// Concurrent calls run one after the other.
func (s *Service) MaterializeToday(ctx context.Context) error {
	s.materializeMu.Lock()
	defer s.materializeMu.Unlock()

	today := s.today()
	date := spaced_repetition.FormatDate(today)

	due, err := s.dueTopics(ctx, today)
	if err != nil {
		return err
	}

	created := 0
	for _, topic := range due {
		// already reviewed today, possibly completed and deleted since
		if topic.LastSessionDate != nil && *topic.LastSessionDate == date {
			continue
		}

		var made bool
		err := atomically(ctx, s.store, func(st Storage) error {
			var err error
			made, err = s.materializeTopic(ctx, st, topic.ID, date)
			return err
		})
		if err != nil {
			return err
		}
		if made {
			created++
		}
	}

	if created > 0 {
		s.log.Info("Materialized study sessions", "date", date, "due", len(due), "created", created)
	}
	return nil
}

// materializeTopic creates the topic's session for date unless one exists.
// The bookkeeping only advances when the insert actually landed.
func (s *Service) materializeTopic(ctx context.Context, st Storage, topicID int64, date string) (bool, error) {
	exists, err := st.SessionExists(ctx, topicID, date)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	created, err := st.CreateSession(ctx, topicID, date)
	if err != nil {
		return false, err
	}
	if !created {
		s.log.Debug("Study session already created elsewhere", "topic_id", topicID, "date", date)
		return false, nil
	}
	if err := st.SetLastSessionDate(ctx, topicID, date); err != nil {
		return false, err
	}
	if err := st.IncrementTotalSessions(ctx, topicID); err != nil {
		return false, err
	}
	return true, nil
}
