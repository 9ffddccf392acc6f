package study

import (
	"context"
	"fmt"
)

// CompleteStudySession credits the owning topic with a completed session and
// removes the session. Unknown sessions yield ErrSessionNotFound.
func (s *Service) CompleteStudySession(ctx context.Context, sessionID int64) error {
	return atomically(ctx, s.store, func(st Storage) error {
		topicID, found, err := st.TopicIDForSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("session %d: %w", sessionID, ErrSessionNotFound)
		}

		if err := st.IncrementCompletedSessions(ctx, topicID); err != nil {
			return err
		}
		return st.DeleteSession(ctx, sessionID)
	})
}
