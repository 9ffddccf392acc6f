package models

// StudyTopic represents something to be reviewed on a spaced-repetition schedule
type StudyTopic struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	Description       string  `json:"description" db:"description"`
	SubjectName       string  `json:"subject_name" db:"subject_name"`
	CreationDate      string  `json:"creation_date" db:"creation_date"`         // YYYY-MM-DD, never changes
	LastSessionDate   *string `json:"last_session_date" db:"last_session_date"` // YYYY-MM-DD, nil until the first session
	TotalSessions     int     `json:"total_sessions" db:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions" db:"completed_sessions"`
}

// StudyTopicInfo is the payload used to create a topic
type StudyTopicInfo struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SubjectName string `json:"subject_name" binding:"required"`
}
