package models

// StudySession is a pending review of a topic on a given day
type StudySession struct {
	ID           int64  `json:"id" db:"id"`
	StudyTopicID int64  `json:"study_topic_id" db:"study_topic_id"`
	DueDate      string `json:"due_date" db:"due_date"` // YYYY-MM-DD
}

// StudySessionInfo is a pending session joined with the name of its topic
type StudySessionInfo struct {
	ID             int64  `db:"id"`
	DueDate        string `db:"due_date"`
	StudyTopicName string `db:"study_topic_name"`
}

// StudySessionResponse is what clients see for a pending session
type StudySessionResponse struct {
	ID             int64  `json:"id"`
	StudyTopicName string `json:"study_topic_name"`
	DaysPassed     int    `json:"days_passed"`
}
