package study

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/studyplan/pkg/models"
)

type sessionKey struct {
	topicID int64
	date    string
}

// memStore is an in-memory Storage that counts session inserts per key.
type memStore struct {
	mu sync.Mutex

	topics   map[int64]*models.StudyTopic
	sessions map[int64]models.StudySession
	subjects map[string]bool
	nextID   int64

	inserts map[sessionKey]int

	// existsDelay widens the check-then-insert window
	existsDelay time.Duration
	// hideSessions makes SessionExists miss every session, as when another
	// process inserts between the check and the insert
	hideSessions bool
	// failOn makes the named operation return errStore
	failOn string
}

var errStore = errors.New("store unavailable")

func newMemStore() *memStore {
	return &memStore{
		topics:   map[int64]*models.StudyTopic{},
		sessions: map[int64]models.StudySession{},
		subjects: map[string]bool{},
		inserts:  map[sessionKey]int{},
	}
}

func (m *memStore) fail(op string) error {
	if m.failOn == op {
		return fmt.Errorf("%s: %w", op, errStore)
	}
	return nil
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// seedTopic inserts a topic created on the given date
func (m *memStore) seedTopic(name, subject, created string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.topics[id] = &models.StudyTopic{ID: id, Name: name, SubjectName: subject, CreationDate: created}
	return id
}

func (m *memStore) topic(id int64) models.StudyTopic {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.topics[id]
}

func (m *memStore) sessionsFor(topicID int64) []models.StudySession {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StudySession
	for _, s := range m.sessions {
		if s.StudyTopicID == topicID {
			out = append(out, s)
		}
	}
	return out
}

func (m *memStore) insertCount(topicID int64, date string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts[sessionKey{topicID, date}]
}

func (m *memStore) GetAllTopics(ctx context.Context) ([]models.StudyTopic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetAllTopics"); err != nil {
		return nil, err
	}
	out := make([]models.StudyTopic, 0, len(m.topics))
	for _, t := range m.topics {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetTopicsForSubject(ctx context.Context, subjectName string) ([]models.StudyTopic, error) {
	all, err := m.GetAllTopics(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.StudyTopic{}
	for _, t := range all {
		if t.SubjectName == subjectName {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) AddTopic(ctx context.Context, info models.StudyTopicInfo, creationDate string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddTopic"); err != nil {
		return 0, err
	}
	id := m.id()
	m.topics[id] = &models.StudyTopic{
		ID:           id,
		Name:         info.Name,
		Description:  info.Description,
		SubjectName:  info.SubjectName,
		CreationDate: creationDate,
	}
	return id, nil
}

func (m *memStore) DeleteTopic(ctx context.Context, topicID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.topics, topicID)
	return nil
}

func (m *memStore) SessionExists(ctx context.Context, topicID int64, date string) (bool, error) {
	if m.existsDelay > 0 {
		time.Sleep(m.existsDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SessionExists"); err != nil {
		return false, err
	}
	if m.hideSessions {
		return false, nil
	}
	for _, s := range m.sessions {
		if s.StudyTopicID == topicID && s.DueDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateSession(ctx context.Context, topicID int64, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateSession"); err != nil {
		return false, err
	}
	m.inserts[sessionKey{topicID, date}]++
	for _, s := range m.sessions {
		if s.StudyTopicID == topicID && s.DueDate == date {
			return false, nil
		}
	}
	id := m.id()
	m.sessions[id] = models.StudySession{ID: id, StudyTopicID: topicID, DueDate: date}
	return true, nil
}

func (m *memStore) DeleteSession(ctx context.Context, sessionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteSession"); err != nil {
		return err
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *memStore) TopicIDForSession(ctx context.Context, sessionID int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return 0, false, nil
	}
	if _, ok := m.topics[s.StudyTopicID]; !ok {
		return 0, false, nil
	}
	return s.StudyTopicID, true, nil
}

func (m *memStore) GetSessionsForSubject(ctx context.Context, subjectName string) ([]models.StudySessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.StudySessionInfo{}
	for _, s := range m.sessions {
		t, ok := m.topics[s.StudyTopicID]
		if !ok || t.SubjectName != subjectName {
			continue
		}
		out = append(out, models.StudySessionInfo{ID: s.ID, DueDate: s.DueDate, StudyTopicName: t.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) IncrementTotalSessions(ctx context.Context, topicID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("IncrementTotalSessions"); err != nil {
		return err
	}
	if t, ok := m.topics[topicID]; ok {
		t.TotalSessions++
	}
	return nil
}

func (m *memStore) IncrementCompletedSessions(ctx context.Context, topicID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("IncrementCompletedSessions"); err != nil {
		return err
	}
	if t, ok := m.topics[topicID]; ok {
		t.CompletedSessions++
	}
	return nil
}

func (m *memStore) SetLastSessionDate(ctx context.Context, topicID int64, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.topics[topicID]; ok {
		if t.LastSessionDate == nil || *t.LastSessionDate < date {
			d := date
			t.LastSessionDate = &d
		}
	}
	return nil
}

func (m *memStore) GetSubjects(ctx context.Context) ([]models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Subject{}
	for name := range m.subjects {
		out = append(out, models.Subject{Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) AddSubject(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subjects[name] {
		return fmt.Errorf("subject %q already exists", name)
	}
	m.subjects[name] = true
	return nil
}

func (m *memStore) DeleteSubject(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subjects, name)
	return nil
}
