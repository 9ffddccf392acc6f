package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studyplan/internal/database"
	"github.com/example/studyplan/internal/logger"
	"github.com/example/studyplan/internal/study"
	"github.com/example/studyplan/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var now = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T) (*gin.Engine, *database.Store) {
	t.Helper()
	db, err := database.Connect(context.Background(), database.Options{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "api.db"),
	})
	require.NoError(t, err)
	store := database.NewStore(db)
	t.Cleanup(func() { store.Close() })

	svc := study.NewService(store, study.WithClock(func() time.Time { return now }))
	return NewRouter(NewHandler(svc), logger.Nop()), store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestAPI(t)
	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I am alive", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	r, _ := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORS_Preflight(t *testing.T) {
	r, _ := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/study_topic", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStudyFlow(t *testing.T) {
	r, _ := newTestAPI(t)

	w := do(r, http.MethodPost, "/subject/math", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/subjects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.Subject{{Name: "math"}}, decode[[]models.Subject](t, w))

	w = do(r, http.MethodPost, "/study_topic", `{"name":"limits","subject_name":"math"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]int64](t, w)
	topicID := created["id"]
	require.NotZero(t, topicID)

	w = do(r, http.MethodGet, "/study_topics", "")
	require.Equal(t, http.StatusOK, w.Code)
	topics := decode[[]models.StudyTopic](t, w)
	require.Len(t, topics, 1)
	assert.Equal(t, "2025-06-15", topics[0].CreationDate)
	assert.Equal(t, "", topics[0].Description)

	w = do(r, http.MethodGet, "/study_topic/subject/math", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.StudyTopic](t, w), 1)

	w = do(r, http.MethodGet, "/study_topics_today", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.StudyTopic](t, w), 1)

	w = do(r, http.MethodGet, "/study_session/math", "")
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode[[]models.StudySessionResponse](t, w)
	require.Len(t, sessions, 1)
	assert.Equal(t, "limits", sessions[0].StudyTopicName)
	assert.Equal(t, 0, sessions[0].DaysPassed)

	// a second read does not create another session
	w = do(r, http.MethodGet, "/study_session/math", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.StudySessionResponse](t, w), 1)

	path := "/study_session/complete/" + strconv.FormatInt(sessions[0].ID, 10)
	w = do(r, http.MethodPost, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", decode[errorEnvelope](t, w).Error.Code)

	w = do(r, http.MethodGet, "/study_topics", "")
	topics = decode[[]models.StudyTopic](t, w)
	assert.Equal(t, 1, topics[0].TotalSessions)
	assert.Equal(t, 1, topics[0].CompletedSessions)

	w = do(r, http.MethodGet, "/study_session/math", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.StudySessionResponse](t, w))

	w = do(r, http.MethodDelete, "/subject/math", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/study_topic/subject/math", "")
	assert.Len(t, decode[[]models.StudyTopic](t, w), 1, "topics survive their subject")

	w = do(r, http.MethodDelete, "/study_topic/"+strconv.FormatInt(topicID, 10), "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/study_topics", "")
	assert.Empty(t, decode[[]models.StudyTopic](t, w))
}

func TestStudyTopicsToday_ExcludesOffScheduleTopics(t *testing.T) {
	r, store := newTestAPI(t)
	ctx := context.Background()
	_, err := store.AddTopic(ctx, models.StudyTopicInfo{Name: "old", SubjectName: "math"}, "2025-05-24")
	require.NoError(t, err)
	_, err = store.AddTopic(ctx, models.StudyTopicInfo{Name: "due", SubjectName: "math"}, "2025-05-25")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/study_topics_today", "")
	require.Equal(t, http.StatusOK, w.Code)
	topics := decode[[]models.StudyTopic](t, w)
	require.Len(t, topics, 1)
	assert.Equal(t, "due", topics[0].Name)
}

func TestMalformedInputIsServerError(t *testing.T) {
	r, store := newTestAPI(t)

	for _, body := range []string{`{"name":`, `{}`, `{"name":"x"}`, `{"subject_name":"math"}`} {
		w := do(r, http.MethodPost, "/study_topic", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
	}
	topics, err := store.GetAllTopics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, topics, "rejected bodies must not create topics")

	w := do(r, http.MethodDelete, "/study_topic/abc", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(r, http.MethodPost, "/study_session/complete/abc", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(r, http.MethodPost, "/subject/dup", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/subject/dup", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type brokenService struct{ StudyService }

func (brokenService) GetStudySessionsForSubject(context.Context, string) ([]models.StudySessionResponse, error) {
	return nil, errors.New("connection refused")
}

func TestStorageFailureIsServerError(t *testing.T) {
	r := NewRouter(NewHandler(brokenService{}), logger.Nop())
	w := do(r, http.MethodGet, "/study_session/math", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode[errorEnvelope](t, w)
	assert.Equal(t, "internal_error", env.Error.Code)
	assert.Equal(t, "connection refused", env.Error.Message)
}
