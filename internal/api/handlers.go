package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/studyplan/pkg/models"
)

// StudyService is what the HTTP layer needs from the study service
type StudyService interface {
	GetStudyTopics(ctx context.Context) ([]models.StudyTopic, error)
	GetStudyTopicsForToday(ctx context.Context) ([]models.StudyTopic, error)
	GetStudyTopicsForSubject(ctx context.Context, subjectName string) ([]models.StudyTopic, error)
	AddStudyTopic(ctx context.Context, info models.StudyTopicInfo) (int64, error)
	DeleteStudyTopic(ctx context.Context, topicID int64) error
	GetSubjects(ctx context.Context) ([]models.Subject, error)
	AddSubject(ctx context.Context, name string) error
	DeleteSubject(ctx context.Context, name string) error
	GetStudySessionsForSubject(ctx context.Context, subjectName string) ([]models.StudySessionResponse, error)
	CompleteStudySession(ctx context.Context, sessionID int64) error
}

// Handler serves the study planner API
type Handler struct {
	svc StudyService
}

// NewHandler creates a handler on top of svc
func NewHandler(svc StudyService) *Handler {
	return &Handler{svc: svc}
}

// fail records err on the context for the request log and writes the error response
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status, code := statusFor(err)
	respondError(c, status, code, err)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, c.Param(name), err)
	}
	return id, nil
}

// HealthCheck reports that the process is up
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "I am alive")
}

// GetStudyTopics lists every topic
func (h *Handler) GetStudyTopics(c *gin.Context) {
	topics, err := h.svc.GetStudyTopics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// GetStudyTopicsToday lists the topics due today
func (h *Handler) GetStudyTopicsToday(c *gin.Context) {
	topics, err := h.svc.GetStudyTopicsForToday(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// GetStudyTopicsForSubject lists the topics of a subject
func (h *Handler) GetStudyTopicsForSubject(c *gin.Context) {
	topics, err := h.svc.GetStudyTopicsForSubject(c.Request.Context(), c.Param("subject_name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// AddStudyTopic creates a topic. A body that does not decode or lacks a name
// or subject is a server failure like any other.
func (h *Handler) AddStudyTopic(c *gin.Context) {
	var info models.StudyTopicInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		fail(c, fmt.Errorf("failed to decode study topic: %w", err))
		return
	}

	id, err := h.svc.AddStudyTopic(c.Request.Context(), info)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteStudyTopic removes a topic and its pending sessions
func (h *Handler) DeleteStudyTopic(c *gin.Context) {
	id, err := pathID(c, "study_topic_id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.svc.DeleteStudyTopic(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetSubjects lists every subject
func (h *Handler) GetSubjects(c *gin.Context) {
	subjects, err := h.svc.GetSubjects(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// AddSubject creates a subject named by the path
func (h *Handler) AddSubject(c *gin.Context) {
	if err := h.svc.AddSubject(c.Request.Context(), c.Param("subject_name")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteSubject removes a subject, leaving its topics in place
func (h *Handler) DeleteSubject(c *gin.Context) {
	if err := h.svc.DeleteSubject(c.Request.Context(), c.Param("subject_name")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetStudySessionsForSubject materializes today's sessions, then lists the subject's pending ones
func (h *Handler) GetStudySessionsForSubject(c *gin.Context) {
	sessions, err := h.svc.GetStudySessionsForSubject(c.Request.Context(), c.Param("subject_name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// CompleteStudySession marks a session as done. Unknown sessions are a 404.
func (h *Handler) CompleteStudySession(c *gin.Context) {
	id, err := pathID(c, "study_session_id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.svc.CompleteStudySession(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}
