package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/studyplan/internal/logger"
)

// NewRouter wires the API routes
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), CORS())

	r.GET("/", h.HealthCheck)

	r.GET("/study_topics", h.GetStudyTopics)
	r.GET("/study_topics_today", h.GetStudyTopicsToday)
	r.POST("/study_topic", h.AddStudyTopic)
	r.DELETE("/study_topic/:study_topic_id", h.DeleteStudyTopic)
	r.GET("/study_topic/subject/:subject_name", h.GetStudyTopicsForSubject)

	r.GET("/subjects", h.GetSubjects)
	r.POST("/subject/:subject_name", h.AddSubject)
	r.DELETE("/subject/:subject_name", h.DeleteSubject)

	r.GET("/study_session/:subject_name", h.GetStudySessionsForSubject)
	r.POST("/study_session/complete/:study_session_id", h.CompleteStudySession)

	return r
}

// Server is the HTTP server of the API
type Server struct {
	srv *http.Server
	log *logger.Logger
}

// NewServer creates a server listening on addr
func NewServer(addr string, h *Handler, log *logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(h, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Running API", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("API stopped")
	return nil
}
