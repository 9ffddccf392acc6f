package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/studyplan/internal/logger"
	"github.com/example/studyplan/pkg/models"
)

// DefaultRunAt is the UTC time of day of the daily run
const DefaultRunAt = "00:05"

const jobTimeout = 2 * time.Minute

// Notifier interface for sending notifications
type Notifier interface {
	SendReminders(ctx context.Context, topics []models.StudyTopic) error
}

// Planner is the part of the study service the daily job drives
type Planner interface {
	MaterializeToday(ctx context.Context) error
	GetStudyTopicsForToday(ctx context.Context) ([]models.StudyTopic, error)
}

// Scheduler materializes the day's sessions once a day and sends a reminder
type Scheduler struct {
	scheduler *gocron.Scheduler
	planner   Planner
	notifier  Notifier
	runAt     string
	log       *logger.Logger
}

// New creates a new scheduler instance. notifier may be nil.
func New(planner Planner, notifier Notifier, runAt string, log *logger.Logger) *Scheduler {
	if runAt == "" {
		runAt = DefaultRunAt
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		planner:   planner,
		notifier:  notifier,
		runAt:     runAt,
		log:       log,
	}
}

// Start begins running the daily job without blocking
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.runAt).Do(s.runDaily); err != nil {
		return fmt.Errorf("failed to schedule daily job at %q: %w", s.runAt, err)
	}
	s.scheduler.StartAsync()
	s.log.Info("Scheduler started", "run_at", s.runAt)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("Scheduler stopped")
}

// NextRun returns when the daily job runs next
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.log.Error("Daily study job failed", "error", err)
	}
}

// RunOnce materializes today's sessions and notifies about the due topics
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if err := s.planner.MaterializeToday(ctx); err != nil {
		return fmt.Errorf("failed to materialize sessions: %w", err)
	}

	if s.notifier == nil {
		return nil
	}

	topics, err := s.planner.GetStudyTopicsForToday(ctx)
	if err != nil {
		return fmt.Errorf("failed to get due topics: %w", err)
	}
	if err := s.notifier.SendReminders(ctx, topics); err != nil {
		return err
	}
	s.log.Info("Sent study reminder", "topics", len(topics))
	return nil
}
