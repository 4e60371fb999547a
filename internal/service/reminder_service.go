package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/observability"
	"github.com/kyungmin-dev/taskbell/internal/reminder"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"go.uber.org/zap"
)

const (
	deliveryFailedReason = "message delivery failed"
	testMessage          = "Test notification. Your Kakao connection is working!"
)

// Deliverer pushes one message to the connected account.
type Deliverer interface {
	Deliver(ctx context.Context, channel *domain.NotificationChannel, message string) DeliveryResult
}

// RunResult is the outcome of one scheduled reminder run.
type RunResult struct {
	Configured   bool
	Sent         bool
	Message      string
	PendingCount int
}

// ReminderService assembles the reminder text for a run and hands it to
// the deliverer, recording the outcome in the delivery log.
type ReminderService struct {
	tasks     repository.TaskRepository
	channels  repository.ChannelRepository
	logs      repository.DeliveryLogRepository
	deliverer Deliverer
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewReminderService(
	tasks repository.TaskRepository,
	channels repository.ChannelRepository,
	logs repository.DeliveryLogRepository,
	deliverer Deliverer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReminderService{
		tasks:     tasks,
		channels:  channels,
		logs:      logs,
		deliverer: deliverer,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// MorningRun sends the day's task digest.
func (s *ReminderService) MorningRun(ctx context.Context) (RunResult, error) {
	channel, ok, err := s.deliverableChannel(ctx)
	if err != nil {
		return RunResult{}, err
	}
	if !ok {
		s.logger.Info("morning run skipped, channel not deliverable")
		return RunResult{}, nil
	}

	now := s.now()
	tasks, err := s.tasks.DueToday(ctx, now)
	if err != nil {
		return RunResult{}, err
	}

	message := reminder.MorningDigest(now, tasks)
	result := s.deliverer.Deliver(ctx, channel, message)
	s.record(ctx, domain.KindMorning, result.Succeeded)

	return RunResult{Configured: true, Sent: result.Succeeded, Message: message}, nil
}

// EveningRun sends the end-of-day completion check.
func (s *ReminderService) EveningRun(ctx context.Context) (RunResult, error) {
	channel, ok, err := s.deliverableChannel(ctx)
	if err != nil {
		return RunResult{}, err
	}
	if !ok {
		s.logger.Info("evening run skipped, channel not deliverable")
		return RunResult{}, nil
	}

	tasks, err := s.tasks.IncompleteToday(ctx, s.now())
	if err != nil {
		return RunResult{}, err
	}

	message := reminder.EveningCheck(tasks)
	result := s.deliverer.Deliver(ctx, channel, message)
	s.record(ctx, domain.KindEvening, result.Succeeded)

	return RunResult{
		Configured:   true,
		Sent:         result.Succeeded,
		Message:      message,
		PendingCount: len(tasks),
	}, nil
}

// TestRun sends a fixed probe message. Unlike the scheduled runs it only
// requires a stored access token, so a paused channel can still be tested.
func (s *ReminderService) TestRun(ctx context.Context) (RunResult, error) {
	channel, err := s.channels.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return RunResult{}, nil
	}
	if err != nil {
		return RunResult{}, err
	}
	if channel.AccessToken == "" {
		return RunResult{}, nil
	}

	result := s.deliverer.Deliver(ctx, channel, testMessage)
	s.record(ctx, domain.KindTest, result.Succeeded)

	return RunResult{Configured: true, Sent: result.Succeeded, Message: testMessage}, nil
}

// RecentDeliveries lists the latest delivery outcomes, newest first.
func (s *ReminderService) RecentDeliveries(ctx context.Context, limit int) ([]domain.DeliveryLog, error) {
	return s.logs.ListRecent(ctx, limit)
}

func (s *ReminderService) deliverableChannel(ctx context.Context) (*domain.NotificationChannel, bool, error) {
	channel, err := s.channels.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !channel.Deliverable() {
		return nil, false, nil
	}
	return channel, true, nil
}

func (s *ReminderService) record(ctx context.Context, kind domain.ReminderKind, succeeded bool) {
	if s.metrics != nil {
		if succeeded {
			s.metrics.IncReminderSent(kind.String())
		} else {
			s.metrics.IncReminderFailed(kind.String(), "send")
		}
	}

	log := &domain.DeliveryLog{
		ID:        uuid.NewString(),
		Kind:      kind,
		Succeeded: succeeded,
		CreatedAt: s.now().UTC(),
	}
	if !succeeded {
		reason := deliveryFailedReason
		log.ErrorMessage = &reason
	}

	if err := s.logs.Create(ctx, log); err != nil {
		s.logger.Error("recording delivery outcome failed",
			zap.String("kind", kind.String()),
			zap.Error(err))
	}
}
