package service

import (
	"context"
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/observability"
	"github.com/kyungmin-dev/taskbell/internal/provider"
	"github.com/kyungmin-dev/taskbell/internal/ratelimit"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"go.uber.org/zap"
)

const sendRateBucket = "kakao"

// DeliveryResult reports the outcome of a delivery attempt. Tokens is
// non-nil when a refresh happened during the attempt, whether or not the
// retry after it succeeded.
type DeliveryResult struct {
	Succeeded bool
	Tokens    *provider.TokenPair
}

// DeliveryService pushes a message through the provider gateway. A failed
// send gets exactly one refresh-and-retry cycle; there is never a second
// refresh or a third send within one call.
type DeliveryService struct {
	gateway  provider.Gateway
	channels repository.ChannelRepository
	limiter  ratelimit.RateLimiter
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewDeliveryService(
	gateway provider.Gateway,
	channels repository.ChannelRepository,
	limiter ratelimit.RateLimiter,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DeliveryService{
		gateway:  gateway,
		channels: channels,
		limiter:  limiter,
		metrics:  metrics,
		logger:   logger,
	}
}

// Deliver sends message using the channel's access token. When the first
// send fails and a refresh token is available, it refreshes once, persists
// the rotated pair, and retries once with the fresh access token. Refresh
// and persistence failures never propagate; they only downgrade the result.
func (s *DeliveryService) Deliver(ctx context.Context, channel *domain.NotificationChannel, message string) DeliveryResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if channel == nil {
		return DeliveryResult{}
	}

	s.waitForSlot(ctx)

	if s.send(ctx, channel.AccessToken, message) {
		return DeliveryResult{Succeeded: true}
	}

	if channel.RefreshToken == "" {
		s.logger.Warn("send failed and no refresh token is stored")
		return DeliveryResult{}
	}

	pair, err := s.gateway.Refresh(ctx, channel.RefreshToken)
	if err != nil {
		s.logger.Error("token refresh failed", zap.Error(err))
		if s.metrics != nil {
			s.metrics.IncTokenRefresh("failure")
		}
		return DeliveryResult{}
	}
	if s.metrics != nil {
		s.metrics.IncTokenRefresh("success")
	}

	// The provider rotates the refresh token only near its expiry. Keep
	// the old one when the response omits it.
	if pair.RefreshToken == "" {
		pair.RefreshToken = channel.RefreshToken
	}

	if err := s.channels.UpdateTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		s.logger.Error("persisting rotated tokens failed", zap.Error(err))
	}

	s.waitForSlot(ctx)

	return DeliveryResult{
		Succeeded: s.send(ctx, pair.AccessToken, message),
		Tokens:    pair,
	}
}

func (s *DeliveryService) send(ctx context.Context, accessToken, message string) bool {
	start := time.Now()
	ok := s.gateway.SendMessage(ctx, accessToken, message)
	if s.metrics != nil {
		s.metrics.ObserveKakaoSendDuration(time.Since(start))
	}
	return ok
}

// waitForSlot is advisory: a limiter outage should not block reminders.
func (s *DeliveryService) waitForSlot(ctx context.Context) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Wait(ctx, sendRateBucket); err != nil {
		s.logger.Warn("rate limiter unavailable, sending anyway", zap.Error(err))
	}
}
