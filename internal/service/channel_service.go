package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/provider"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"go.uber.org/zap"
)

const (
	defaultMorningTime = "09:00"
	defaultEveningTime = "18:00"
)

// ChannelSettings is the user-facing view of the notification channel.
// Tokens never leave the service layer.
type ChannelSettings struct {
	Connected   bool
	Active      bool
	MorningTime string
	EveningTime string
}

// ChannelService owns the Kakao connection lifecycle: handing out the
// consent URL, completing the code exchange, and managing settings.
type ChannelService struct {
	gateway  provider.Gateway
	channels repository.ChannelRepository
	logger   *zap.Logger
}

func NewChannelService(gateway provider.Gateway, channels repository.ChannelRepository, logger *zap.Logger) *ChannelService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChannelService{
		gateway:  gateway,
		channels: channels,
		logger:   logger,
	}
}

// AuthorizationURL returns the provider consent URL, or
// domain.ErrNotConfigured when the Kakao credentials are absent.
func (s *ChannelService) AuthorizationURL() (string, error) {
	url, ok := s.gateway.AuthorizationURL()
	if !ok {
		return "", fmt.Errorf("%w: kakao credentials are not set", domain.ErrNotConfigured)
	}
	return url, nil
}

// CompleteAuthorization exchanges the consent code for tokens and stores
// them, activating the channel.
func (s *ChannelService) CompleteAuthorization(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("%w: authorization code is required", domain.ErrValidation)
	}

	pair, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	channel := &domain.NotificationChannel{
		ID:           domain.DefaultChannelID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		MorningTime:  defaultMorningTime,
		EveningTime:  defaultEveningTime,
		Active:       true,
	}
	if err := s.channels.Upsert(ctx, channel); err != nil {
		return err
	}

	s.logger.Info("kakao channel connected")
	return nil
}

// Settings returns the current channel settings. A missing row reads as a
// disconnected channel with default reminder times.
func (s *ChannelService) Settings(ctx context.Context) (ChannelSettings, error) {
	channel, err := s.channels.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return ChannelSettings{
			MorningTime: defaultMorningTime,
			EveningTime: defaultEveningTime,
		}, nil
	}
	if err != nil {
		return ChannelSettings{}, err
	}

	return ChannelSettings{
		Connected:   channel.AccessToken != "",
		Active:      channel.Active,
		MorningTime: channel.MorningTime,
		EveningTime: channel.EveningTime,
	}, nil
}

// UpdateSettings applies a partial settings change after validating any
// clock values.
func (s *ChannelService) UpdateSettings(ctx context.Context, patch domain.ChannelSettingsPatch) (ChannelSettings, error) {
	if patch.MorningTime != nil {
		if err := validateClock(*patch.MorningTime); err != nil {
			return ChannelSettings{}, err
		}
	}
	if patch.EveningTime != nil {
		if err := validateClock(*patch.EveningTime); err != nil {
			return ChannelSettings{}, err
		}
	}

	channel, err := s.channels.UpdateSettings(ctx, patch)
	if err != nil {
		return ChannelSettings{}, err
	}

	return ChannelSettings{
		Connected:   channel.AccessToken != "",
		Active:      channel.Active,
		MorningTime: channel.MorningTime,
		EveningTime: channel.EveningTime,
	}, nil
}

func validateClock(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("%w: time must be HH:MM, got %q", domain.ErrValidation, value)
	}
	return nil
}
