package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/provider"
)

func TestAuthorizationURLNotConfigured(t *testing.T) {
	t.Parallel()

	svc := NewChannelService(&fakeGateway{}, &fakeChannelRepo{}, nil)

	_, err := svc.AuthorizationURL()
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestAuthorizationURLConfigured(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		authorizationURLFn: func() (string, bool) {
			return "https://kauth.kakao.com/oauth/authorize?client_id=abc", true
		},
	}
	svc := NewChannelService(gateway, &fakeChannelRepo{}, nil)

	url, err := svc.AuthorizationURL()
	if err != nil {
		t.Fatalf("AuthorizationURL() error = %v", err)
	}
	if url == "" {
		t.Fatal("url should not be empty")
	}
}

func TestCompleteAuthorizationStoresActiveChannel(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		exchangeCodeFn: func(ctx context.Context, code string) (*provider.TokenPair, error) {
			if code != "auth-code" {
				t.Fatalf("code = %s, want auth-code", code)
			}
			return &provider.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil
		},
	}

	var upserted *domain.NotificationChannel
	store := &fakeChannelRepo{
		upsertFn: func(ctx context.Context, channel *domain.NotificationChannel) error {
			upserted = channel
			return nil
		},
	}

	svc := NewChannelService(gateway, store, nil)
	if err := svc.CompleteAuthorization(context.Background(), "auth-code"); err != nil {
		t.Fatalf("CompleteAuthorization() error = %v", err)
	}

	if upserted == nil {
		t.Fatal("channel should be upserted")
	}
	if upserted.ID != domain.DefaultChannelID {
		t.Fatalf("id = %s, want %s", upserted.ID, domain.DefaultChannelID)
	}
	if upserted.AccessToken != "access-1" || upserted.RefreshToken != "refresh-1" {
		t.Fatalf("tokens = (%s, %s), want exchanged pair", upserted.AccessToken, upserted.RefreshToken)
	}
	if !upserted.Active {
		t.Fatal("channel should be active after connecting")
	}
	if upserted.MorningTime != "09:00" || upserted.EveningTime != "18:00" {
		t.Fatalf("times = (%s, %s), want defaults", upserted.MorningTime, upserted.EveningTime)
	}
}

func TestCompleteAuthorizationEmptyCode(t *testing.T) {
	t.Parallel()

	svc := NewChannelService(&fakeGateway{}, &fakeChannelRepo{}, nil)

	err := svc.CompleteAuthorization(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestCompleteAuthorizationExchangeFailure(t *testing.T) {
	t.Parallel()

	exchangeErr := &provider.TokenError{StatusCode: 400, Code: "invalid_grant"}
	gateway := &fakeGateway{
		exchangeCodeFn: func(ctx context.Context, code string) (*provider.TokenPair, error) {
			return nil, exchangeErr
		},
	}

	upserted := false
	store := &fakeChannelRepo{
		upsertFn: func(ctx context.Context, channel *domain.NotificationChannel) error {
			upserted = true
			return nil
		},
	}

	svc := NewChannelService(gateway, store, nil)
	err := svc.CompleteAuthorization(context.Background(), "auth-code")

	var tokenErr *provider.TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("error = %v, want TokenError", err)
	}
	if upserted {
		t.Fatal("nothing should be stored when the exchange fails")
	}
}

func TestSettingsWhenDisconnected(t *testing.T) {
	t.Parallel()

	svc := NewChannelService(&fakeGateway{}, &fakeChannelRepo{}, nil)

	settings, err := svc.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if settings.Connected {
		t.Fatal("missing row should read as disconnected")
	}
	if settings.MorningTime != "09:00" || settings.EveningTime != "18:00" {
		t.Fatalf("times = (%s, %s), want defaults", settings.MorningTime, settings.EveningTime)
	}
}

func TestSettingsMasksTokens(t *testing.T) {
	t.Parallel()

	store := &fakeChannelRepo{
		getFn: func(ctx context.Context) (*domain.NotificationChannel, error) {
			return deliverableChannelFixture(), nil
		},
	}

	svc := NewChannelService(&fakeGateway{}, store, nil)
	settings, err := svc.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if !settings.Connected || !settings.Active {
		t.Fatalf("settings = %+v, want connected and active", settings)
	}
}

func TestUpdateSettingsValidatesClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "valid", value: "07:30", ok: true},
		{name: "no colon", value: "0730", ok: false},
		{name: "out of range", value: "25:00", ok: false},
		{name: "words", value: "morning", ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeChannelRepo{
				updateSettingsFn: func(ctx context.Context, patch domain.ChannelSettingsPatch) (*domain.NotificationChannel, error) {
					channel := deliverableChannelFixture()
					channel.MorningTime = *patch.MorningTime
					return channel, nil
				},
			}

			svc := NewChannelService(&fakeGateway{}, store, nil)
			value := tc.value
			_, err := svc.UpdateSettings(context.Background(), domain.ChannelSettingsPatch{MorningTime: &value})

			if tc.ok && err != nil {
				t.Fatalf("UpdateSettings(%q) error = %v", tc.value, err)
			}
			if !tc.ok && !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("UpdateSettings(%q) error = %v, want ErrValidation", tc.value, err)
			}
		})
	}
}

func TestUpdateSettingsOnMissingRow(t *testing.T) {
	t.Parallel()

	svc := NewChannelService(&fakeGateway{}, &fakeChannelRepo{}, nil)

	active := true
	_, err := svc.UpdateSettings(context.Background(), domain.ChannelSettingsPatch{Active: &active})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
