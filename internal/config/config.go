package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN,required=true"`
	RedisURL    string `env:"REDIS_URL,required=true"`
	CronSecret  string `env:"CRON_SECRET,required=true"`

	// Kakao settings are optional: without them the notification channel is
	// reported as not configured instead of failing startup.
	KakaoClientID        string `env:"KAKAO_CLIENT_ID"`
	KakaoClientSecret    string `env:"KAKAO_CLIENT_SECRET"`
	KakaoRedirectURI     string `env:"KAKAO_REDIRECT_URI"`
	KakaoSendLimitPerSec int    `env:"KAKAO_SEND_LIMIT_PER_SEC,default=5"`

	AppURL   string `env:"APP_URL,default=http://localhost:3000"`
	APIPort  int    `env:"API_PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
