package repository

import (
	"context"
	"errors"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChannelRepository interface {
	// Get loads the notification channel row, or domain.ErrNotFound when
	// the account has never been connected.
	Get(ctx context.Context) (*domain.NotificationChannel, error)

	// Upsert inserts the channel row or replaces its token and active
	// columns when it already exists.
	Upsert(ctx context.Context, channel *domain.NotificationChannel) error

	// UpdateTokens persists a rotated token pair on the existing row.
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error

	// UpdateSettings applies a partial settings change.
	UpdateSettings(ctx context.Context, patch domain.ChannelSettingsPatch) (*domain.NotificationChannel, error)
}

type GormChannelRepo struct {
	db *gorm.DB
}

func NewGormChannelRepo(db *gorm.DB) *GormChannelRepo {
	return &GormChannelRepo{db: db}
}

func (r *GormChannelRepo) Get(ctx context.Context) (*domain.NotificationChannel, error) {
	var model ChannelModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", domain.DefaultChannelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return channelModelToDomain(&model), nil
}

func (r *GormChannelRepo) Upsert(ctx context.Context, channel *domain.NotificationChannel) error {
	model := channelModelFromDomain(channel)
	model.ID = domain.DefaultChannelID

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "refresh_token", "active", "updated_at",
			}),
		}).
		Create(model).Error
}

func (r *GormChannelRepo) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	result := r.db.WithContext(ctx).
		Model(&ChannelModel{}).
		Where("id = ?", domain.DefaultChannelID).
		Updates(map[string]any{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormChannelRepo) UpdateSettings(ctx context.Context, patch domain.ChannelSettingsPatch) (*domain.NotificationChannel, error) {
	updates := map[string]any{}
	if patch.MorningTime != nil {
		updates["morning_time"] = *patch.MorningTime
	}
	if patch.EveningTime != nil {
		updates["evening_time"] = *patch.EveningTime
	}
	if patch.Active != nil {
		updates["active"] = *patch.Active
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&ChannelModel{}).
			Where("id = ?", domain.DefaultChannelID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}

	return r.Get(ctx)
}
