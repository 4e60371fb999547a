package repository

import (
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
)

// TaskModel is the persistence model for the tasks table.
type TaskModel struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	Title        string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text;not null;default:''"`
	Status       domain.Status   `gorm:"type:varchar(20);not null"`
	Priority     domain.Priority `gorm:"type:varchar(10);not null"`
	DueDate      *time.Time      `gorm:"type:timestamptz"`
	ReminderTime *string         `gorm:"type:varchar(5)"`
	Category     *string         `gorm:"type:varchar(100)"`
	Reminded     bool            `gorm:"not null;default:false"`
	CompletedAt  *time.Time      `gorm:"type:timestamptz"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TaskModel) TableName() string {
	return "tasks"
}

// ContactModel is the persistence model for the contacts table.
type ContactModel struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	CompanyName   string          `gorm:"type:varchar(255);not null"`
	ContactDate   time.Time       `gorm:"type:date;not null"`
	ContactPerson *string         `gorm:"type:varchar(100)"`
	Phone         *string         `gorm:"type:varchar(50)"`
	Content       *string         `gorm:"type:text"`
	Priority      domain.Priority `gorm:"type:varchar(10);not null"`
	Completed     bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ContactModel) TableName() string {
	return "contacts"
}

// MemoModel is the persistence model for the memos table.
type MemoModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MemoModel) TableName() string {
	return "memos"
}

// ChannelModel is the persistence model for the notification_channels table.
// A single row keyed by the fixed channel id.
type ChannelModel struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	AccessToken  string `gorm:"type:text;not null;default:''"`
	RefreshToken string `gorm:"type:text;not null;default:''"`
	MorningTime  string `gorm:"type:varchar(5);not null;default:'09:00'"`
	EveningTime  string `gorm:"type:varchar(5);not null;default:'18:00'"`
	Active       bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ChannelModel) TableName() string {
	return "notification_channels"
}

// DeliveryLogModel is the persistence model for the delivery_logs table.
type DeliveryLogModel struct {
	ID           string              `gorm:"type:uuid;primaryKey"`
	Kind         domain.ReminderKind `gorm:"type:varchar(10);not null"`
	Succeeded    bool                `gorm:"not null"`
	ErrorMessage *string             `gorm:"type:text"`
	CreatedAt    time.Time
}

func (DeliveryLogModel) TableName() string {
	return "delivery_logs"
}

func taskModelFromDomain(t *domain.Task) *TaskModel {
	if t == nil {
		return nil
	}

	return &TaskModel{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		ReminderTime: t.ReminderTime,
		Category:     t.Category,
		Reminded:     t.Reminded,
		CompletedAt:  t.CompletedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func taskModelToDomain(m *TaskModel) *domain.Task {
	if m == nil {
		return nil
	}

	return &domain.Task{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Status:       m.Status,
		Priority:     m.Priority,
		DueDate:      m.DueDate,
		ReminderTime: m.ReminderTime,
		Category:     m.Category,
		Reminded:     m.Reminded,
		CompletedAt:  m.CompletedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func contactModelFromDomain(c *domain.Contact) *ContactModel {
	if c == nil {
		return nil
	}

	return &ContactModel{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		ContactDate:   c.ContactDate,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Content:       c.Content,
		Priority:      c.Priority,
		Completed:     c.Completed,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func contactModelToDomain(m *ContactModel) *domain.Contact {
	if m == nil {
		return nil
	}

	return &domain.Contact{
		ID:            m.ID,
		CompanyName:   m.CompanyName,
		ContactDate:   m.ContactDate,
		ContactPerson: m.ContactPerson,
		Phone:         m.Phone,
		Content:       m.Content,
		Priority:      m.Priority,
		Completed:     m.Completed,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func memoModelFromDomain(m *domain.Memo) *MemoModel {
	if m == nil {
		return nil
	}

	return &MemoModel{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func memoModelToDomain(m *MemoModel) *domain.Memo {
	if m == nil {
		return nil
	}

	return &domain.Memo{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func channelModelFromDomain(c *domain.NotificationChannel) *ChannelModel {
	if c == nil {
		return nil
	}

	return &ChannelModel{
		ID:           c.ID,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		MorningTime:  c.MorningTime,
		EveningTime:  c.EveningTime,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func channelModelToDomain(m *ChannelModel) *domain.NotificationChannel {
	if m == nil {
		return nil
	}

	return &domain.NotificationChannel{
		ID:           m.ID,
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		MorningTime:  m.MorningTime,
		EveningTime:  m.EveningTime,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func deliveryLogModelFromDomain(l *domain.DeliveryLog) *DeliveryLogModel {
	if l == nil {
		return nil
	}

	return &DeliveryLogModel{
		ID:           l.ID,
		Kind:         l.Kind,
		Succeeded:    l.Succeeded,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

func deliveryLogModelToDomain(m *DeliveryLogModel) *domain.DeliveryLog {
	if m == nil {
		return nil
	}

	return &domain.DeliveryLog{
		ID:           m.ID,
		Kind:         m.Kind,
		Succeeded:    m.Succeeded,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt,
	}
}
