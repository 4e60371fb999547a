package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultChannelID is the fixed logical key of the single notification
// channel row. Upserts are keyed on it so that concurrent writers converge on
// one row instead of racing a read-then-insert.
const DefaultChannelID = "default"

// NotificationChannel holds the Kakao Talk connection for reminder pushes.
// At most one row exists; its absence means "not connected".
type NotificationChannel struct {
	ID           string
	AccessToken  string
	RefreshToken string
	MorningTime  string
	EveningTime  string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Deliverable reports whether the channel can be used for a delivery attempt.
// A channel without an access token is never deliverable.
func (c *NotificationChannel) Deliverable() bool {
	return c != nil && c.Active && c.AccessToken != ""
}

// ChannelSettingsPatch carries the user-tunable channel fields. Nil means
// "leave unchanged".
type ChannelSettingsPatch struct {
	MorningTime *string
	EveningTime *string
	Active      *bool
}

// ReminderKind identifies which trigger produced a delivery attempt.
type ReminderKind string

const (
	KindMorning ReminderKind = "morning"
	KindEvening ReminderKind = "evening"
	KindTest    ReminderKind = "test"
)

func (k ReminderKind) String() string { return string(k) }

func (k ReminderKind) IsValid() bool {
	switch k {
	case KindMorning, KindEvening, KindTest:
		return true
	}
	return false
}

func ParseReminderKindFromString(s string) (ReminderKind, error) {
	k := ReminderKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: invalid reminder kind %q", ErrValidation, s)
	}
	return k, nil
}

// DeliveryLog records the final outcome of one reminder delivery attempt.
type DeliveryLog struct {
	ID           string
	Kind         ReminderKind
	Succeeded    bool
	ErrorMessage *string
	CreatedAt    time.Time
}
