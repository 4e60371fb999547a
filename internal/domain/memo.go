package domain

import (
	"fmt"
	"strings"
	"time"
)

// Memo is a freeform note with no structure beyond its content.
type Memo struct {
	ID        string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Memo) Validate() error {
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}
