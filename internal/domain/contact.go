package domain

import (
	"fmt"
	"strings"
	"time"
)

// Contact is a date-scoped follow-up entry for a business contact.
type Contact struct {
	ID            string
	CompanyName   string
	ContactDate   time.Time
	ContactPerson *string
	Phone         *string
	Content       *string
	Priority      Priority
	Completed     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.CompanyName) == "" {
		return fmt.Errorf("%w: company name is required", ErrValidation)
	}
	if c.ContactDate.IsZero() {
		return fmt.Errorf("%w: contact date is required", ErrValidation)
	}
	if !c.Priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, c.Priority)
	}
	return nil
}

// ContactPatch carries the updatable contact fields. Nil means "leave unchanged".
type ContactPatch struct {
	CompanyName   *string
	ContactDate   *time.Time
	ContactPerson *string
	Phone         *string
	Content       *string
	Priority      *Priority
	Completed     *bool
}
