package provider

import (
	"fmt"
	"strings"
)

// TokenError carries the provider's own description of a rejected token
// exchange or refresh.
type TokenError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *TokenError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, "kakao token request failed")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if code := strings.TrimSpace(e.Code); code != "" {
		parts = append(parts, code)
	}
	if desc := strings.TrimSpace(e.Description); desc != "" {
		parts = append(parts, desc)
	}

	return strings.Join(parts, ": ")
}
