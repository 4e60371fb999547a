package provider

import "context"

// Gateway is the outbound port to the Kakao messaging provider.
type Gateway interface {
	// AuthorizationURL returns the user-facing OAuth authorize URL. The second
	// return value is false when the static client configuration is missing.
	AuthorizationURL() (string, bool)

	// ExchangeCode trades an authorization code for a token pair.
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)

	// Refresh mints a new token pair from a refresh token. The returned
	// RefreshToken may be empty when the provider chose not to rotate it;
	// callers must retain the previous one in that case.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// SendMessage pushes one message and reports the outcome as a plain
	// boolean. A rejected or failed push is an ordinary false, never an error,
	// so callers can treat "maybe the token expired" as a branch.
	SendMessage(ctx context.Context, accessToken string, text string) bool
}

// TokenPair stores the credentials returned by a code exchange or refresh.
type TokenPair struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in"`
}
