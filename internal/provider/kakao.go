package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultAuthBaseURL = "https://kauth.kakao.com"
	defaultAPIBaseURL  = "https://kapi.kakao.com"

	scopeTalkMessage    = "talk_message"
	sendMessagePath     = "/v2/api/talk/memo/default/send"
	tokenPath           = "/oauth/token"
	authorizePath       = "/oauth/authorize"
	defaultKakaoTimeout = 10 * time.Second
)

// Credentials holds the static Kakao application settings.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// AppURL is embedded in the message template's link target.
	AppURL string
}

var _ Gateway = (*KakaoClient)(nil)

// KakaoClient talks to Kakao's OAuth and talk-memo endpoints. Every call is a
// single attempt with no client-level retries; retry policy belongs to the
// delivery layer.
type KakaoClient struct {
	client      *resty.Client
	creds       Credentials
	authBaseURL string
	apiBaseURL  string
	logger      *zap.Logger
}

func NewKakaoClient(creds Credentials, logger *zap.Logger) *KakaoClient {
	client := resty.New()
	client.SetTimeout(defaultKakaoTimeout)
	client.SetRetryCount(0)

	return NewKakaoClientWithBaseURLs(creds, client, defaultAuthBaseURL, defaultAPIBaseURL, logger)
}

func NewKakaoClientWithBaseURLs(
	creds Credentials,
	client *resty.Client,
	authBaseURL string,
	apiBaseURL string,
	logger *zap.Logger,
) *KakaoClient {
	if client == nil {
		client = resty.New()
	}
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultKakaoTimeout)
	}
	client.SetRetryCount(0)
	if logger == nil {
		logger = zap.NewNop()
	}

	return &KakaoClient{
		client:      client,
		creds:       creds,
		authBaseURL: strings.TrimRight(authBaseURL, "/"),
		apiBaseURL:  strings.TrimRight(apiBaseURL, "/"),
		logger:      logger,
	}
}

func (c *KakaoClient) AuthorizationURL() (string, bool) {
	if c.creds.ClientID == "" || c.creds.RedirectURI == "" {
		return "", false
	}

	params := url.Values{}
	params.Set("client_id", c.creds.ClientID)
	params.Set("redirect_uri", c.creds.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", scopeTalkMessage)

	return c.authBaseURL + authorizePath + "?" + params.Encode(), true
}

func (c *KakaoClient) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" || c.creds.RedirectURI == "" {
		return nil, fmt.Errorf("%w: kakao client credentials are not set", domain.ErrNotConfigured)
	}

	return c.requestToken(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     c.creds.ClientID,
		"client_secret": c.creds.ClientSecret,
		"redirect_uri":  c.creds.RedirectURI,
		"code":          code,
	})
}

func (c *KakaoClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: kakao client credentials are not set", domain.ErrNotConfigured)
	}

	return c.requestToken(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     c.creds.ClientID,
		"client_secret": c.creds.ClientSecret,
		"refresh_token": refreshToken,
	})
}

type kakaoErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (c *KakaoClient) requestToken(ctx context.Context, form map[string]string) (*TokenPair, error) {
	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded;charset=utf-8").
		SetFormData(form).
		Post(c.authBaseURL + tokenPath)
	if err != nil {
		return nil, fmt.Errorf("kakao token request failed: %w", err)
	}

	statusCode := response.StatusCode()
	body := response.Body()

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		var kakaoErr kakaoErrorResponse
		_ = json.Unmarshal(body, &kakaoErr)
		return nil, &TokenError{
			StatusCode:  statusCode,
			Code:        kakaoErr.Error,
			Description: kakaoErr.ErrorDescription,
		}
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("failed to decode kakao token response: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("kakao token response is missing an access token")
	}

	return &pair, nil
}

type messageTemplate struct {
	ObjectType  string       `json:"object_type"`
	Text        string       `json:"text"`
	Link        templateLink `json:"link"`
	ButtonTitle string       `json:"button_title"`
}

type templateLink struct {
	WebURL       string `json:"web_url"`
	MobileWebURL string `json:"mobile_web_url"`
}

// SendMessage pushes a text message to the connected user's own Kakao Talk.
// Any failure, transport-level or provider-reported, is logged and surfaced
// as false so the caller can branch into its refresh-and-retry flow.
func (c *KakaoClient) SendMessage(ctx context.Context, accessToken string, text string) bool {
	linkURL := c.creds.AppURL
	if linkURL == "" {
		linkURL = "http://localhost:3000"
	}

	template := messageTemplate{
		ObjectType: "text",
		Text:       text,
		Link: templateLink{
			WebURL:       linkURL,
			MobileWebURL: linkURL,
		},
		ButtonTitle: "Open tasks",
	}

	payload, err := json.Marshal(template)
	if err != nil {
		c.logger.Error("failed to encode kakao message template", zap.Error(err))
		return false
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded;charset=utf-8").
		SetHeader("Authorization", "Bearer "+accessToken).
		SetFormData(map[string]string{"template_object": string(payload)}).
		Post(c.apiBaseURL + sendMessagePath)
	if err != nil {
		c.logger.Warn("kakao send request failed", zap.Error(err))
		return false
	}

	statusCode := response.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		c.logger.Warn("kakao rejected message",
			zap.Int("status", statusCode),
			zap.String("body", strings.TrimSpace(response.String())),
		)
		return false
	}

	return true
}
