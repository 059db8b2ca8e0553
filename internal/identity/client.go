// AngelaMos | 2026
// client.go

package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/docmailer/internal/config"
)

// Result reports what the identity provider said about a token. Available
// is false on any transport error or non-200 response; callers treat that
// as an unverified token, never as a hard fault.
type Result struct {
	Available     bool
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

type Client struct {
	httpClient  *http.Client
	userInfoURL string
	logger      *slog.Logger
}

func NewClient(cfg config.IdentityConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		userInfoURL: cfg.UserInfoURL,
		logger:      logger,
	}
}

type userInfoResponse struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func (c *Client) UserInfo(ctx context.Context, accessToken string) Result {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.userInfoURL,
		nil,
	)
	if err != nil {
		c.logger.Warn("identity: build userinfo request", "error", err)
		return Result{}
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("identity: userinfo request failed", "error", err)
		return Result{}
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("identity: userinfo rejected",
			"status", resp.StatusCode,
		)
		return Result{}
	}

	var info userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.logger.Warn("identity: decode userinfo response", "error", err)
		return Result{}
	}

	return Result{
		Available:     true,
		Subject:       info.Sub,
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.EmailVerified,
	}
}
