// Package gravatar resolves avatar URLs for email addresses through the
// Gravatar service.
package gravatar

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.gravatar.com/avatar/"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup returns the avatar URL for the email, probing with d=404 so
// addresses without a Gravatar produce an error instead of the default
// placeholder image.
func (c *Client) Lookup(ctx context.Context, email string) (string, error) {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	url := c.baseURL + fmt.Sprintf("%x", hash)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"?d=404", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gravatar: unexpected status %d for %s", resp.StatusCode, email)
	}
	return url, nil
}
