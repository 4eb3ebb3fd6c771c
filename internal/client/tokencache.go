package client

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSessionTTL is assumed for tokens whose expiry the API does not report.
const DefaultSessionTTL = 12 * time.Hour

const expiryMargin = 5 * time.Minute

type cachedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	APIURL    string    `json:"api_url"`
	Email     string    `json:"email,omitempty"`
}

// TokenCache stores session tokens on disk, one file per API host.
type TokenCache struct {
	Dir string
	now func() time.Time
}

// NewTokenCache returns a cache rooted in the user cache directory.
func NewTokenCache() *TokenCache {
	dir, _ := os.UserCacheDir()
	return &TokenCache{Dir: filepath.Join(dir, "suptui")}
}

func (c *TokenCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *TokenCache) path(apiURL string) string {
	key := apiURL
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		key = u.Host
	}
	key = strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(c.Dir, "token-"+key+".json")
}

// Load returns the cached token for apiURL if it is still valid for at
// least the expiry margin.
func (c *TokenCache) Load(apiURL string) (string, bool) {
	data, err := os.ReadFile(c.path(apiURL))
	if err != nil {
		return "", false
	}
	var ct cachedToken
	if err := json.Unmarshal(data, &ct); err != nil {
		return "", false
	}
	if ct.ExpiresAt.Sub(c.clock()) < expiryMargin {
		return "", false
	}
	return ct.Token, true
}

// Save writes the token for apiURL. A zero expiresAt uses DefaultSessionTTL.
func (c *TokenCache) Save(apiURL, email, token string, expiresAt time.Time) error {
	if expiresAt.IsZero() {
		expiresAt = c.clock().Add(DefaultSessionTTL)
	}
	path := c.path(apiURL)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(cachedToken{Token: token, ExpiresAt: expiresAt, APIURL: apiURL, Email: email})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Clear removes the cached token for apiURL.
func (c *TokenCache) Clear(apiURL string) {
	os.Remove(c.path(apiURL))
}
