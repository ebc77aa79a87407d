// Package auth obtains cloud-storage access tokens. The coordinator treats
// FetchToken as a black box that either yields a Token or an error.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/atomicstack/tagmaster/internal/atomicfile"
	"github.com/atomicstack/tagmaster/internal/logging"
)

// DefaultTokenURL is Box's OAuth2 token endpoint.
const DefaultTokenURL = "https://api.box.com/oauth2/token"

// CredentialsFile is the file name used inside the config directory.
const CredentialsFile = "auth.json"

const expiryDelta = 10 * time.Second

// ErrMissingCredentials is returned when key or secret is blank.
var ErrMissingCredentials = errors.New("box key and secret are required")

// Token is an opaque access credential.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	Expiry      time.Time `json:"expiry,omitempty"`
}

// Valid reports whether the token can still be used at now.
func (t Token) Valid(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}
	return t.Expiry.IsZero() || now.Before(t.Expiry.Add(-expiryDelta))
}

// Credentials are the inputs of a login attempt.
type Credentials struct {
	Key         string
	Secret      string
	StoragePath string
}

// Fetcher obtains a token for a set of credentials.
type Fetcher interface {
	FetchToken(ctx context.Context, creds Credentials) (Token, error)
}

// BoxClient fetches tokens with the OAuth2 client-credentials grant.
type BoxClient struct {
	TokenURL    string
	SubjectType string
	SubjectID   string
	HTTPClient  *http.Client
	Now         func() time.Time
}

type cacheFile struct {
	Key   string `json:"key"`
	Token Token  `json:"token"`
}

// FetchToken returns the cached token for creds.Key when it is still valid,
// otherwise requests a new one and stores it at creds.StoragePath.
func (c *BoxClient) FetchToken(ctx context.Context, creds Credentials) (Token, error) {
	key := strings.TrimSpace(creds.Key)
	secret := strings.TrimSpace(creds.Secret)
	if key == "" || secret == "" {
		return Token{}, ErrMissingCredentials
	}
	now := c.now()
	if cached, err := LoadCache(creds.StoragePath); err == nil && cached.Key == key && cached.Token.Valid(now) {
		return cached.Token, nil
	}

	params := url.Values{}
	if c.SubjectType != "" {
		params.Set("box_subject_type", c.SubjectType)
		params.Set("box_subject_id", c.SubjectID)
	}
	cfg := clientcredentials.Config{
		ClientID:       key,
		ClientSecret:   secret,
		TokenURL:       c.tokenURL(),
		EndpointParams: params,
		AuthStyle:      oauth2.AuthStyleInParams,
	}
	if c.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	}
	tok, err := cfg.Token(ctx)
	if err != nil {
		return Token{}, fmt.Errorf("box login: %w", err)
	}
	token := Token{AccessToken: tok.AccessToken, TokenType: tok.TokenType, Expiry: tok.Expiry}
	if creds.StoragePath != "" {
		if err := SaveCache(creds.StoragePath, key, token); err != nil {
			logging.Error(err)
		}
	}
	return token, nil
}

func (c *BoxClient) tokenURL() string {
	if strings.TrimSpace(c.TokenURL) == "" {
		return DefaultTokenURL
	}
	return c.TokenURL
}

func (c *BoxClient) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Cached is a token read back from the credentials file.
type Cached struct {
	Key   string
	Token Token
}

// LoadCache reads a stored token.
func LoadCache(path string) (Cached, error) {
	if strings.TrimSpace(path) == "" {
		return Cached{}, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Cached{}, err
	}
	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Cached{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return Cached{Key: file.Key, Token: file.Token}, nil
}

// SaveCache stores a token for key.
func SaveCache(path, key string, token Token) error {
	return atomicfile.Write(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cacheFile{Key: key, Token: token}); err != nil {
			return fmt.Errorf("encode credentials: %w", err)
		}
		return nil
	})
}
