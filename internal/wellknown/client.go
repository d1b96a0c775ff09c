package wellknown

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mxsetup/mxsetup/internal/config"
	"github.com/mxsetup/mxsetup/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// Discovery and validation endpoints, relative to a server base URL
	wellKnownPath  = "/.well-known/matrix/client"
	versionsPath   = "/_matrix/client/versions"
	identityV2Path = "/_matrix/identity/v2"
	identityV1Path = "/_matrix/identity/api/v1"

	// maxResponseBytes caps how much of a discovery response is read.
	// Well-known documents are tiny; anything near this limit is garbage.
	maxResponseBytes = 1 << 20
)

// Client validates user-entered server URLs against the client
// autodiscovery protocol. A zero-value Client is not usable; construct
// with NewClient.
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every discovery request
	UserAgent string
}

// NewClient creates a new autodiscovery client with default settings
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  "mxsetup",
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Validate resolves and verifies a homeserver/identity-server pair.
//
// The homeserver URL is normalized, its well-known discovery document is
// consulted (a missing document is not an error - the entered URL is then
// used as the base URL directly), and the resulting base URL must serve a
// versions endpoint advertising at least one client API version. When an
// identity server is given (or advertised by the discovery document and not
// overridden by the user), it must respond on its status endpoint.
//
// On success the returned ServerConfig is complete and immutable. On failure
// the error is a *DiscoveryError; UserMessage translates it for display.
func (c *Client) Validate(ctx context.Context, hsURL, isURL string) (*config.ServerConfig, error) {
	base, err := NormalizeBaseURL(hsURL)
	if err != nil {
		return nil, &DiscoveryError{Kind: KindBadURL, TranslatedMessage: msgInvalidHomeserverURL, Err: err}
	}

	identURL := strings.TrimSpace(isURL)

	// Well-known lookup. Servers without a discovery document fall through
	// to direct validation of the entered URL.
	if body, status, wkErr := c.get(ctx, base+wellKnownPath); wkErr == nil && status == http.StatusOK {
		if hs := gjson.GetBytes(body, `m\.homeserver.base_url`); hs.Exists() {
			overridden, normErr := NormalizeBaseURL(hs.String())
			if normErr != nil {
				return nil, &DiscoveryError{Kind: KindWellKnown, TranslatedMessage: msgInvalidWellKnown, Err: normErr}
			}
			base = overridden
		}
		if identURL == "" {
			if is := gjson.GetBytes(body, `m\.identity_server.base_url`); is.Exists() {
				identURL = is.String()
			}
		}
	}

	// The base URL must behave like a homeserver
	versions, err := c.checkHomeserver(ctx, base)
	if err != nil {
		return nil, err
	}

	// The identity server, when configured, must respond on its status endpoint
	if identURL != "" {
		identURL, err = NormalizeBaseURL(identURL)
		if err != nil {
			return nil, &DiscoveryError{Kind: KindBadURL, TranslatedMessage: msgInvalidIdentityURL, Err: err}
		}
		if err := c.checkIdentityServer(ctx, identURL); err != nil {
			return nil, err
		}
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, &DiscoveryError{Kind: KindBadURL, TranslatedMessage: msgInvalidHomeserverURL, Err: err}
	}

	return &config.ServerConfig{
		HomeserverURL:     base,
		HomeserverName:    parsed.Host,
		IdentityServerURL: identURL,
		Versions:          versions,
		ValidatedAt:       time.Now(),
	}, nil
}

// checkHomeserver verifies that base serves the client versions endpoint and
// returns the advertised versions.
func (c *Client) checkHomeserver(ctx context.Context, base string) ([]string, error) {
	body, status, err := c.get(ctx, base+versionsPath)
	if err != nil {
		return nil, &DiscoveryError{Kind: KindNetwork, Err: err}
	}
	if status != http.StatusOK {
		return nil, &DiscoveryError{
			Kind:              KindHomeserver,
			TranslatedMessage: msgNotAHomeserver,
			Err:               fmt.Errorf("versions endpoint returned status %d", status),
		}
	}

	raw := gjson.GetBytes(body, "versions").Array()
	versions := make([]string, 0, len(raw))
	for _, v := range raw {
		if s := v.String(); s != "" {
			versions = append(versions, s)
		}
	}
	if len(versions) == 0 {
		return nil, &DiscoveryError{
			Kind:              KindHomeserver,
			TranslatedMessage: msgNotAHomeserver,
			Err:               fmt.Errorf("versions endpoint advertised no versions"),
		}
	}

	return versions, nil
}

// checkIdentityServer verifies the identity server status endpoint, falling
// back to the legacy v1 path for older servers.
func (c *Client) checkIdentityServer(ctx context.Context, base string) error {
	_, status, err := c.get(ctx, base+identityV2Path)
	if err != nil {
		return &DiscoveryError{Kind: KindNetwork, Err: err}
	}
	if status == http.StatusOK {
		return nil
	}

	if status == http.StatusNotFound {
		// Legacy servers only expose the v1 API
		_, status, err = c.get(ctx, base+identityV1Path)
		if err != nil {
			return &DiscoveryError{Kind: KindNetwork, Err: err}
		}
		if status == http.StatusOK {
			return nil
		}
	}

	return &DiscoveryError{
		Kind:              KindIdentityServer,
		TranslatedMessage: msgNotAnIdentityServer,
		Err:               fmt.Errorf("identity status endpoint returned status %d", status),
	}
}

// get performs a single GET request and returns the (size-capped) body and
// status code.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.LogDiscoveryRequest(rawURL, 0, time.Since(start), err)
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	logging.LogDiscoveryRequest(rawURL, resp.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}

// NormalizeBaseURL canonicalizes a user-entered server URL: whitespace is
// trimmed, a missing scheme defaults to https, and any trailing slash is
// stripped so URLs compare and concatenate predictably.
func NormalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty URL")
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("unparsable URL %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("URL %q has no host", raw)
	}

	path := strings.TrimSuffix(u.Path, "/")
	return u.Scheme + "://" + u.Host + path, nil
}
