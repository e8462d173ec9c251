package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the API root used when MOTEL_API_URL is not set.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// BaseURL returns the API root from the MOTEL_API_URL environment variable,
// falling back to DefaultBaseURL.
func BaseURL() string {
	if v := os.Getenv("MOTEL_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultBaseURL
}

// SessionRecoverer is the hook the recovery policy uses to renew or tear down
// the session when a request fails with a credential-rejection status. It is
// implemented by the auth service and wired in by the caller; a nil recoverer
// disables recovery entirely.
type SessionRecoverer interface {
	// RefreshSession obtains a new bearer token and stores it.
	RefreshSession(ctx context.Context) error
	// ForceLogout ends the session after an unrecoverable refresh failure.
	ForceLogout(ctx context.Context) error
}

// MultipartFile is one file part of a multipart upload. Content is held in
// memory so the body can be rebuilt if the request is retried.
type MultipartFile struct {
	FieldName string
	FileName  string
	Content   []byte
}

// RequestOptions carries the optional parts of a call: query parameters, a
// JSON body, a multipart payload, and the NoRecovery tag that exempts the
// session endpoints themselves from the recovery policy.
type RequestOptions struct {
	Query      url.Values
	Body       any
	Multipart  []MultipartFile
	Fields     map[string]string // extra form fields for multipart requests
	NoRecovery bool
}

// Client is the single chokepoint for all API calls. Every request is
// decorated with the stored bearer token before it leaves; every error
// response goes through the recovery policy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      db.CredentialRepository

	mu        sync.Mutex
	recoverer SessionRecoverer
	inflight  *refreshCall
}

// refreshCall is a single shared refresh attempt. Concurrent requests that
// fail while it is outstanding wait on done instead of issuing their own
// refresh (a burst of expired calls yields exactly one refresh round-trip).
type refreshCall struct {
	done chan struct{}
	err  error
}

// New creates a Client rooted at baseURL. The HTTP client carries a cookie
// jar so the renewal cookie set by the authenticate endpoint travels with
// every subsequent call, including refresh and logout.
func New(baseURL string, creds db.CredentialRepository) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
		creds:      creds,
	}, nil
}

// SetRecoverer installs the session recovery hook. Called once at wiring
// time, after the auth service (which itself needs the client) exists.
func (c *Client) SetRecoverer(r SessionRecoverer) {
	c.mu.Lock()
	c.recoverer = r
	c.mu.Unlock()
}

// Get issues a GET request through the recovery policy.
func (c *Client) Get(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, opts)
}

// Post issues a POST request through the recovery policy.
func (c *Client) Post(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, opts)
}

// Put issues a PUT request through the recovery policy.
func (c *Client) Put(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, opts)
}

// Patch issues a PATCH request through the recovery policy.
func (c *Client) Patch(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	return c.Do(ctx, http.MethodPatch, path, opts)
}

// Delete issues a DELETE request through the recovery policy.
func (c *Client) Delete(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, opts)
}

// Do sends one logical request. On a 401/403 from a recoverable endpoint it
// refreshes the session once and reissues the request with the new token;
// the caller never observes the intermediate failure. A request is retried
// at most once, and a refresh failure tears the session down.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions) ([]byte, error) {
	requestID := uuid.NewString()

	body, usedToken, err := c.send(ctx, method, path, opts, requestID, false)
	if err == nil {
		return body, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil, err
	}
	// Transport failures and non-auth statuses are never retried here.
	if opts.NoRecovery || apiErr.NoResponse || !apiErr.IsAuthStatus() {
		return nil, err
	}

	c.mu.Lock()
	recoverer := c.recoverer
	c.mu.Unlock()
	if recoverer == nil {
		return nil, err
	}

	log.Info().Str("request_id", requestID).Int("status", apiErr.Status).Msg("Credential rejected, attempting session refresh")
	if refreshErr := c.refreshShared(ctx, recoverer, usedToken); refreshErr != nil {
		if logoutErr := recoverer.ForceLogout(ctx); logoutErr != nil {
			log.Warn().Err(logoutErr).Msg("Best-effort logout after failed refresh did not complete")
		}
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, refreshErr)
	}

	// The retry picks up the newly stored token through the same decoration path.
	body, _, err = c.send(ctx, method, path, opts, requestID, true)
	return body, err
}

// tokenUnchanged reports whether the stored token still matches the one a
// failed attempt went out with. Read errors count as unchanged so the
// recovery path stays responsible for the final outcome.
func (c *Client) tokenUnchanged(ctx context.Context, usedToken string) bool {
	cred, err := c.creds.Get(ctx)
	if err != nil {
		return true
	}
	current := ""
	if cred != nil {
		current = cred.Token
	}
	return current == usedToken
}

// refreshShared funnels concurrent refresh attempts into a single outstanding
// call. The first failing request performs the real round-trip; later ones
// wait for its outcome.
func (c *Client) refreshShared(ctx context.Context, recoverer SessionRecoverer, usedToken string) error {
	c.mu.Lock()
	if call := c.inflight; call != nil {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	// A refresh may have completed while this request was failing; in that
	// case the stored token already differs from the rejected one and the
	// retry can go out directly.
	if !c.tokenUnchanged(ctx, usedToken) {
		c.mu.Unlock()
		return nil
	}
	call := &refreshCall{done: make(chan struct{})}
	c.inflight = call
	c.mu.Unlock()

	call.err = recoverer.RefreshSession(ctx)

	c.mu.Lock()
	c.inflight = nil
	c.mu.Unlock()
	close(call.done)
	return call.err
}

// send performs a single attempt: build, decorate, transmit, classify. It
// also reports the token the attempt was decorated with so the recovery
// policy can tell whether it is stale.
func (c *Client) send(ctx context.Context, method, path string, opts RequestOptions, requestID string, retried bool) ([]byte, string, error) {
	req, err := c.buildRequest(ctx, method, path, opts)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("X-Request-ID", requestID)

	usedToken, err := c.authorizeReq(ctx, req)
	if err != nil {
		return nil, "", err
	}

	log.Debug().Str("method", method).Str("url", req.URL.String()).Str("request_id", requestID).Bool("retried", retried).Msg("Sending HTTP request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, usedToken, newTransportError(err, requestID)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Failed to read response body")
		return nil, usedToken, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newStatusError(resp.StatusCode, body, requestID)
		log.Error().Str("method", method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Str("request_id", requestID).Msg("HTTP request returned non-OK status")
		return nil, usedToken, apiErr
	}

	log.Debug().Str("method", method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Msg("HTTP request successful")
	return body, usedToken, nil
}

// buildRequest assembles the URL and encodes the body. Bodies are rebuilt
// from their source values on every attempt so a retry never reuses a
// consumed reader.
func (c *Client) buildRequest(ctx context.Context, method, path string, opts RequestOptions) (*http.Request, error) {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opts.Query) > 0 {
		fullURL += "?" + opts.Query.Encode()
	}

	var reader io.Reader
	contentType := ""
	switch {
	case len(opts.Multipart) > 0:
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for _, f := range opts.Multipart {
			part, err := writer.CreateFormFile(f.FieldName, f.FileName)
			if err != nil {
				return nil, fmt.Errorf("failed to create multipart field %s: %w", f.FieldName, err)
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, fmt.Errorf("failed to write multipart content: %w", err)
			}
		}
		for name, value := range opts.Fields {
			if err := writer.WriteField(name, value); err != nil {
				return nil, fmt.Errorf("failed to write multipart field %s: %w", name, err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
		}
		reader = buf
		contentType = writer.FormDataContentType()
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", fullURL).Msg("Failed to create HTTP request object")
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// authorizeReq attaches the stored bearer token, if any, and returns the
// token used. It runs on every attempt without exception; anonymous
// endpoints simply go out without the header when no credential is stored.
// Set (not Add) keeps decoration idempotent.
func (c *Client) authorizeReq(ctx context.Context, req *http.Request) (string, error) {
	cred, err := c.creds.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read stored credential: %w", err)
	}
	if cred != nil && cred.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cred.Token))
		return cred.Token, nil
	}
	return "", nil
}
