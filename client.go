package ordauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/ordauth/ports"
)

// HTTPClient talks to an ordauth server over its JSON API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the server at baseURL. A nil
// httpClient gets one with a 30 second timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Challenge requests a new challenge
func (c *HTTPClient) Challenge(ctx context.Context) (*ChallengeResponse, error) {
	var resp ChallengeResponse
	if err := c.do(ctx, http.MethodPost, "/auth/challenge", "", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login submits a signed challenge
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes a session
func (c *HTTPClient) Logout(ctx context.Context, sessionToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", "", LogoutRequest{SessionToken: sessionToken}, nil)
}

// Me returns the session's address
func (c *HTTPClient) Me(ctx context.Context, sessionToken string) (*MeResponse, error) {
	var resp MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/me", sessionToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Error
			apiErr.RetryAfterSeconds = errResp.RetryAfterSeconds
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// SignIn runs the whole login flow against client: it fetches a
// challenge, has provider sign it and submits the signature.
func SignIn(ctx context.Context, client Client, provider ports.SigningProvider) (*LoginResponse, error) {
	challenge, err := client.Challenge(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	signature, err := provider.SignMessage(ctx, challenge.Challenge)
	if err != nil {
		return nil, fmt.Errorf("signing provider failed: %w", err)
	}

	return client.Login(ctx, LoginRequest{
		ChallengeToken: challenge.ChallengeToken,
		Address:        provider.Address(),
		Signature:      signature,
	})
}
