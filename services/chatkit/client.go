// Package chatkit exchanges the server-held OpenAI key for short-lived
// ChatKit client secrets.
package chatkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAPIBase = "https://api.openai.com/v1"
	betaHeader     = "chatkit_beta=v1"
)

var (
	ErrMissingAPIKey   = errors.New("chatkit: OPENAI_API_KEY not configured")
	ErrMissingWorkflow = errors.New("chatkit: CHATKIT_WORKFLOW_ID not configured")
)

// APIError is a non-2xx answer from the sessions endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chatkit: upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("chatkit: upstream status %d: %s", e.StatusCode, e.Message)
}

// Session is the part of a created ChatKit session the browser needs.
type Session struct {
	ID           string `json:"id,omitempty"`
	ClientSecret string `json:"client_secret"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

// SessionCreator creates a ChatKit session for a browser user.
type SessionCreator interface {
	CreateSession(ctx context.Context, userID string) (*Session, error)
}

// Config carries the credentials read from the environment.
type Config struct {
	APIKey     string
	WorkflowID string
	APIBase    string
	Timeout    time.Duration
}

// Client talks to the OpenAI ChatKit sessions API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client; missing credentials surface on CreateSession.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

type createSessionRequest struct {
	Workflow struct {
		ID string `json:"id"`
	} `json:"workflow"`
	User string `json:"user"`
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession posts {workflow, user} and returns the issued client secret.
func (c *Client) CreateSession(ctx context.Context, userID string) (*Session, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.cfg.WorkflowID == "" {
		return nil, ErrMissingWorkflow
	}

	var body createSessionRequest
	body.Workflow.ID = c.cfg.WorkflowID
	body.User = userID
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("chatkit: encoding request: %w", err)
	}

	url := strings.TrimRight(c.cfg.APIBase, "/") + "/chatkit/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("chatkit: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OpenAI-Beta", betaHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chatkit: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("chatkit: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error != nil {
			apiErr.Message = env.Error.Message
		}
		c.logger.Error("OpenAI API error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("chatkit: decoding response: %w", err)
	}
	if session.ClientSecret == "" {
		return nil, errors.New("chatkit: response carried no client_secret")
	}
	return &session, nil
}
