package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 16 << 20

// Endpoints are the URLs of the three backend functions.
type Endpoints struct {
	AuthURL     string
	AdminURL    string
	GenerateURL string
}

type HTTPClient struct {
	endpoints       Endpoints
	http            *http.Client
	requestTimeout  time.Duration
	generateTimeout time.Duration
	logger          logging.Logger
	newRequestID    func() string
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeouts bounds ordinary requests and generation requests separately;
// generation waits on an LLM and needs far more time. Zero disables a bound.
func WithTimeouts(request, generate time.Duration) Option {
	return func(c *HTTPClient) {
		c.requestTimeout = request
		c.generateTimeout = generate
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func NewHTTPClient(e Endpoints, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoints:       e,
		http:            &http.Client{},
		requestTimeout:  15 * time.Second,
		generateTimeout: 2 * time.Minute,
		logger:          logging.NewNop(),
		newRequestID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the status part shared by every endpoint response.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (e envelope) status() envelope { return e }

type enveloped interface {
	status() envelope
}

type authResponse struct {
	envelope
	User         *models.User `json:"user"`
	SessionToken string       `json:"session_token"`
}

type usersResponse struct {
	envelope
	Users []models.User `json:"users"`
}

type updateBalanceResponse struct {
	envelope
	User *models.User `json:"user"`
}

type generateResponse struct {
	envelope
	HTML            *string `json:"html"`
	EnergyUsed      *int64  `json:"energy_used"`
	EnergyRemaining *int64  `json:"energy_remaining"`
}

type call struct {
	op             string
	method         string
	url            string
	headers        map[string]string
	body           any
	timeout        time.Duration
	requireSuccess bool
}

// exchange performs one request and reads the whole response body.
func (c *HTTPClient) exchange(ctx context.Context, cl call) (int, []byte, error) {
	if cl.url == "" {
		return 0, nil, fmt.Errorf("%s: %w", cl.op, ErrNotConfigured)
	}
	if cl.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cl.timeout)
		defer cancel()
	}

	var reader io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", cl.op, err)
	}

	requestID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}

	log := c.logger.With("op", cl.op, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return 0, nil, &TransportError{Op: cl.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return 0, nil, &TransportError{Op: cl.op, Err: err}
	}

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(started))
	return resp.StatusCode, body, nil
}

// do runs cl and decodes the JSON response into out. An undecodable body is
// a TransportError; a non-2xx status or a missing success flag (when
// required) is an APIError.
func (c *HTTPClient) do(ctx context.Context, cl call, out enveloped) error {
	status, body, err := c.exchange(ctx, cl)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: cl.op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}

	env := out.status()
	if status < 200 || status > 299 || (cl.requireSuccess && !env.Success) {
		return &APIError{Op: cl.op, Status: status, Message: env.Error, Details: env.Details}
	}
	return nil
}

func malformed(op, what string) error {
	return &TransportError{Op: op, Err: fmt.Errorf("%w: %s", ErrMalformedResponse, what)}
}

func (c *HTTPClient) Authenticate(ctx context.Context, req models.AuthRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp authResponse
	err := c.do(ctx, call{
		op:             "auth",
		method:         http.MethodPost,
		url:            c.endpoints.AuthURL,
		body:           req,
		timeout:        c.requestTimeout,
		requireSuccess: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, malformed("auth", "no user record")
	}
	return resp.User, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, adminEmail string) ([]models.User, error) {
	var resp usersResponse
	err := c.do(ctx, call{
		op:      "admin.list",
		method:  http.MethodGet,
		url:     c.endpoints.AdminURL,
		headers: map[string]string{common.AdminEmailHeaderName: adminEmail},
		timeout: c.requestTimeout,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return nil, malformed("admin.list", "no user list")
	}
	return resp.Users, nil
}

func (c *HTTPClient) UpdateBalance(ctx context.Context, adminEmail string, req models.UpdateBalanceRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp updateBalanceResponse
	err := c.do(ctx, call{
		op:             "admin.update_balance",
		method:         http.MethodPost,
		url:            c.endpoints.AdminURL,
		headers:        map[string]string{common.AdminEmailHeaderName: adminEmail},
		body:           req,
		timeout:        c.requestTimeout,
		requireSuccess: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.Generation, error) {
	var resp generateResponse
	err := c.do(ctx, call{
		op:             "generate",
		method:         http.MethodPost,
		url:            c.endpoints.GenerateURL,
		body:           req,
		timeout:        c.generateTimeout,
		requireSuccess: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.HTML == nil || resp.EnergyRemaining == nil {
		return nil, malformed("generate", "no markup or balance")
	}

	g := &models.Generation{HTML: *resp.HTML, EnergyRemaining: *resp.EnergyRemaining}
	if resp.EnergyUsed != nil {
		g.EnergyUsed = *resp.EnergyUsed
	}
	return g, nil
}
