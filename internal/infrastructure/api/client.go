package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
)

// TokenHeader is the custom auth header the service expects on
// authenticated requests.
const TokenHeader = "x-auth-token"

// Client is the HTTP implementation of ports.Gateway. The token is
// process-wide mutable state owned by the session manager; while unset,
// no auth header is sent at all.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetToken attaches the bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken detaches the token; subsequent requests are anonymous.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// --- Identity endpoints ---

type authPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var env struct {
		Data *domain.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Login(ctx context.Context, creds ports.Credentials) (string, *domain.User, error) {
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (c *Client) Register(ctx context.Context, reg ports.Registration) (string, *domain.User, error) {
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", reg, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, updates ports.ProfileUpdate) (*domain.User, error) {
	var env struct {
		Data *domain.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/me", updates, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// --- Broadcast endpoints ---

func (c *Client) ListBroadcasts(ctx context.Context, opts ports.ListOptions) ([]domain.Broadcast, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Urgency != "" {
		q.Set("urgency", opts.Urgency)
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := "/api/broadcasts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env struct {
		Data []domain.Broadcast `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) GetBroadcast(ctx context.Context, id string) (*domain.Broadcast, error) {
	var env struct {
		Data *domain.Broadcast `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/broadcasts/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) CreateBroadcast(ctx context.Context, draft ports.BroadcastDraft) (*domain.Broadcast, error) {
	var env struct {
		Data *domain.Broadcast `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/broadcasts", draft, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) UpdateBroadcast(ctx context.Context, id string, draft ports.BroadcastDraft) (*domain.Broadcast, error) {
	var env struct {
		Data *domain.Broadcast `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/broadcasts/"+url.PathEscape(id), draft, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) DeleteBroadcast(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/broadcasts/"+url.PathEscape(id), nil, nil)
}

// Aggregates arrive in the server's pipeline shape: single-bucket count
// arrays plus a per-urgency group array. Any of them may be empty or
// missing; shaping tolerates that and yields zeros.
type statsPayload struct {
	TotalBroadcasts  []countBucket   `json:"totalBroadcasts"`
	ActiveBroadcasts []countBucket   `json:"activeBroadcasts"`
	ByUrgency        []urgencyBucket `json:"byUrgency"`
}

type countBucket struct {
	Count int `json:"count"`
}

type urgencyBucket struct {
	Urgency string `json:"_id"`
	Count   int    `json:"count"`
}

func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var env struct {
		Data statsPayload `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/broadcasts/stats/summary", nil, &env); err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{ByUrgency: make(map[domain.Urgency]int, len(env.Data.ByUrgency))}
	if len(env.Data.TotalBroadcasts) > 0 {
		stats.Total = env.Data.TotalBroadcasts[0].Count
	}
	if len(env.Data.ActiveBroadcasts) > 0 {
		stats.Active = env.Data.ActiveBroadcasts[0].Count
	}
	for _, b := range env.Data.ByUrgency {
		stats.ByUrgency[domain.Urgency(b.Urgency)] = b.Count
	}
	return stats, nil
}

// --- Transport ---

// do issues one JSON request and decodes the response into out (when
// non-nil). Non-2xx responses become *domain.RemoteError carrying the
// server's message field when present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}
	c.mu.RUnlock()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &domain.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &body)
	return &domain.RemoteError{Status: resp.StatusCode, Message: body.Message}
}
