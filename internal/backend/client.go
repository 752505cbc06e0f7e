// Package backend talks to the remote REST API that owns participants,
// categories and teams, and to the Supabase storage that holds their
// documents.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
	"github.com/Coshio12/gestionar-carrera/internal/metrics"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.Status)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// TokenProvider returns the bearer token for the next request. An empty
// token sends no Authorization header.
type TokenProvider func(ctx context.Context) (string, error)

// StaticToken always returns token.
func StaticToken(token string) TokenProvider {
	return func(context.Context) (string, error) { return token, nil }
}

type Config struct {
	BaseURL       string
	TokenProvider TokenProvider
	HTTPClient    *http.Client
	Metrics       *metrics.Metrics
}

type Client struct {
	base    *url.URL
	tokens  TokenProvider
	http    *http.Client
	metrics *metrics.Metrics
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}

	c := &Client{
		base:    base,
		tokens:  cfg.TokenProvider,
		http:    cfg.HTTPClient,
		metrics: cfg.Metrics,
	}
	if c.tokens == nil {
		c.tokens = StaticToken("")
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	return c, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]inscritos.Category, error) {
	var out []inscritos.Category
	if err := c.do(ctx, "list_categories", http.MethodGet, "/categorias", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTeams(ctx context.Context) ([]inscritos.Team, error) {
	var out []inscritos.Team
	if err := c.do(ctx, "list_teams", http.MethodGet, "/equipos", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListParticipants(ctx context.Context, categoryID inscritos.ID) ([]inscritos.Participant, error) {
	q := url.Values{"categoria_id": {string(categoryID)}}
	var out []inscritos.Participant
	if err := c.do(ctx, "list_participants", http.MethodGet, "/inscritos", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetParticipant(ctx context.Context, id inscritos.ID) (inscritos.Participant, error) {
	var out inscritos.Participant
	err := c.do(ctx, "get_participant", http.MethodGet, "/inscritos/"+url.PathEscape(string(id)), nil, nil, &out)
	return out, err
}

// UpdateParticipant replaces the editable fields of a participant and returns
// the stored record. When the API acknowledges with an empty reply (204 or a
// body without an id) the record is read back.
func (c *Client) UpdateParticipant(ctx context.Context, id inscritos.ID, upd inscritos.Update) (inscritos.Participant, error) {
	var out inscritos.Participant
	if err := c.do(ctx, "update_participant", http.MethodPut, "/inscritos/"+url.PathEscape(string(id)), nil, upd, &out); err != nil {
		return inscritos.Participant{}, err
	}
	if out.ID == "" || out.CategoriaID == "" {
		return c.GetParticipant(ctx, id)
	}
	return out, nil
}

func (c *Client) DeleteParticipant(ctx context.Context, id inscritos.ID) error {
	return c.do(ctx, "delete_participant", http.MethodDelete, "/inscritos/"+url.PathEscape(string(id)), nil, nil, nil)
}

// Check implements health.Checker by listing categories.
func (c *Client) Check(ctx context.Context) error {
	_, err := c.ListCategories(ctx)
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveBackend(op, err, time.Since(start)) }()

	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("%s: obtaining token: %w", op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", op, decodeAPIError(resp))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

// decodeAPIError reads the message from the usual error envelopes
// ({"error": ...}, {"message": ...}); anything else keeps the status only.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &env) == nil {
		apiErr.Message = env.Error
		if apiErr.Message == "" {
			apiErr.Message = env.Message
		}
	}
	return apiErr
}
