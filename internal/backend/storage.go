package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Coshio12/gestionar-carrera/internal/metrics"
)

// ErrNoDocument is returned when a participant has no reference for the
// requested document.
var ErrNoDocument = errors.New("document not uploaded")

type StorageConfig struct {
	BaseURL    string // Supabase project URL
	APIKey     string
	Bucket     string
	TTL        time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// Storage issues short-lived signed URLs for documents kept in a Supabase
// storage bucket.
type Storage struct {
	base    string
	key     string
	bucket  string
	ttl     time.Duration
	http    *http.Client
	metrics *metrics.Metrics
}

func NewStorage(cfg StorageConfig) (*Storage, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("storage url is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	s := &Storage{
		base:    base,
		key:     cfg.APIKey,
		bucket:  cfg.Bucket,
		ttl:     cfg.TTL,
		http:    cfg.HTTPClient,
		metrics: cfg.Metrics,
	}
	if s.ttl <= 0 {
		s.ttl = time.Minute
	}
	if s.http == nil {
		s.http = &http.Client{Timeout: 10 * time.Second}
	}
	return s, nil
}

// TTL is the lifetime of the URLs this storage issues.
func (s *Storage) TTL() time.Duration { return s.ttl }

// SignedURL returns an absolute URL granting temporary read access to ref.
// References that already are absolute URLs are returned unchanged.
func (s *Storage) SignedURL(ctx context.Context, ref string) (signed string, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoDocument
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	start := time.Now()
	defer func() { s.metrics.ObserveBackend("sign_document", err, time.Since(start)) }()

	objectPath := s.objectPath(ref)
	body, err := json.Marshal(map[string]int{"expiresIn": int(s.ttl / time.Second)})
	if err != nil {
		return "", err
	}

	endpoint := s.base + "/storage/v1/object/sign/" + url.PathEscape(s.bucket) + "/" + escapeObjectPath(objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("sign_document: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.key != "" {
		req.Header.Set("apikey", s.key)
		req.Header.Set("Authorization", "Bearer "+s.key)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign_document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("sign_document: %w", decodeAPIError(resp))
	}

	var out struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("sign_document: decoding response: %w", err)
	}
	if out.SignedURL == "" {
		return "", errors.New("sign_document: empty signed url")
	}
	if strings.HasPrefix(out.SignedURL, "http") {
		return out.SignedURL, nil
	}
	return s.base + "/storage/v1/" + strings.TrimLeft(out.SignedURL, "/"), nil
}

// objectPath strips a leading slash and a redundant bucket prefix.
func (s *Storage) objectPath(ref string) string {
	p := strings.TrimLeft(ref, "/")
	return strings.TrimPrefix(p, s.bucket+"/")
}

func escapeObjectPath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
