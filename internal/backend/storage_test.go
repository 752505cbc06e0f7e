package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURL(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"signedURL": "/object/sign/documentos/pagos/12.jpg?token=abc"}`)
	}))
	defer srv.Close()

	s, err := NewStorage(StorageConfig{BaseURL: srv.URL, APIKey: "anon", Bucket: "documentos", TTL: 90 * time.Second})
	require.NoError(t, err)

	got, err := s.SignedURL(context.Background(), "/documentos/pagos/12.jpg")
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/sign/documentos/pagos/12.jpg", gotPath)
	assert.Equal(t, "anon", gotKey)
	assert.Equal(t, 90, gotBody["expiresIn"])
	assert.Equal(t, srv.URL+"/storage/v1/object/sign/documentos/pagos/12.jpg?token=abc", got)
}

func TestSignedURLPassThroughAndMissing(t *testing.T) {
	s, err := NewStorage(StorageConfig{BaseURL: "http://storage.invalid", Bucket: "documentos"})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.TTL())

	got, err := s.SignedURL(context.Background(), "https://cdn.example.com/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.pdf", got)

	_, err = s.SignedURL(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestSignedURLStorageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error": "Object not found"}`)
	}))
	defer srv.Close()

	s, err := NewStorage(StorageConfig{BaseURL: srv.URL, Bucket: "documentos"})
	require.NoError(t, err)

	_, err = s.SignedURL(context.Background(), "ci/1.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStorageValidation(t *testing.T) {
	_, err := NewStorage(StorageConfig{Bucket: "documentos"})
	assert.Error(t, err)
	_, err = NewStorage(StorageConfig{BaseURL: "http://x"})
	assert.Error(t, err)
}
