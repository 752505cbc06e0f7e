package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Coshio12/gestionar-carrera/internal/backend"
	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

// DocumentSigner turns a stored document reference into a URL the browser
// can open for a short time.
type DocumentSigner interface {
	SignedURL(ctx context.Context, ref string) (string, error)
}

// DocumentURLResponse is the response for GET /api/admin/inscritos/{id}/documentos/{kind}.
type DocumentURLResponse struct {
	Kind inscritos.DocumentKind `json:"kind"`
	URL  string                 `json:"url"`
}

func handleDocumentURL(logger *slog.Logger, b Backend, signer DocumentSigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := inscritos.ID(chi.URLParam(r, "id"))
		kind := inscritos.DocumentKind(chi.URLParam(r, "kind"))

		if signer == nil {
			writeError(w, http.StatusServiceUnavailable, "document storage not configured")
			return
		}

		p, err := b.GetParticipant(r.Context(), id)
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}

		ref, known := p.Document(kind)
		if !known {
			writeError(w, http.StatusBadRequest, "unknown document kind")
			return
		}
		if ref == "" {
			writeError(w, http.StatusNotFound, "document not uploaded")
			return
		}

		url, err := signer.SignedURL(r.Context(), ref)
		if errors.Is(err, backend.ErrNoDocument) {
			writeError(w, http.StatusNotFound, "document not uploaded")
			return
		}
		if err != nil {
			logger.Error("signing document url", "id", id, "kind", kind, "error", err)
			writeError(w, http.StatusBadGateway, "document storage unavailable")
			return
		}

		writeJSON(w, http.StatusOK, DocumentURLResponse{Kind: kind, URL: url})
	}
}
