package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Coshio12/gestionar-carrera/internal/backend"
	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
	"github.com/Coshio12/gestionar-carrera/internal/metrics"
	"github.com/Coshio12/gestionar-carrera/internal/view"
)

// Backend is the remote API holding participants, categories and teams.
type Backend interface {
	ListCategories(ctx context.Context) ([]inscritos.Category, error)
	ListTeams(ctx context.Context) ([]inscritos.Team, error)
	ListParticipants(ctx context.Context, categoryID inscritos.ID) ([]inscritos.Participant, error)
	GetParticipant(ctx context.Context, id inscritos.ID) (inscritos.Participant, error)
	UpdateParticipant(ctx context.Context, id inscritos.ID, upd inscritos.Update) (inscritos.Participant, error)
	DeleteParticipant(ctx context.Context, id inscritos.ID) error
}

// InscritoItem is a participant as shown by the admin screen: the stored
// record plus its derived age and completeness badge.
type InscritoItem struct {
	inscritos.Participant
	NombreCompleto string              `json:"nombre_completo"`
	Edad           *int                `json:"edad"`
	Estado         inscritos.Badge     `json:"estado"`
	Faltantes      []inscritos.Missing `json:"faltantes"`
}

func newInscritoItem(p inscritos.Participant, now time.Time) InscritoItem {
	item := InscritoItem{
		Participant:    p,
		NombreCompleto: p.FullName(),
		Faltantes:      []inscritos.Missing{},
	}
	if age, ok := p.Age(now); ok {
		item.Edad = &age
	}
	c := p.Completeness(now)
	item.Estado = c.Badge
	if c.Missing != nil {
		item.Faltantes = c.Missing
	}
	return item
}

// InscritosPage is one page of the searched, filtered and sorted list.
type InscritosPage struct {
	Items         []InscritoItem `json:"items"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"totalPages"`
	FilteredCount int            `json:"filteredCount"`
	Total         int            `json:"total"`
	PageSize      int            `json:"pageSize"`
	Query         string         `json:"query"`
	Status        string         `json:"status"`
}

// UpdateInscritoResponse is returned by PUT /api/admin/inscritos/{id}.
// LeftCategory is set when the edit moved the participant out of the
// category the admin was looking at.
type UpdateInscritoResponse struct {
	Inscrito     InscritoItem `json:"inscrito"`
	LeftCategory bool         `json:"leftCategory"`
}

// handleListInscritos serves GET /api/admin/categorias/{categoryID}/inscritos.
// Query parameters: q (free text), status (complete, bib_pending,
// docs_incomplete) and page. A page past the end is clamped to the last one.
func handleListInscritos(logger *slog.Logger, b Backend, m *metrics.Metrics, pageSize int, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := inscritos.ID(chi.URLParam(r, "categoryID"))
		q := r.URL.Query()

		filter, ok := inscritos.ParseStatusFilter(q.Get("status"))
		if !ok {
			writeError(w, http.StatusBadRequest, "status must be complete, bib_pending or docs_incomplete")
			return
		}

		page := 1
		if raw := strings.TrimSpace(q.Get("page")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "page must be a positive integer")
				return
			}
			page = n
		}

		participants, err := b.ListParticipants(r.Context(), categoryID)
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}

		list := view.NewList(pageSize)
		list.SetParticipants(categoryID, participants)
		list.SetQuery(q.Get("q"))
		list.SetStatus(filter)
		list.GoTo(page)
		m.ObserveView(list.FilteredCount())

		at := now()
		items := make([]InscritoItem, 0, list.PageSize())
		for _, p := range list.Page() {
			items = append(items, newInscritoItem(p, at))
		}

		writeJSON(w, http.StatusOK, InscritosPage{
			Items:         items,
			Page:          list.CurrentPage(),
			TotalPages:    list.TotalPages(),
			FilteredCount: list.FilteredCount(),
			Total:         list.Total(),
			PageSize:      list.PageSize(),
			Query:         list.Query(),
			Status:        string(list.Status()),
		})
	}
}

func handleGetInscrito(logger *slog.Logger, b Backend, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := inscritos.ID(chi.URLParam(r, "id"))

		p, err := b.GetParticipant(r.Context(), id)
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newInscritoItem(p, now()))
	}
}

// handleUpdateInscrito serves PUT /api/admin/inscritos/{id}. The optional
// categoria query parameter names the category the admin is looking at;
// it defaults to the participant's category before the edit.
func handleUpdateInscrito(logger *slog.Logger, b Backend, broker *Broker, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := inscritos.ID(chi.URLParam(r, "id"))

		var req inscritos.Update
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.Normalize(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		before, err := b.GetParticipant(r.Context(), id)
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}

		updated, err := b.UpdateParticipant(r.Context(), id, req)
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}
		if updated.ID == "" || updated.CategoriaID == "" {
			// Empty acknowledgement; the stored record is the source of truth.
			updated, err = b.GetParticipant(r.Context(), id)
			if err != nil {
				writeBackendError(w, logger, err)
				return
			}
		}

		active := before.CategoriaID
		if c := strings.TrimSpace(r.URL.Query().Get("categoria")); c != "" {
			active = inscritos.ID(c)
		}

		item := newInscritoItem(updated, now())
		if updated.CategoriaID == before.CategoriaID {
			broker.Publish(before.CategoriaID, ChangeEvent{Type: eventUpdated, ID: id, Inscrito: &item})
		} else {
			broker.Publish(before.CategoriaID, ChangeEvent{Type: eventRemoved, ID: id})
			broker.Publish(updated.CategoriaID, ChangeEvent{Type: eventUpdated, ID: id, Inscrito: &item})
		}

		logger.Info("inscrito updated",
			"id", id,
			"admin", adminFrom(r).Email,
			"from_category", before.CategoriaID,
			"to_category", updated.CategoriaID,
		)
		writeJSON(w, http.StatusOK, UpdateInscritoResponse{
			Inscrito:     item,
			LeftCategory: updated.CategoriaID != active,
		})
	}
}

func handleDeleteInscrito(logger *slog.Logger, b Backend, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := inscritos.ID(chi.URLParam(r, "id"))

		p, err := b.GetParticipant(r.Context(), id)
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}
		if err := b.DeleteParticipant(r.Context(), id); err != nil {
			writeBackendError(w, logger, err)
			return
		}

		broker.Publish(p.CategoriaID, ChangeEvent{Type: eventDeleted, ID: id})
		logger.Info("inscrito deleted", "id", id, "admin", adminFrom(r).Email, "category", p.CategoriaID)
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}

// writeBackendError maps remote API failures onto responses. Client errors
// reported by the API are passed through; everything else is a 502.
func writeBackendError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrNotFound):
		writeError(w, http.StatusNotFound, "inscrito not found")
	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest ||
		apiErr.Status == http.StatusConflict ||
		apiErr.Status == http.StatusUnprocessableEntity):
		msg := apiErr.Message
		if msg == "" {
			msg = "rejected by remote api"
		}
		writeError(w, apiErr.Status, msg)
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is listening.
	default:
		logger.Error("remote api call failed", "error", err)
		writeError(w, http.StatusBadGateway, "remote api unavailable")
	}
}
