package server

import (
	"log/slog"
	"net/http"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

func handleListCategories(logger *slog.Logger, b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := b.ListCategories(r.Context())
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}
		if cats == nil {
			cats = []inscritos.Category{}
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

// handleListTeams returns the teams for the edit form in Spanish
// alphabetical order, ignoring case.
func handleListTeams(logger *slog.Logger, b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := b.ListTeams(r.Context())
		if err != nil {
			writeBackendError(w, logger, err)
			return
		}
		if teams == nil {
			teams = []inscritos.Team{}
		}
		col := collate.New(language.Spanish, collate.IgnoreCase)
		slices.SortStableFunc(teams, func(a, b inscritos.Team) int {
			return col.CompareString(a.Nombre, b.Nombre)
		})
		writeJSON(w, http.StatusOK, teams)
	}
}
