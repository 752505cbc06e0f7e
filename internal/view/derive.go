package view

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

// collationTag orders names the way the admin screen's users read them.
var collationTag = language.Spanish

// Derive filters participants by a free-text query and a status filter, then
// orders them: participants without a bib first, then by full name,
// case-insensitively and in Spanish collation order. The sort is stable.
// The result never aliases the input slice.
func Derive(participants []inscritos.Participant, query string, filter inscritos.StatusFilter) []inscritos.Participant {
	q := strings.ToLower(strings.TrimSpace(query))

	type keyed struct {
		p      inscritos.Participant
		hasBib bool
		name   string
	}
	rows := make([]keyed, 0, len(participants))
	for _, p := range participants {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if !filter.Match(p) {
			continue
		}
		rows = append(rows, keyed{
			p:      p,
			hasBib: p.HasBib(),
			name:   strings.ToLower(p.FullName()),
		})
	}

	// Collators keep scratch buffers, so each derivation gets its own.
	col := collate.New(collationTag)
	slices.SortStableFunc(rows, func(a, b keyed) int {
		if a.hasBib != b.hasBib {
			if !a.hasBib {
				return -1
			}
			return 1
		}
		if c := col.CompareString(a.name, b.name); c != 0 {
			return c
		}
		// Collation may ignore some differences; fall back to bytes so only
		// identical names compare equal.
		return strings.Compare(a.name, b.name)
	})

	out := make([]inscritos.Participant, len(rows))
	for i, r := range rows {
		out[i] = r.p
	}
	return out
}

// matchesQuery reports whether any searchable field contains q, which must
// already be trimmed and lower-cased. Absent fields are empty strings.
func matchesQuery(p inscritos.Participant, q string) bool {
	for _, field := range []string{
		p.FullName(),
		string(p.CI),
		p.BibText(),
		string(p.Equipo),
		string(p.Comunidad),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
