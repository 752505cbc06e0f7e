package view

import (
	"slices"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

// List holds the participants of the active category together with the
// user's query, status filter and current page. The derived view is only
// recomputed when the list, the query or the filter changed.
//
// A List is not safe for concurrent use.
type List struct {
	pageSize   int
	categoryID inscritos.ID
	all        []inscritos.Participant
	query      string
	filter     inscritos.StatusFilter
	page       int

	derived     []inscritos.Participant
	stale       bool
	derivations int
}

// NewList returns an empty list. A non-positive pageSize selects
// DefaultPageSize.
func NewList(pageSize int) *List {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &List{pageSize: pageSize, page: 1, stale: true}
}

// SetParticipants replaces the list with a freshly fetched one for
// categoryID. The query and filter are kept; the page is clamped.
func (l *List) SetParticipants(categoryID inscritos.ID, participants []inscritos.Participant) {
	if categoryID != l.categoryID {
		l.page = 1
	}
	l.categoryID = categoryID
	l.all = slices.Clone(participants)
	l.stale = true
	l.clamp()
}

func (l *List) SetQuery(query string) {
	if query == l.query {
		return
	}
	l.query = query
	l.stale = true
	l.page = 1
}

func (l *List) SetStatus(filter inscritos.StatusFilter) {
	if filter == l.filter {
		return
	}
	l.filter = filter
	l.stale = true
	l.page = 1
}

// GoTo moves to page, clamped into [1, TotalPages].
func (l *List) GoTo(page int) {
	l.page = page
	l.clamp()
}

func (l *List) NextPage() { l.GoTo(l.page + 1) }

func (l *List) PrevPage() { l.GoTo(l.page - 1) }

// Remove drops the participant with id after a confirmed deletion. It reports
// whether the participant was present.
func (l *List) Remove(id inscritos.ID) bool {
	i := slices.IndexFunc(l.all, func(p inscritos.Participant) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	l.all = slices.Delete(l.all, i, i+1)
	l.stale = true
	l.clamp()
	return true
}

// Apply merges a confirmed update into the list. When the participant moved
// to another category it is dropped instead. It reports whether the
// participant is still part of the list.
func (l *List) Apply(updated inscritos.Participant) bool {
	if updated.CategoriaID != l.categoryID {
		l.Remove(updated.ID)
		return false
	}
	i := slices.IndexFunc(l.all, func(p inscritos.Participant) bool { return p.ID == updated.ID })
	if i < 0 {
		return false
	}
	l.all[i] = updated
	l.stale = true
	l.clamp()
	return true
}

// Page returns the participants shown on the current page.
func (l *List) Page() []inscritos.Participant {
	return Paginate(l.view(), l.pageSize, l.page).Items
}

func (l *List) CurrentPage() int { return l.page }

func (l *List) TotalPages() int {
	return Paginate(l.view(), l.pageSize, l.page).TotalPages
}

// FilteredCount is the number of participants left after search and filter.
func (l *List) FilteredCount() int { return len(l.view()) }

func (l *List) PageSize() int { return l.pageSize }

func (l *List) CategoryID() inscritos.ID { return l.categoryID }

func (l *List) Query() string { return l.query }

func (l *List) Status() inscritos.StatusFilter { return l.filter }

// Total is the size of the unfiltered list.
func (l *List) Total() int { return len(l.all) }

func (l *List) view() []inscritos.Participant {
	if l.stale {
		l.derived = Derive(l.all, l.query, l.filter)
		l.stale = false
		l.derivations++
	}
	return l.derived
}

func (l *List) clamp() {
	total := l.TotalPages()
	if l.page > total {
		l.page = total
	}
	if l.page < 1 {
		l.page = 1
	}
}
