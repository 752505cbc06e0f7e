package inscritos

import (
	"strings"
	"time"
)

// Badge is the completeness state shown next to each participant.
type Badge string

const (
	BadgeComplete       Badge = "complete"
	BadgeBibPending     Badge = "bib_pending"
	BadgeDocsIncomplete Badge = "docs_incomplete"
)

// Missing names a document the participant still has to provide.
type Missing string

const (
	MissingPayment       Missing = "payment"
	MissingID            Missing = "id"
	MissingAuthorization Missing = "authorization"
)

type Completeness struct {
	Badge   Badge
	Missing []Missing
}

// Completeness computes the badge for p. A pending bib takes precedence over
// missing documents; Missing is filled in either case. The authorization
// letter is only required for minors.
func (p Participant) Completeness(now time.Time) Completeness {
	var missing []Missing
	if !p.HasPaymentProof() {
		missing = append(missing, MissingPayment)
	}
	if !p.HasIDPhotos() {
		missing = append(missing, MissingID)
	}
	if p.IsMinor(now) && !p.HasAuthorization() {
		missing = append(missing, MissingAuthorization)
	}

	switch {
	case !p.HasBib():
		return Completeness{Badge: BadgeBibPending, Missing: missing}
	case len(missing) > 0:
		return Completeness{Badge: BadgeDocsIncomplete, Missing: missing}
	default:
		return Completeness{Badge: BadgeComplete}
	}
}

// StatusFilter narrows a participant list by registration state.
//
// The filter's notion of "complete" does not look at the authorization
// letter, unlike Completeness. Both rules are relied upon by the admin
// screen and are kept as they are.
type StatusFilter string

const (
	FilterNone           StatusFilter = ""
	FilterComplete       StatusFilter = "complete"
	FilterBibPending     StatusFilter = "bib_pending"
	FilterDocsIncomplete StatusFilter = "docs_incomplete"
)

// ParseStatusFilter maps a query value to a filter. Blank, "none" and "all"
// mean no filtering.
func ParseStatusFilter(raw string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", "none", "all":
		return FilterNone, true
	case FilterComplete, FilterBibPending, FilterDocsIncomplete:
		return f, true
	default:
		return FilterNone, false
	}
}

// Match reports whether p belongs to the filtered set. With any filter other
// than FilterNone every participant matches exactly one of the three.
func (f StatusFilter) Match(p Participant) bool {
	switch f {
	case FilterComplete:
		return p.HasBib() && p.HasPaymentProof() && p.HasIDPhotos()
	case FilterBibPending:
		return !p.HasBib()
	case FilterDocsIncomplete:
		return p.HasBib() && (!p.HasPaymentProof() || !p.HasIDPhotos())
	default:
		return true
	}
}
