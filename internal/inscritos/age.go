package inscritos

import (
	"strings"
	"time"
)

// AdultAge is the age from which no authorization letter is required.
const AdultAge = 18

var birthDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseBirthDate accepts the date formats the API has been seen to emit.
// Only the calendar date is kept.
func ParseBirthDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range birthDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// AgeAt returns the age in whole years on the calendar date of now. The
// birthday only counts once its month and day have been reached. ok is false
// for missing, malformed or future dates.
func AgeAt(rawBirthDate string, now time.Time) (age int, ok bool) {
	born, ok := ParseBirthDate(rawBirthDate)
	if !ok {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if today.Before(born) {
		return 0, false
	}

	age = today.Year() - born.Year()
	if today.Month() < born.Month() || (today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age, true
}

// Age derives the participant's age from the date of birth.
func (p Participant) Age(now time.Time) (int, bool) {
	return AgeAt(p.FechaNacimiento, now)
}

// IsMinor reports whether the participant is known to be under AdultAge.
// An unknown age is treated as not a minor.
func (p Participant) IsMinor(now time.Time) bool {
	age, ok := p.Age(now)
	return ok && age < AdultAge
}
