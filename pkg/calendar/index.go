package calendar

import (
	"sort"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// SameDay reports whether two timestamps fall on the same calendar day.
// Only the year, month and day components are compared; this is the single
// definition of "same day" used throughout the portal. Comparing full
// timestamps would wrongly exclude same-day appointments at different times.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Bucket returns the appointments whose date equals day, preserving the input
// order. Every appointment belongs to exactly one day bucket, determined by
// its date fields alone.
func Bucket(appointments []models.Appointment, day models.Date) []models.Appointment {
	var out []models.Appointment
	for _, a := range appointments {
		if a.Date == day {
			out = append(out, a)
		}
	}
	return out
}

// SortByTime orders appointments ascending by their HH:MM time. Lexical order
// on the zero-padded 24h string is chronological order.
func SortByTime(appointments []models.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Time < appointments[j].Time
	})
}
