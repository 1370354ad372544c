package main

import (
	"sync"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// ReminderTracker decides which appointments are due for a reminder popup and
// remembers which ones were already announced, so every appointment chimes at
// most once per session.
type ReminderTracker struct {
	mu       sync.Mutex
	notified map[int]bool
}

func NewReminderTracker() *ReminderTracker {
	return &ReminderTracker{notified: make(map[int]bool)}
}

// Due returns the appointments starting within lead from now that have not
// been announced yet, and marks them as announced.
func (rt *ReminderTracker) Due(appointments []models.Appointment, now time.Time, lead time.Duration) []models.Appointment {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	var due []models.Appointment
	for _, a := range appointments {
		start := a.Start()
		if start.Before(now) || start.Sub(now) > lead {
			continue
		}
		if rt.notified[a.ID] {
			continue
		}
		rt.notified[a.ID] = true
		due = append(due, a)
	}
	return due
}
