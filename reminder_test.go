package main

import (
	"testing"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

func testAppointment(id int, day models.Date, timeOfDay string) models.Appointment {
	return models.Appointment{
		ID:       id,
		Title:    "Intake",
		Date:     day,
		Time:     timeOfDay,
		Duration: 60,
	}
}

func TestReminderTrackerDueWindow(t *testing.T) {
	day := models.Date{Year: 2026, Month: time.March, Day: 10}
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	lead := 15 * time.Minute

	appointments := []models.Appointment{
		testAppointment(1, day, "09:10"), // inside the window
		testAppointment(2, day, "09:30"), // too far ahead
		testAppointment(3, day, "08:45"), // already started
	}

	rt := NewReminderTracker()
	due := rt.Due(appointments, now, lead)
	if len(due) != 1 || due[0].ID != 1 {
		t.Fatalf("Due() = %v, want only appointment 1", due)
	}
}

func TestReminderTrackerAnnouncesOnce(t *testing.T) {
	day := models.Date{Year: 2026, Month: time.March, Day: 10}
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	appointments := []models.Appointment{testAppointment(7, day, "09:05")}

	rt := NewReminderTracker()
	if due := rt.Due(appointments, now, 15*time.Minute); len(due) != 1 {
		t.Fatalf("first Due() = %v, want one appointment", due)
	}
	if due := rt.Due(appointments, now.Add(time.Minute), 15*time.Minute); len(due) != 0 {
		t.Fatalf("second Due() = %v, want none", due)
	}
}

func TestReminderTrackerAppointmentEnteringWindowLater(t *testing.T) {
	day := models.Date{Year: 2026, Month: time.March, Day: 10}
	appointments := []models.Appointment{testAppointment(4, day, "10:00")}

	rt := NewReminderTracker()
	early := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	if due := rt.Due(appointments, early, 15*time.Minute); len(due) != 0 {
		t.Fatalf("Due() before window = %v, want none", due)
	}

	later := time.Date(2026, time.March, 10, 9, 50, 0, 0, time.Local)
	if due := rt.Due(appointments, later, 15*time.Minute); len(due) != 1 {
		t.Fatalf("Due() inside window = %v, want one appointment", due)
	}
}
