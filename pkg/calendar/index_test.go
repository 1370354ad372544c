package calendar

import (
	"testing"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.Local)
	evening := time.Date(2024, time.March, 5, 17, 30, 0, 0, time.Local)
	nextDay := time.Date(2024, time.March, 6, 9, 0, 0, 0, time.Local)

	if !SameDay(morning, evening) {
		t.Error("09:00 and 17:30 on the same date should be the same day")
	}
	if SameDay(morning, nextDay) {
		t.Error("different dates should not be the same day")
	}
}

func TestSameDayIsEquivalenceRelation(t *testing.T) {
	a := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.Local)
	b := time.Date(2024, time.March, 5, 17, 30, 0, 0, time.Local)
	c := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local)

	if !SameDay(a, a) {
		t.Error("SameDay should be reflexive")
	}
	if SameDay(a, b) != SameDay(b, a) {
		t.Error("SameDay should be symmetric")
	}
	if SameDay(a, b) && SameDay(b, c) && !SameDay(a, c) {
		t.Error("SameDay should be transitive")
	}
}

func apt(id int, date string, hhmm string) models.Appointment {
	d, _ := models.ParseDate(date)
	return models.Appointment{ID: id, Title: "Afspraak", Date: d, Time: hhmm, Duration: 60}
}

func TestBucketPartitionsAppointments(t *testing.T) {
	appointments := []models.Appointment{
		apt(1, "2024-03-05", "09:00"),
		apt(2, "2024-03-05", "17:30"),
		apt(3, "2024-03-06", "10:00"),
		apt(4, "2024-03-31", "08:15"),
	}

	// Every appointment must land in exactly one bucket of its month.
	seen := map[int]int{}
	for _, day := range MonthGrid(2024, time.March) {
		if day.IsZero() {
			continue
		}
		for _, a := range Bucket(appointments, day) {
			seen[a.ID]++
		}
	}
	for _, a := range appointments {
		if seen[a.ID] != 1 {
			t.Errorf("appointment %d appears in %d buckets, want 1", a.ID, seen[a.ID])
		}
	}

	day, _ := models.ParseDate("2024-03-05")
	bucket := Bucket(appointments, day)
	if len(bucket) != 2 {
		t.Fatalf("bucket for 2024-03-05 has %d appointments, want 2", len(bucket))
	}
	if bucket[0].ID != 1 || bucket[1].ID != 2 {
		t.Errorf("bucket should preserve input order, got %d then %d", bucket[0].ID, bucket[1].ID)
	}
}

func TestBucketEmptyDay(t *testing.T) {
	day, _ := models.ParseDate("2024-03-07")
	if got := Bucket([]models.Appointment{apt(1, "2024-03-05", "09:00")}, day); len(got) != 0 {
		t.Errorf("expected empty bucket, got %d appointments", len(got))
	}
}

func TestSortByTime(t *testing.T) {
	appointments := []models.Appointment{
		apt(1, "2024-03-05", "17:30"),
		apt(2, "2024-03-05", "09:00"),
		apt(3, "2024-03-05", "09:00"),
		apt(4, "2024-03-05", "13:45"),
	}
	SortByTime(appointments)

	gotOrder := []int{appointments[0].ID, appointments[1].ID, appointments[2].ID, appointments[3].ID}
	wantOrder := []int{2, 3, 4, 1} // stable: equal times keep input order
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("sorted order = %v, want %v", gotOrder, wantOrder)
		}
	}
}
