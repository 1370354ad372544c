package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

type mockStore struct {
	appointmentsFn func(ctx context.Context, start, end models.Date) ([]models.Appointment, error)
	createFn       func(ctx context.Context, a models.Appointment) (models.Appointment, error)
	updateFn       func(ctx context.Context, a models.Appointment) (models.Appointment, error)
	deleteFn       func(ctx context.Context, id int) error
	clientsFn      func(ctx context.Context) ([]models.Client, error)
}

func (m *mockStore) Appointments(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
	if m.appointmentsFn != nil {
		return m.appointmentsFn(ctx, start, end)
	}
	return nil, nil
}

func (m *mockStore) CreateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return a, nil
}

func (m *mockStore) UpdateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return a, nil
}

func (m *mockStore) DeleteAppointment(ctx context.Context, id int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockStore) Clients(ctx context.Context) ([]models.Client, error) {
	if m.clientsFn != nil {
		return m.clientsFn(ctx)
	}
	return nil, nil
}

func TestLoadMonthReplacesCaches(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			if start.String() != "2024-03-01" || end.String() != "2024-03-31" {
				t.Errorf("requested range %s..%s, want full March", start, end)
			}
			return []models.Appointment{apt(1, "2024-03-05", "09:00")}, nil
		},
		clientsFn: func(ctx context.Context) ([]models.Client, error) {
			return []models.Client{{ID: 7, Name: "J. de Vries"}}, nil
		},
	}

	c := NewController(store)
	if err := c.LoadMonth(ctx, 2024, time.March); err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}

	if got := c.Appointments(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("appointments cache = %v, want the loaded appointment", got)
	}
	if name := c.ClientName(7); name != "J. de Vries" {
		t.Errorf("ClientName(7) = %q", name)
	}
	if c.Loading() {
		t.Error("loading flag should be cleared after the load resolves")
	}
}

func TestLoadMonthFailureKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	failing := false
	store := &mockStore{
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			if failing {
				return nil, errors.New("backend down")
			}
			return []models.Appointment{apt(1, "2024-03-05", "09:00")}, nil
		},
	}

	c := NewController(store)
	var surfaced error
	c.SetOnError(func(err error) { surfaced = err })

	if err := c.LoadMonth(ctx, 2024, time.March); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	failing = true
	if err := c.LoadMonth(ctx, 2024, time.April); err == nil {
		t.Fatal("expected load failure")
	}
	if surfaced == nil {
		t.Error("failure should surface through the error callback")
	}
	if got := c.Appointments(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("a failed load must not clear previously committed data, got %v", got)
	}
	if c.Loading() {
		t.Error("loading flag should be cleared after a failed load")
	}
}

func TestOverlappingLoadsNewestWins(t *testing.T) {
	ctx := context.Background()
	aprilStarted := make(chan struct{})
	releaseApril := make(chan struct{})

	store := &mockStore{
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			if start.Month == time.April {
				close(aprilStarted)
				<-releaseApril
				return []models.Appointment{apt(1, "2024-04-10", "09:00")}, nil
			}
			return []models.Appointment{apt(2, "2024-05-06", "11:00")}, nil
		},
	}

	c := NewController(store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// The April result resolves after May was requested and must be discarded.
		if err := c.LoadMonth(ctx, 2024, time.April); err != nil {
			t.Errorf("stale load should be discarded silently, got %v", err)
		}
	}()

	<-aprilStarted
	if err := c.LoadMonth(ctx, 2024, time.May); err != nil {
		t.Fatalf("May load: %v", err)
	}
	close(releaseApril)
	<-done

	if got := c.Appointments(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("committed state = %v, want only May's data", got)
	}
	if _, month := c.Month(); month != time.May {
		t.Errorf("target month = %s, want May", month)
	}
	if c.Loading() {
		t.Error("no load is in flight anymore")
	}
}

func TestSaveCreatesWithoutIDAndReloads(t *testing.T) {
	ctx := context.Background()
	created, updated, loads := 0, 0, 0
	store := &mockStore{
		createFn: func(ctx context.Context, a models.Appointment) (models.Appointment, error) {
			created++
			a.ID = 42
			return a, nil
		},
		updateFn: func(ctx context.Context, a models.Appointment) (models.Appointment, error) {
			updated++
			return a, nil
		},
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			loads++
			return nil, nil
		},
	}

	c := NewController(store)
	draft := apt(0, "2024-03-05", "09:00")
	if err := c.Save(ctx, draft); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if created != 1 || updated != 0 {
		t.Errorf("created=%d updated=%d, want a create", created, updated)
	}
	if loads != 1 {
		t.Errorf("save should reload the month exactly once, got %d loads", loads)
	}

	existing := apt(42, "2024-03-05", "10:00")
	if err := c.Save(ctx, existing); err != nil {
		t.Fatalf("Save existing: %v", err)
	}
	if updated != 1 {
		t.Errorf("an appointment with an id should be updated, updated=%d", updated)
	}
}

func TestSaveReloadFailureKeepsRemoteWrite(t *testing.T) {
	ctx := context.Background()
	created := false
	store := &mockStore{
		createFn: func(ctx context.Context, a models.Appointment) (models.Appointment, error) {
			created = true
			a.ID = 9
			return a, nil
		},
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			return nil, errors.New("refetch failed")
		},
	}

	c := NewController(store)
	err := c.Save(ctx, apt(0, "2024-03-05", "09:00"))
	if err == nil {
		t.Fatal("expected the reload failure to surface")
	}
	if !created {
		t.Error("the remote write must stay committed even when the reload fails")
	}
}

func TestDeleteReloads(t *testing.T) {
	ctx := context.Background()
	deleted := 0
	loads := 0
	store := &mockStore{
		deleteFn: func(ctx context.Context, id int) error {
			if id != 5 {
				t.Errorf("deleted id %d, want 5", id)
			}
			deleted++
			return nil
		},
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			loads++
			return nil, nil
		},
	}

	c := NewController(store)
	if err := c.Delete(ctx, 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 1 || loads != 1 {
		t.Errorf("deleted=%d loads=%d, want one of each", deleted, loads)
	}
}

func TestSelectDayIsLocal(t *testing.T) {
	store := &mockStore{
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			t.Error("SelectDay must not touch the network")
			return nil, nil
		},
	}

	c := NewController(store)
	day, _ := models.ParseDate("2024-03-05")
	c.SelectDay(day)
	if c.Selected() != day {
		t.Errorf("Selected() = %v, want %v", c.Selected(), day)
	}
}

func TestMonthNavigationAcrossYears(t *testing.T) {
	ctx := context.Background()
	c := NewController(&mockStore{})

	if err := c.LoadMonth(ctx, 2024, time.January); err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}
	if err := c.PreviousMonth(ctx); err != nil {
		t.Fatalf("PreviousMonth: %v", err)
	}
	if year, month := c.Month(); year != 2023 || month != time.December {
		t.Errorf("got %d-%s, want 2023-December", year, month)
	}

	if err := c.NextMonth(ctx); err != nil {
		t.Fatalf("NextMonth: %v", err)
	}
	if year, month := c.Month(); year != 2024 || month != time.January {
		t.Errorf("got %d-%s, want 2024-January", year, month)
	}
}

func TestAppointmentsOnSortsByTime(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{
		appointmentsFn: func(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
			return []models.Appointment{
				apt(1, "2024-03-05", "17:30"),
				apt(2, "2024-03-05", "09:00"),
				apt(3, "2024-03-06", "08:00"),
			}, nil
		},
	}

	c := NewController(store)
	if err := c.LoadMonth(ctx, 2024, time.March); err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}

	day, _ := models.ParseDate("2024-03-05")
	got := c.AppointmentsOn(day)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("day view = %v, want ids [2 1] sorted by time", got)
	}
}
