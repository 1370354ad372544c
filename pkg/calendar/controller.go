package calendar

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// Store is the slice of the backend client the controller needs.
type Store interface {
	Appointments(ctx context.Context, start, end models.Date) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error)
	UpdateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error)
	DeleteAppointment(ctx context.Context, id int) error
	Clients(ctx context.Context) ([]models.Client, error)
}

// Controller orchestrates month navigation, day selection and appointment
// CRUD against the remote store. After every mutation it reloads the whole
// month instead of patching local state, so server-side validation and derived
// fields are always reflected — an intentional simplicity-over-latency
// tradeoff.
//
// Loads may overlap when the user navigates quickly; only the result belonging
// to the most recently requested month is ever committed (newest wins). A
// failed load keeps the previously committed state intact.
type Controller struct {
	store Store

	mu           sync.RWMutex
	year         int
	month        time.Month
	selected     models.Date
	appointments []models.Appointment
	clients      []models.Client
	loading      bool
	loadGen      uint64

	onChange func()
	onError  func(error)
}

// NewController creates a controller positioned on today's month with today
// selected. Nothing is loaded until the first LoadMonth call.
func NewController(store Store) *Controller {
	today := models.Today()
	return &Controller{
		store:    store,
		year:     today.Year,
		month:    today.Month,
		selected: today,
	}
}

// SetOnChange registers a callback invoked after every committed state change.
func (c *Controller) SetOnChange(fn func()) {
	c.onChange = fn
}

// SetOnError registers a callback invoked with every surfaced failure.
func (c *Controller) SetOnError(fn func(error)) {
	c.onError = fn
}

// Month returns the currently targeted year and month.
func (c *Controller) Month() (int, time.Month) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.year, c.month
}

// Selected returns the currently selected day.
func (c *Controller) Selected() models.Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// Loading reports whether a month load is in flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Appointments returns a copy of the committed appointment cache.
func (c *Controller) Appointments() []models.Appointment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Appointment, len(c.appointments))
	copy(out, c.appointments)
	return out
}

// Clients returns a copy of the committed client cache.
func (c *Controller) Clients() []models.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Client, len(c.clients))
	copy(out, c.clients)
	return out
}

// ClientName resolves a client id to its display name, for appointment rows.
func (c *Controller) ClientName(id int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cl := range c.clients {
		if cl.ID == id {
			return cl.Name
		}
	}
	return ""
}

// AppointmentsOn returns the day's bucket sorted ascending by time of day.
func (c *Controller) AppointmentsOn(day models.Date) []models.Appointment {
	c.mu.RLock()
	bucket := Bucket(c.appointments, day)
	c.mu.RUnlock()
	SortByTime(bucket)
	return bucket
}

// Grid returns the day layout of the targeted month.
func (c *Controller) Grid() []models.Date {
	year, month := c.Month()
	return MonthGrid(year, month)
}

// SelectDay changes the selected day. Purely local, no network involved.
func (c *Controller) SelectDay(day models.Date) {
	c.mu.Lock()
	c.selected = day
	c.mu.Unlock()
	c.notifyChange()
}

// LoadMonth fetches the month's appointments and the client list, replacing
// the local caches on success. On failure the caches keep their previous
// content and the error is surfaced through the error callback.
func (c *Controller) LoadMonth(ctx context.Context, year int, month time.Month) error {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.year = year
	c.month = month
	c.loading = true
	c.mu.Unlock()
	c.notifyChange()

	start, end := MonthBounds(year, month)
	appointments, err := c.store.Appointments(ctx, start, end)
	var clients []models.Client
	if err == nil {
		clients, err = c.store.Clients(ctx)
	}

	c.mu.Lock()
	if gen != c.loadGen {
		// A newer load was requested while this one was in flight; its result
		// wins and this one is discarded.
		c.mu.Unlock()
		return nil
	}
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		log.Printf("Failed to load %04d-%02d: %v", year, int(month), err)
		c.notifyError(err)
		c.notifyChange()
		return err
	}
	c.appointments = appointments
	c.clients = clients
	c.mu.Unlock()

	log.Printf("Loaded %d appointments for %04d-%02d", len(appointments), year, int(month))
	c.notifyChange()
	return nil
}

// Reload refetches the currently targeted month.
func (c *Controller) Reload(ctx context.Context) error {
	year, month := c.Month()
	return c.LoadMonth(ctx, year, month)
}

// Save creates the appointment when it has no id yet, updates it otherwise,
// then reloads the month. If the reload fails the remote write stays committed
// and only the local view goes stale.
func (c *Controller) Save(ctx context.Context, a models.Appointment) error {
	var err error
	if a.ID != 0 {
		_, err = c.store.UpdateAppointment(ctx, a)
	} else {
		_, err = c.store.CreateAppointment(ctx, a)
	}
	if err != nil {
		c.notifyError(err)
		return err
	}
	return c.Reload(ctx)
}

// Delete removes the appointment remotely, then reloads the month.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if err := c.store.DeleteAppointment(ctx, id); err != nil {
		c.notifyError(err)
		return err
	}
	return c.Reload(ctx)
}

// PreviousMonth navigates one month back and loads it.
func (c *Controller) PreviousMonth(ctx context.Context) error {
	year, month := c.Month()
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return c.LoadMonth(ctx, t.Year(), t.Month())
}

// NextMonth navigates one month forward and loads it.
func (c *Controller) NextMonth(ctx context.Context) error {
	year, month := c.Month()
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return c.LoadMonth(ctx, t.Year(), t.Month())
}

// Today selects the current day and loads its month.
func (c *Controller) Today(ctx context.Context) error {
	today := models.Today()
	c.SelectDay(today)
	return c.LoadMonth(ctx, today.Year, today.Month)
}

func (c *Controller) notifyChange() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) notifyError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
