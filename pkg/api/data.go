package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// Clients lists all client dossiers.
func (c *Client) Clients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, nil, &out); err != nil {
		return nil, fetchErr(err)
	}
	return out, nil
}

// ClientByID loads a single client dossier.
func (c *Client) ClientByID(ctx context.Context, id int) (models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d", id), nil, nil, &out); err != nil {
		return models.Client{}, fetchErr(err)
	}
	return out, nil
}

// ClientDebts lists the debts registered on a client dossier.
func (c *Client) ClientDebts(ctx context.Context, clientID int) ([]models.Debt, error) {
	var out []models.Debt
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d/debts", clientID), nil, nil, &out); err != nil {
		return nil, fetchErr(err)
	}
	return out, nil
}

// AddNote appends a dated note to a client dossier.
func (c *Client) AddNote(ctx context.Context, clientID int, note models.Note) error {
	body := map[string]models.Note{"note": note}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/clients/%d/notes", clientID), nil, body, nil)
}

// Appointments lists appointments whose date falls within [start, end],
// both bounds inclusive calendar days.
func (c *Client) Appointments(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
	query := url.Values{
		"start_date": {start.String()},
		"end_date":   {end.String()},
	}
	var out []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", query, nil, &out); err != nil {
		return nil, fetchErr(err)
	}
	return out, nil
}

// CreateAppointment registers a new appointment and returns the stored record
// including server-assigned fields.
func (c *Client) CreateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	if err := a.Validate(); err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	var out models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, a, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

// UpdateAppointment replaces an existing appointment.
func (c *Client) UpdateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	if err := a.Validate(); err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	var out models.Appointment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/appointments/%d", a.ID), nil, a, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

// DeleteAppointment removes an appointment from the remote store.
func (c *Client) DeleteAppointment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil, nil)
}

// AddPayment records a payment on a debt. Payments are append-only.
func (c *Client) AddPayment(ctx context.Context, debtID int, p models.Payment) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/debts/%d/payments", debtID), nil, p, nil)
}

// Statistics loads the dashboard summary.
func (c *Client) Statistics(ctx context.Context) (models.Statistics, error) {
	var out models.Statistics
	if err := c.do(ctx, http.MethodGet, "/statistics", nil, nil, &out); err != nil {
		return models.Statistics{}, fetchErr(err)
	}
	return out, nil
}

// Analysis loads the AI dossier analysis for a client.
func (c *Client) Analysis(ctx context.Context, clientID int) (models.Analysis, error) {
	var out models.Analysis
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d/analysis", clientID), nil, nil, &out); err != nil {
		return models.Analysis{}, fetchErr(err)
	}
	return out, nil
}

// RefreshAnalysis asks the analysis collaborator to regenerate and returns the
// fresh result.
func (c *Client) RefreshAnalysis(ctx context.Context, clientID int) (models.Analysis, error) {
	var out models.Analysis
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/clients/%d/analysis/refresh", clientID), nil, nil, &out); err != nil {
		return models.Analysis{}, fetchErr(err)
	}
	return out, nil
}
