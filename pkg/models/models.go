// Package models holds the data shapes exchanged with the case-management API.
package models

import (
	"fmt"
	"time"
)

// User is the case worker identity returned by the auth collaborator.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Session is the authenticated identity and bearer credential held by the
// portal for the duration of a login.
type Session struct {
	Token    string    `json:"token"`
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issued_at"`
}

// Note is a dated free-text entry on a client dossier. Notes are appended,
// never edited.
type Note struct {
	Date Date   `json:"date"`
	Text string `json:"text"`
}

// Client is a debt-counseling client dossier.
type Client struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	City       *string `json:"city,omitempty"`
	Notes      []Note  `json:"notes,omitempty"`
}

// Payment methods accepted by the backend.
const (
	PaymentMethodBank        = "bank"
	PaymentMethodCash        = "cash"
	PaymentMethodDirectDebit = "direct-debit"
)

// Payment is a single recorded payment on a debt. Once recorded it is never
// mutated or removed.
type Payment struct {
	Amount float64 `json:"amount"`
	Method string  `json:"payment_method"`
	Date   Date    `json:"payment_date"`
	Notes  *string `json:"notes,omitempty"`
}

// Validate checks a payment before it is sent to the backend.
func (p Payment) Validate() error {
	if p.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive, got %.2f", p.Amount)
	}
	switch p.Method {
	case PaymentMethodBank, PaymentMethodCash, PaymentMethodDirectDebit:
	default:
		return fmt.Errorf("unknown payment method %q", p.Method)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("payment date is required")
	}
	return nil
}

// Debt is a registered debt on a client dossier.
type Debt struct {
	ID                 int       `json:"id"`
	ClientID           int       `json:"client_id"`
	Creditor           string    `json:"creditor"`
	Amount             float64   `json:"amount"`
	Status             string    `json:"status"`
	InterestRate       *float64  `json:"interest_rate,omitempty"`
	StartDate          *Date     `json:"start_date,omitempty"`
	NextPaymentDate    *Date     `json:"next_payment_date,omitempty"`
	PaymentFrequency   *string   `json:"payment_frequency,omitempty"`
	PaymentArrangement *string   `json:"payment_arrangement,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	PaymentHistory     []Payment `json:"payment_history,omitempty"`
}

// Appointment is a scheduled meeting, optionally linked to a client. Multiple
// appointments per day are expected; only the id is unique.
type Appointment struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	ClientID *int    `json:"client_id,omitempty"`
	Date     Date    `json:"date"`
	Time     string  `json:"time"` // HH:MM, 24h
	Duration int     `json:"duration"` // minutes
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Validate checks an appointment before it is sent to the backend.
func (a Appointment) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("appointment title is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("appointment date is required")
	}
	if _, err := time.Parse("15:04", a.Time); err != nil {
		return fmt.Errorf("invalid appointment time %q: %w", a.Time, err)
	}
	if a.Duration <= 0 {
		return fmt.Errorf("appointment duration must be positive, got %d", a.Duration)
	}
	return nil
}

// Start returns the local start timestamp of the appointment. It is only used
// for display and reminders; day-bucketing goes through Date alone.
func (a Appointment) Start() time.Time {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		return a.Date.Time()
	}
	return a.Date.Time().Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

// Statistics is the dashboard summary computed by the backend.
type Statistics struct {
	TotalClients   int             `json:"total_clients"`
	TotalDebt      float64         `json:"total_debt"`
	ActiveDebts    int             `json:"active_debts"`
	RecentPayments []RecentPayment `json:"recent_payments"`
}

// RecentPayment is one row of the dashboard's recent payments list.
type RecentPayment struct {
	ClientName string  `json:"client_name"`
	Creditor   string  `json:"creditor"`
	Amount     float64 `json:"amount"`
	Date       Date    `json:"date"`
}

// Analysis is the AI-generated dossier analysis. Its content is produced by an
// external collaborator and rendered as-is.
type Analysis struct {
	Summary           string     `json:"summary"`
	RiskLevel         string     `json:"risk_level,omitempty"`
	Recommendations   []string   `json:"recommendations,omitempty"`
	RiskFactors       []string   `json:"risk_factors,omitempty"`
	PaymentPrediction string     `json:"payment_prediction,omitempty"`
	PaymentTrend      string     `json:"payment_trend,omitempty"`
	LastUpdated       *time.Time `json:"last_updated,omitempty"`
}
