package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("requests should carry an X-Request-ID")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["username"] != "mvries" || body["password"] != "geheim" {
			t.Errorf("credentials not forwarded, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": 1, "username": "mvries", "display_name": "M. de Vries"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess, err := c.Login(context.Background(), "mvries", "geheim")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "tok-123" || sess.User.Username != "mvries" {
		t.Errorf("unexpected session %+v", sess)
	}
	if sess.IssuedAt.IsZero() {
		t.Error("IssuedAt should be set")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"onjuiste inloggegevens"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "mvries", "fout")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "mvries", "geheim")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("want ErrUnavailable, got %v", err)
	}
}

func TestVerifyVerdicts(t *testing.T) {
	valid := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		json.NewEncoder(w).Encode(map[string]bool{"valid": valid})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")

	ok, err := c.Verify(context.Background())
	if err != nil || !ok {
		t.Errorf("Verify = (%v, %v), want (true, nil)", ok, err)
	}

	valid = false
	ok, err = c.Verify(context.Background())
	if err != nil || ok {
		t.Errorf("Verify = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestVerifyRejectedTokenIsAVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("revoked")
	ok, err := c.Verify(context.Background())
	if err != nil || ok {
		t.Errorf("Verify = (%v, %v), want (false, nil) on a 401", ok, err)
	}
}

func TestAppointmentsRangeQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2024-03-01" || q.Get("end_date") != "2024-03-31" {
			t.Errorf("unexpected range %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 3, "title": "Intake", "date": "2024-03-05", "time": "09:00", "duration": 60},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	start, _ := models.ParseDate("2024-03-01")
	end, _ := models.ParseDate("2024-03-31")
	got, err := c.Appointments(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Appointments: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Intake" || got[0].Date.String() != "2024-03-05" {
		t.Errorf("unexpected appointments %+v", got)
	}
}

func TestFetchFailureIsRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Clients(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("want ErrFetch, got %v", err)
	}
}

func TestBackendValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"titel is verplicht"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := New(srv.URL)
	a := models.Appointment{Title: "X", Time: "09:00", Duration: 30}
	a.Date, _ = models.ParseDate("2024-03-05")
	_, err := c.CreateAppointment(context.Background(), a)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestCreateAppointmentValidatesBeforeSending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("malformed payloads must not reach the backend")
	}))
	defer srv.Close()

	c := New(srv.URL)
	bad := models.Appointment{Title: "X", Time: "9 uur", Duration: 30}
	bad.Date, _ = models.ParseDate("2024-03-05")
	if _, err := c.CreateAppointment(context.Background(), bad); !errors.Is(err, ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestAddPaymentValidatesMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payments must not reach the backend")
	}))
	defer srv.Close()

	c := New(srv.URL)
	p := models.Payment{Amount: 150, Method: "cheque"}
	p.Date, _ = models.ParseDate("2024-03-05")
	if err := c.AddPayment(context.Background(), 7, p); !errors.Is(err, ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestUpdateAndDeleteAppointmentPaths(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"id": 5, "title": "Intake", "date": "2024-03-05", "time": "09:00", "duration": 60})
	}))
	defer srv.Close()

	c := New(srv.URL)
	a := models.Appointment{ID: 5, Title: "Intake", Time: "09:00", Duration: 60}
	a.Date, _ = models.ParseDate("2024-03-05")
	if _, err := c.UpdateAppointment(context.Background(), a); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/appointments/5" {
		t.Errorf("got %s %s, want PUT /appointments/5", gotMethod, gotPath)
	}

	if err := c.DeleteAppointment(context.Background(), 5); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/appointments/5" {
		t.Errorf("got %s %s, want DELETE /appointments/5", gotMethod, gotPath)
	}
}
