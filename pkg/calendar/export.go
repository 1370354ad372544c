package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// ExportMonth writes the month's appointments as an iCalendar stream so they
// can be handed to an external calendar application. Appointments outside the
// month are skipped.
func ExportMonth(w io.Writer, year int, month time.Month, appointments []models.Appointment) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//FinFit//Schuldbeheer//NL")

	now := time.Now()
	for _, a := range appointments {
		if a.Date.Year != year || a.Date.Month != month {
			continue
		}

		event := ical.NewEvent()
		uid := fmt.Sprintf("appointment-%d@finfit-schuldbeheer", a.ID)
		if a.ID == 0 {
			// Unsaved drafts have no stable id yet.
			uid = uuid.New().String()
		}
		event.Props.SetText(ical.PropUID, uid)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetText(ical.PropSummary, a.Title)
		event.Props.SetDateTime(ical.PropDateTimeStart, a.Start())
		event.Props.SetDateTime(ical.PropDateTimeEnd, a.Start().Add(time.Duration(a.Duration)*time.Minute))
		if a.Location != nil && *a.Location != "" {
			event.Props.SetText(ical.PropLocation, *a.Location)
		}
		if a.Notes != nil && *a.Notes != "" {
			event.Props.SetText(ical.PropDescription, *a.Notes)
		}

		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}
