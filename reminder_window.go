package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// ReminderWindow pops up when an appointment is about to start.
type ReminderWindow struct {
	window      fyne.Window
	app         fyne.App
	appointment models.Appointment
	clientName  string
	chime       *ChimePlayer
}

func NewReminderWindow(app fyne.App, appointment models.Appointment, clientName string) *ReminderWindow {
	rw := &ReminderWindow{
		app:         app,
		appointment: appointment,
		clientName:  clientName,
	}

	rw.chime = playChime()

	// Create window and build UI on the main Fyne thread
	fyne.Do(func() {
		rw.window = app.NewWindow("Afspraakherinnering")
		rw.buildUI()

		rw.window.SetOnClosed(func() {
			if rw.chime != nil {
				rw.chime.Stop()
			}
		})
	})

	return rw
}

func (rw *ReminderWindow) buildUI() {
	title := canvas.NewText(rw.appointment.Title, nil)
	title.TextSize = 24
	title.Alignment = fyne.TextAlignCenter

	end := rw.appointment.Start().Add(minutesToDuration(rw.appointment.Duration))
	timeInfo := fmt.Sprintf("%s  %s - %s",
		rw.appointment.Date.Time().Format("Monday 2 January"),
		rw.appointment.Time,
		end.Format("15:04"))
	timeLabel := widget.NewLabel(timeInfo)
	timeLabel.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(
		container.NewPadded(title),
		timeLabel,
	)

	if rw.clientName != "" {
		clientLabel := widget.NewLabel("Cliënt: " + rw.clientName)
		clientLabel.Alignment = fyne.TextAlignCenter
		content.Add(clientLabel)
	}
	if rw.appointment.Location != nil && *rw.appointment.Location != "" {
		locationLabel := widget.NewLabel("Locatie: " + *rw.appointment.Location)
		locationLabel.Alignment = fyne.TextAlignCenter
		content.Add(locationLabel)
	}
	if rw.appointment.Notes != nil && *rw.appointment.Notes != "" {
		notes := widget.NewLabel(*rw.appointment.Notes)
		notes.Wrapping = fyne.TextWrapWord
		notes.Alignment = fyne.TextAlignCenter
		content.Add(notes)
	}

	content.Add(widget.NewSeparator())

	closeButton := widget.NewButton("Sluiten", func() {
		rw.window.Close()
	})
	closeButton.Importance = widget.HighImportance
	content.Add(container.NewCenter(closeButton))

	rw.window.SetContent(container.NewPadded(content))
	rw.window.Resize(fyne.NewSize(420, 260))
	rw.window.CenterOnScreen()
}

func (rw *ReminderWindow) Show() {
	fyne.Do(func() {
		rw.window.Show()
		rw.window.RequestFocus()
	})
}

func minutesToDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
