package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/api"
	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

const noClientOption = "Geen cliënt"

// showAppointmentDialog opens the create/edit form. A nil existing means a new
// appointment on the given day; otherwise the form is prefilled and a delete
// button is added.
func showAppointmentDialog(p *Portal, window fyne.Window, existing *models.Appointment, day models.Date) {
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("Titel")

	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder("JJJJ-MM-DD")
	dateEntry.SetText(day.String())

	timeEntry := widget.NewEntry()
	timeEntry.SetPlaceHolder("UU:MM")
	timeEntry.SetText("09:00")

	durationEntry := widget.NewEntry()
	durationEntry.SetText("60")

	locationEntry := widget.NewEntry()
	locationEntry.SetPlaceHolder("Locatie (optioneel)")

	notesEntry := widget.NewMultiLineEntry()
	notesEntry.SetPlaceHolder("Notities (optioneel)")
	notesEntry.SetMinRowsVisible(3)

	// Client picker over the cached client list
	clients := p.controller.Clients()
	clientOptions := []string{noClientOption}
	for _, client := range clients {
		clientOptions = append(clientOptions, client.Name)
	}
	clientSelect := widget.NewSelect(clientOptions, nil)
	clientSelect.SetSelected(noClientOption)

	if existing != nil {
		titleEntry.SetText(existing.Title)
		dateEntry.SetText(existing.Date.String())
		timeEntry.SetText(existing.Time)
		durationEntry.SetText(strconv.Itoa(existing.Duration))
		if existing.Location != nil {
			locationEntry.SetText(*existing.Location)
		}
		if existing.Notes != nil {
			notesEntry.SetText(*existing.Notes)
		}
		if existing.ClientID != nil {
			for _, client := range clients {
				if client.ID == *existing.ClientID {
					clientSelect.SetSelected(client.Name)
					break
				}
			}
		}
	}

	form := widget.NewForm(
		widget.NewFormItem("Titel", titleEntry),
		widget.NewFormItem("Cliënt", clientSelect),
		widget.NewFormItem("Datum", dateEntry),
		widget.NewFormItem("Tijd", timeEntry),
		widget.NewFormItem("Duur (min)", durationEntry),
		widget.NewFormItem("Locatie", locationEntry),
		widget.NewFormItem("Notities", notesEntry),
	)

	content := container.NewVBox(form)

	dialogTitle := "Nieuwe afspraak"
	if existing != nil {
		dialogTitle = "Afspraak bewerken"
	}

	var d dialog.Dialog
	d = dialog.NewCustomConfirm(dialogTitle, "Opslaan", "Annuleren", content, func(save bool) {
		if !save {
			return
		}

		appointment, err := appointmentFromForm(existing, titleEntry.Text, dateEntry.Text,
			timeEntry.Text, durationEntry.Text, locationEntry.Text, notesEntry.Text,
			clientSelect.Selected, clients)
		if err != nil {
			dialog.ShowError(err, window)
			d.Show()
			return
		}

		go func() {
			if err := p.controller.Save(context.Background(), appointment); err != nil {
				log.Printf("Failed to save appointment: %v", err)
				fyne.Do(func() {
					showSaveError(err, window)
					d.Show()
				})
			}
		}()
	}, window)

	if existing != nil {
		deleteButton := widget.NewButton("Verwijderen", func() {
			dialog.ShowConfirm("Afspraak verwijderen",
				fmt.Sprintf("Weet je zeker dat je %q wilt verwijderen?", existing.Title),
				func(confirmed bool) {
					if !confirmed {
						return
					}
					d.Hide()
					go func() {
						if err := p.controller.Delete(context.Background(), existing.ID); err != nil {
							log.Printf("Failed to delete appointment %d: %v", existing.ID, err)
							fyne.Do(func() {
								showSaveError(err, window)
							})
						}
					}()
				}, window)
		})
		deleteButton.Importance = widget.DangerImportance
		content.Add(widget.NewSeparator())
		content.Add(deleteButton)
	}

	d.Resize(fyne.NewSize(460, 0))
	d.Show()
}

// appointmentFromForm turns the raw form fields into a validated appointment.
func appointmentFromForm(existing *models.Appointment, title, dateText, timeText,
	durationText, location, notes, selectedClient string, clients []models.Client) (models.Appointment, error) {

	date, err := models.ParseDate(dateText)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("ongeldige datum %q, gebruik JJJJ-MM-DD", dateText)
	}

	duration, err := strconv.Atoi(durationText)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("ongeldige duur %q", durationText)
	}

	appointment := models.Appointment{
		Title:    title,
		Date:     date,
		Time:     timeText,
		Duration: duration,
	}
	if existing != nil {
		appointment.ID = existing.ID
	}
	if location != "" {
		appointment.Location = &location
	}
	if notes != "" {
		appointment.Notes = &notes
	}
	if selectedClient != "" && selectedClient != noClientOption {
		for _, client := range clients {
			if client.Name == selectedClient {
				id := client.ID
				appointment.ClientID = &id
				break
			}
		}
	}

	if err := appointment.Validate(); err != nil {
		return models.Appointment{}, fmt.Errorf("afspraak is niet geldig: %v", err)
	}
	return appointment, nil
}

// showSaveError maps API failures to user-facing Dutch messages.
func showSaveError(err error, window fyne.Window) {
	switch {
	case errors.Is(err, api.ErrValidation):
		dialog.ShowError(fmt.Errorf("de afspraak is niet geaccepteerd: %v", err), window)
	case errors.Is(err, api.ErrUnavailable):
		dialog.ShowError(errors.New("de server is niet bereikbaar, probeer het later opnieuw"), window)
	default:
		dialog.ShowError(err, window)
	}
}
