package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/calendar"
	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

var weekdayHeaders = []string{"Zo", "Ma", "Di", "Wo", "Do", "Vr", "Za"}

var monthNames = []string{"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december"}

// AgendaTab renders the month grid and the selected-day appointment list.
type AgendaTab struct {
	portal     *Portal
	window     fyne.Window
	controller *calendar.Controller

	monthLabel    *widget.Label
	statusLabel   *widget.Label
	gridContainer *fyne.Container
	dayTitle      *widget.Label
	dayList       *widget.List
	dayListData   []models.Appointment
	root          fyne.CanvasObject
}

func NewAgendaTab(p *Portal, window fyne.Window) *AgendaTab {
	at := &AgendaTab{
		portal:     p,
		window:     window,
		controller: p.controller,
	}
	at.build()

	// Committed state changes and surfaced errors arrive from background
	// loads; hop back onto the UI thread before touching widgets.
	at.controller.SetOnChange(func() {
		fyne.Do(at.Refresh)
	})
	at.controller.SetOnError(func(err error) {
		fyne.Do(func() {
			at.statusLabel.SetText("Er is een fout opgetreden bij het ophalen van de agenda. De laatst geladen gegevens worden getoond.")
			at.statusLabel.Importance = widget.DangerImportance
			at.statusLabel.Refresh()
		})
	})

	return at
}

func (at *AgendaTab) build() {
	at.monthLabel = widget.NewLabel("")
	at.monthLabel.TextStyle.Bold = true
	at.monthLabel.Alignment = fyne.TextAlignCenter

	at.statusLabel = widget.NewLabel("")
	at.statusLabel.Wrapping = fyne.TextWrapWord

	prevButton := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		at.clearStatus()
		go at.controller.PreviousMonth(context.Background())
	})
	nextButton := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		at.clearStatus()
		go at.controller.NextMonth(context.Background())
	})
	todayButton := widget.NewButton("Vandaag", func() {
		at.clearStatus()
		go at.controller.Today(context.Background())
	})

	newButton := widget.NewButtonWithIcon("Nieuwe afspraak", theme.ContentAddIcon(), func() {
		showAppointmentDialog(at.portal, at.window, nil, at.controller.Selected())
	})
	newButton.Importance = widget.HighImportance

	exportButton := widget.NewButtonWithIcon("Exporteren", theme.DownloadIcon(), func() {
		at.exportMonth()
	})

	navigation := container.NewBorder(nil, nil,
		container.NewHBox(prevButton, todayButton, nextButton),
		container.NewHBox(exportButton, newButton),
		at.monthLabel,
	)

	at.gridContainer = container.NewGridWithColumns(7)

	at.dayTitle = widget.NewLabel("")
	at.dayTitle.TextStyle.Bold = true

	at.dayList = widget.NewList(
		func() int {
			return len(at.dayListData)
		},
		func() fyne.CanvasObject {
			timeLabel := widget.NewLabel("00:00")
			timeLabel.TextStyle.Bold = true
			titleLabel := widget.NewLabel("Titel")
			clientLabel := widget.NewLabel("")
			clientLabel.Importance = widget.MediumImportance
			return container.NewHBox(timeLabel, container.NewVBox(titleLabel, clientLabel))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			timeLabel := row.Objects[0].(*widget.Label)
			details := row.Objects[1].(*fyne.Container)
			titleLabel := details.Objects[0].(*widget.Label)
			clientLabel := details.Objects[1].(*widget.Label)

			a := at.dayListData[i]
			timeLabel.SetText(a.Time)
			titleLabel.SetText(a.Title)

			clientText := fmt.Sprintf("%d min", a.Duration)
			if a.ClientID != nil {
				if name := at.controller.ClientName(*a.ClientID); name != "" {
					clientText += "  ·  " + name
				}
			}
			if a.Location != nil && *a.Location != "" {
				clientText += "  ·  " + *a.Location
			}
			clientLabel.SetText(clientText)
		})

	at.dayList.OnSelected = func(id widget.ListItemID) {
		at.dayList.UnselectAll()
		if id < 0 || id >= len(at.dayListData) {
			return
		}
		selected := at.dayListData[id]
		showAppointmentDialog(at.portal, at.window, &selected, selected.Date)
	}

	dayPane := container.NewBorder(at.dayTitle, nil, nil, nil, at.dayList)

	split := container.NewHSplit(
		container.NewBorder(nil, nil, nil, nil, container.NewVScroll(at.gridContainer)),
		dayPane,
	)
	split.SetOffset(0.65)

	at.root = container.NewBorder(
		container.NewVBox(container.NewPadded(navigation), at.statusLabel),
		nil, nil, nil,
		split,
	)

	at.Refresh()
}

func (at *AgendaTab) Content() fyne.CanvasObject {
	return at.root
}

func (at *AgendaTab) clearStatus() {
	at.statusLabel.SetText("")
	at.statusLabel.Importance = widget.MediumImportance
	at.statusLabel.Refresh()
}

// Refresh redraws the grid and day pane from the controller's committed state.
func (at *AgendaTab) Refresh() {
	year, month := at.controller.Month()
	at.monthLabel.SetText(fmt.Sprintf("%s %d", monthNames[int(month)-1], year))
	at.monthLabel.Refresh()

	if at.controller.Loading() {
		at.statusLabel.SetText("Agenda laden...")
		at.statusLabel.Importance = widget.MediumImportance
		at.statusLabel.Refresh()
	} else if at.statusLabel.Importance != widget.DangerImportance {
		at.clearStatus()
	}

	selected := at.controller.Selected()
	today := models.Today()

	cells := []fyne.CanvasObject{}
	for _, header := range weekdayHeaders {
		label := widget.NewLabel(header)
		label.TextStyle.Bold = true
		label.Alignment = fyne.TextAlignCenter
		cells = append(cells, label)
	}

	for _, day := range at.controller.Grid() {
		if day.IsZero() {
			cells = append(cells, widget.NewLabel(""))
			continue
		}

		text := fmt.Sprintf("%d", day.Day)
		if count := len(at.controller.AppointmentsOn(day)); count > 0 {
			text = fmt.Sprintf("%d  (%d)", day.Day, count)
		}

		cellDay := day
		button := widget.NewButton(text, func() {
			at.controller.SelectDay(cellDay)
		})
		switch {
		case cellDay == selected:
			button.Importance = widget.HighImportance
		case cellDay == today:
			button.Importance = widget.SuccessImportance
		default:
			button.Importance = widget.LowImportance
		}
		cells = append(cells, button)
	}

	at.gridContainer.Objects = cells
	at.gridContainer.Refresh()

	at.dayTitle.SetText("Afspraken op " + selected.String())
	at.dayTitle.Refresh()
	at.dayListData = at.controller.AppointmentsOn(selected)
	at.dayList.Refresh()
}

// exportMonth writes the loaded month to an .ics file chosen by the user.
func (at *AgendaTab) exportMonth() {
	year, month := at.controller.Month()
	appointments := at.controller.Appointments()

	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, at.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := calendar.ExportMonth(writer, year, month, appointments); err != nil {
			log.Printf("Agenda export failed: %v", err)
			dialog.ShowError(err, at.window)
			return
		}
		log.Printf("Exported agenda %04d-%02d to %s", year, int(month), writer.URI())
	}, at.window)
}
