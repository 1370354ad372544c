package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// DashboardTab shows the backend-computed practice summary: client and debt
// totals plus the most recent payments.
type DashboardTab struct {
	portal *Portal
	window fyne.Window

	clientsValue *widget.Label
	debtValue    *widget.Label
	activeValue  *widget.Label
	statusLabel  *widget.Label

	payments     *widget.List
	paymentsData []models.RecentPayment

	root fyne.CanvasObject
}

func NewDashboardTab(p *Portal, window fyne.Window) *DashboardTab {
	dt := &DashboardTab{portal: p, window: window}
	dt.build()
	return dt
}

func (dt *DashboardTab) build() {
	dt.clientsValue = statValue()
	dt.debtValue = statValue()
	dt.activeValue = statValue()

	dt.statusLabel = widget.NewLabel("")
	dt.statusLabel.Wrapping = fyne.TextWrapWord

	cards := container.NewGridWithColumns(3,
		statCard("Cliënten", dt.clientsValue),
		statCard("Totale schuld", dt.debtValue),
		statCard("Actieve schulden", dt.activeValue),
	)

	paymentsTitle := widget.NewLabel("Recente betalingen")
	paymentsTitle.TextStyle.Bold = true

	dt.payments = widget.NewList(
		func() int {
			return len(dt.paymentsData)
		},
		func() fyne.CanvasObject {
			nameLabel := widget.NewLabel("Naam")
			nameLabel.TextStyle.Bold = true
			detailLabel := widget.NewLabel("")
			amountLabel := widget.NewLabel("")
			amountLabel.Alignment = fyne.TextAlignTrailing
			return container.NewBorder(nil, nil, nil, amountLabel,
				container.NewHBox(nameLabel, detailLabel))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			amountLabel := row.Objects[1].(*widget.Label)
			left := row.Objects[0].(*fyne.Container)
			nameLabel := left.Objects[0].(*widget.Label)
			detailLabel := left.Objects[1].(*widget.Label)

			payment := dt.paymentsData[i]
			nameLabel.SetText(payment.ClientName)
			detailLabel.SetText(fmt.Sprintf("%s  ·  %s", payment.Creditor, payment.Date))
			amountLabel.SetText(formatEuro(payment.Amount))
		})

	refreshButton := widget.NewButtonWithIcon("Verversen", theme.ViewRefreshIcon(), func() {
		dt.Refresh()
	})

	header := container.NewBorder(nil, nil, nil, refreshButton, dt.statusLabel)

	dt.root = container.NewBorder(
		container.NewVBox(container.NewPadded(cards), header, paymentsTitle),
		nil, nil, nil,
		dt.payments,
	)
}

func (dt *DashboardTab) Content() fyne.CanvasObject {
	return dt.root
}

// Refresh refetches the statistics in the background.
func (dt *DashboardTab) Refresh() {
	dt.statusLabel.SetText("Overzicht laden...")
	dt.statusLabel.Importance = widget.MediumImportance
	dt.statusLabel.Refresh()

	go func() {
		stats, err := dt.portal.api.Statistics(context.Background())
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to load statistics: %v", err)
				dt.statusLabel.SetText("Het overzicht kon niet worden geladen.")
				dt.statusLabel.Importance = widget.DangerImportance
				dt.statusLabel.Refresh()
				return
			}

			dt.statusLabel.SetText("")
			dt.statusLabel.Importance = widget.MediumImportance
			dt.statusLabel.Refresh()

			dt.clientsValue.SetText(fmt.Sprintf("%d", stats.TotalClients))
			dt.debtValue.SetText(formatEuro(stats.TotalDebt))
			dt.activeValue.SetText(fmt.Sprintf("%d", stats.ActiveDebts))

			dt.paymentsData = stats.RecentPayments
			dt.payments.Refresh()
		})
	}()
}

func statValue() *widget.Label {
	label := widget.NewLabel("-")
	label.TextStyle.Bold = true
	label.Alignment = fyne.TextAlignCenter
	return label
}

func statCard(title string, value *widget.Label) fyne.CanvasObject {
	titleLabel := widget.NewLabel(title)
	titleLabel.Alignment = fyne.TextAlignCenter
	return widget.NewCard("", "", container.NewVBox(titleLabel, value))
}

func formatEuro(amount float64) string {
	return fmt.Sprintf("€ %.2f", amount)
}
