package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// Dutch labels for the payment methods the backend accepts.
var paymentMethodLabels = map[string]string{
	"Bankoverschrijving":   models.PaymentMethodBank,
	"Contant":              models.PaymentMethodCash,
	"Automatische incasso": models.PaymentMethodDirectDebit,
}

// ClientsTab is the dossier browser: a searchable client list on the left and
// the selected dossier (contact data, notes, debts, analysis) on the right.
type ClientsTab struct {
	portal *Portal
	window fyne.Window

	clients  []models.Client
	filtered []models.Client

	searchEntry *widget.Entry
	list        *widget.List
	statusLabel *widget.Label
	detail      *fyne.Container

	selectedID int

	root fyne.CanvasObject
}

func NewClientsTab(p *Portal, window fyne.Window) *ClientsTab {
	ct := &ClientsTab{portal: p, window: window}
	ct.build()
	return ct
}

func (ct *ClientsTab) build() {
	ct.searchEntry = widget.NewEntry()
	ct.searchEntry.SetPlaceHolder("Zoeken op naam...")
	ct.searchEntry.OnChanged = func(string) {
		ct.applyFilter()
	}

	ct.statusLabel = widget.NewLabel("")
	ct.statusLabel.Wrapping = fyne.TextWrapWord

	ct.list = widget.NewList(
		func() int {
			return len(ct.filtered)
		},
		func() fyne.CanvasObject {
			nameLabel := widget.NewLabel("Naam")
			nameLabel.TextStyle.Bold = true
			contactLabel := widget.NewLabel("")
			return container.NewVBox(nameLabel, contactLabel)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			nameLabel := row.Objects[0].(*widget.Label)
			contactLabel := row.Objects[1].(*widget.Label)

			client := ct.filtered[i]
			nameLabel.SetText(client.Name)
			contactLabel.SetText(client.Email)
		})

	ct.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(ct.filtered) {
			return
		}
		ct.showDetail(ct.filtered[id].ID)
	}

	ct.detail = container.NewVBox(widget.NewLabel("Selecteer een cliënt."))

	listPane := container.NewBorder(
		container.NewVBox(ct.searchEntry, ct.statusLabel),
		nil, nil, nil,
		ct.list,
	)

	split := container.NewHSplit(listPane, container.NewVScroll(container.NewPadded(ct.detail)))
	split.SetOffset(0.3)

	ct.root = split
}

func (ct *ClientsTab) Content() fyne.CanvasObject {
	return ct.root
}

// Refresh refetches the client list in the background.
func (ct *ClientsTab) Refresh() {
	ct.statusLabel.SetText("Cliënten laden...")
	ct.statusLabel.Importance = widget.MediumImportance
	ct.statusLabel.Refresh()

	go func() {
		clients, err := ct.portal.api.Clients(context.Background())
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to load clients: %v", err)
				ct.statusLabel.SetText("De cliëntenlijst kon niet worden geladen.")
				ct.statusLabel.Importance = widget.DangerImportance
				ct.statusLabel.Refresh()
				return
			}

			ct.statusLabel.SetText(fmt.Sprintf("%d cliënten", len(clients)))
			ct.statusLabel.Importance = widget.MediumImportance
			ct.statusLabel.Refresh()

			ct.clients = clients
			ct.applyFilter()
		})
	}()
}

func (ct *ClientsTab) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(ct.searchEntry.Text))
	if query == "" {
		ct.filtered = ct.clients
	} else {
		filtered := []models.Client{}
		for _, client := range ct.clients {
			if strings.Contains(strings.ToLower(client.Name), query) {
				filtered = append(filtered, client)
			}
		}
		ct.filtered = filtered
	}
	ct.list.Refresh()
}

// showDetail loads the full dossier for a client and renders it in the right
// pane. The analysis is fetched best effort; the dossier renders without it.
func (ct *ClientsTab) showDetail(clientID int) {
	ct.selectedID = clientID
	ct.setDetail(widget.NewLabel("Dossier laden..."))

	go func() {
		ctx := context.Background()
		client, err := ct.portal.api.ClientByID(ctx, clientID)
		if err != nil {
			log.Printf("Failed to load client %d: %v", clientID, err)
			fyne.Do(func() {
				ct.setDetail(widget.NewLabel("Het dossier kon niet worden geladen."))
			})
			return
		}

		debts, err := ct.portal.api.ClientDebts(ctx, clientID)
		if err != nil {
			log.Printf("Failed to load debts for client %d: %v", clientID, err)
			fyne.Do(func() {
				ct.setDetail(widget.NewLabel("De schulden konden niet worden geladen."))
			})
			return
		}

		analysis, analysisErr := ct.portal.api.Analysis(ctx, clientID)
		if analysisErr != nil {
			log.Printf("No analysis for client %d: %v", clientID, analysisErr)
		}

		fyne.Do(func() {
			if ct.selectedID != clientID {
				// The user moved on to another dossier meanwhile.
				return
			}
			ct.renderDetail(client, debts, analysis, analysisErr == nil)
		})
	}()
}

func (ct *ClientsTab) setDetail(objects ...fyne.CanvasObject) {
	ct.detail.Objects = objects
	ct.detail.Refresh()
}

func (ct *ClientsTab) renderDetail(client models.Client, debts []models.Debt, analysis models.Analysis, hasAnalysis bool) {
	sections := []fyne.CanvasObject{}

	name := widget.NewLabel(client.Name)
	name.TextStyle.Bold = true
	sections = append(sections, name)

	contact := fmt.Sprintf("%s  ·  %s", client.Email, client.Phone)
	sections = append(sections, widget.NewLabel(contact))
	if client.Address != nil && *client.Address != "" {
		addressParts := []string{*client.Address}
		if client.PostalCode != nil && *client.PostalCode != "" {
			addressParts = append(addressParts, *client.PostalCode)
		}
		if client.City != nil && *client.City != "" {
			addressParts = append(addressParts, *client.City)
		}
		sections = append(sections, widget.NewLabel(strings.Join(addressParts, ", ")))
	}

	sections = append(sections, widget.NewSeparator())
	sections = append(sections, ct.debtsSection(client, debts))
	sections = append(sections, widget.NewSeparator())
	sections = append(sections, ct.notesSection(client))
	sections = append(sections, widget.NewSeparator())
	sections = append(sections, ct.analysisSection(client, analysis, hasAnalysis))

	ct.setDetail(sections...)
}

func (ct *ClientsTab) debtsSection(client models.Client, debts []models.Debt) fyne.CanvasObject {
	title := widget.NewLabel("Schulden")
	title.TextStyle.Bold = true

	section := container.NewVBox(title)
	if len(debts) == 0 {
		section.Add(widget.NewLabel("Geen schulden geregistreerd."))
		return section
	}

	var total float64
	for _, debt := range debts {
		total += debt.Amount
	}
	section.Add(widget.NewLabel(fmt.Sprintf("Totaal: %s", formatEuro(total))))

	for _, debt := range debts {
		debt := debt

		header := fmt.Sprintf("%s  ·  %s  ·  %s", debt.Creditor, formatEuro(debt.Amount), debt.Status)
		body := container.NewVBox()
		if debt.NextPaymentDate != nil {
			body.Add(widget.NewLabel("Volgende betaling: " + debt.NextPaymentDate.String()))
		}
		if debt.PaymentArrangement != nil && *debt.PaymentArrangement != "" {
			arrangement := widget.NewLabel("Regeling: " + *debt.PaymentArrangement)
			arrangement.Wrapping = fyne.TextWrapWord
			body.Add(arrangement)
		}
		for _, payment := range debt.PaymentHistory {
			body.Add(widget.NewLabel(fmt.Sprintf("  %s  %s  (%s)",
				payment.Date, formatEuro(payment.Amount), payment.Method)))
		}

		payButton := widget.NewButtonWithIcon("Betaling registreren", theme.ContentAddIcon(), func() {
			ct.showPaymentDialog(client, debt)
		})
		body.Add(container.NewHBox(payButton))

		section.Add(widget.NewAccordion(widget.NewAccordionItem(header, body)))
	}

	return section
}

func (ct *ClientsTab) notesSection(client models.Client) fyne.CanvasObject {
	title := widget.NewLabel("Notities")
	title.TextStyle.Bold = true

	addButton := widget.NewButtonWithIcon("Notitie toevoegen", theme.ContentAddIcon(), func() {
		ct.showNoteDialog(client)
	})

	section := container.NewVBox(container.NewBorder(nil, nil, title, addButton))
	if len(client.Notes) == 0 {
		section.Add(widget.NewLabel("Nog geen notities."))
		return section
	}

	// Newest first
	for i := len(client.Notes) - 1; i >= 0; i-- {
		note := client.Notes[i]
		text := widget.NewLabel(fmt.Sprintf("%s — %s", note.Date, note.Text))
		text.Wrapping = fyne.TextWrapWord
		section.Add(text)
	}

	return section
}

func (ct *ClientsTab) analysisSection(client models.Client, analysis models.Analysis, hasAnalysis bool) fyne.CanvasObject {
	title := widget.NewLabel("Analyse")
	title.TextStyle.Bold = true

	refreshButton := widget.NewButtonWithIcon("Analyse vernieuwen", theme.ViewRefreshIcon(), func() {
		ct.refreshAnalysis(client.ID)
	})

	section := container.NewVBox(container.NewBorder(nil, nil, title, refreshButton))
	if !hasAnalysis || analysis.Summary == "" {
		section.Add(widget.NewLabel("Nog geen analyse beschikbaar."))
		return section
	}

	summary := widget.NewLabel(analysis.Summary)
	summary.Wrapping = fyne.TextWrapWord
	section.Add(summary)

	if analysis.RiskLevel != "" {
		risk := widget.NewLabel("Risiconiveau: " + analysis.RiskLevel)
		risk.TextStyle.Bold = true
		section.Add(risk)
	}
	for _, factor := range analysis.RiskFactors {
		factorLabel := widget.NewLabel("• " + factor)
		factorLabel.Wrapping = fyne.TextWrapWord
		section.Add(factorLabel)
	}
	if len(analysis.Recommendations) > 0 {
		recTitle := widget.NewLabel("Aanbevelingen")
		recTitle.TextStyle.Bold = true
		section.Add(recTitle)
		for _, rec := range analysis.Recommendations {
			recLabel := widget.NewLabel("• " + rec)
			recLabel.Wrapping = fyne.TextWrapWord
			section.Add(recLabel)
		}
	}
	if analysis.PaymentPrediction != "" {
		prediction := widget.NewLabel("Verwachting: " + analysis.PaymentPrediction)
		prediction.Wrapping = fyne.TextWrapWord
		section.Add(prediction)
	}
	if analysis.LastUpdated != nil {
		section.Add(widget.NewLabel("Bijgewerkt: " + analysis.LastUpdated.Format("2006-01-02 15:04")))
	}

	return section
}

// refreshAnalysis asks the backend to regenerate the analysis, then reloads
// the dossier so the new result shows up.
func (ct *ClientsTab) refreshAnalysis(clientID int) {
	go func() {
		if _, err := ct.portal.api.RefreshAnalysis(context.Background(), clientID); err != nil {
			log.Printf("Failed to refresh analysis for client %d: %v", clientID, err)
			fyne.Do(func() {
				dialog.ShowError(fmt.Errorf("de analyse kon niet worden vernieuwd"), ct.window)
			})
			return
		}
		fyne.Do(func() {
			ct.showDetail(clientID)
		})
	}()
}

func (ct *ClientsTab) showNoteDialog(client models.Client) {
	noteEntry := widget.NewMultiLineEntry()
	noteEntry.SetPlaceHolder("Notitie...")
	noteEntry.SetMinRowsVisible(4)

	d := dialog.NewCustomConfirm("Notitie toevoegen", "Opslaan", "Annuleren",
		container.NewVBox(noteEntry), func(save bool) {
			if !save || strings.TrimSpace(noteEntry.Text) == "" {
				return
			}

			note := models.Note{Date: models.Today(), Text: noteEntry.Text}
			go func() {
				if err := ct.portal.api.AddNote(context.Background(), client.ID, note); err != nil {
					log.Printf("Failed to add note for client %d: %v", client.ID, err)
					fyne.Do(func() {
						dialog.ShowError(fmt.Errorf("de notitie kon niet worden opgeslagen"), ct.window)
					})
					return
				}
				fyne.Do(func() {
					ct.showDetail(client.ID)
				})
			}()
		}, ct.window)
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

func (ct *ClientsTab) showPaymentDialog(client models.Client, debt models.Debt) {
	amountEntry := widget.NewEntry()
	amountEntry.SetPlaceHolder("0.00")

	methodOptions := []string{"Bankoverschrijving", "Contant", "Automatische incasso"}
	methodSelect := widget.NewSelect(methodOptions, nil)
	methodSelect.SetSelected("Bankoverschrijving")

	dateEntry := widget.NewEntry()
	dateEntry.SetText(models.Today().String())

	notesEntry := widget.NewEntry()
	notesEntry.SetPlaceHolder("Omschrijving (optioneel)")

	form := widget.NewForm(
		widget.NewFormItem("Bedrag", amountEntry),
		widget.NewFormItem("Methode", methodSelect),
		widget.NewFormItem("Datum", dateEntry),
		widget.NewFormItem("Omschrijving", notesEntry),
	)

	title := fmt.Sprintf("Betaling aan %s", debt.Creditor)
	var d dialog.Dialog
	d = dialog.NewCustomConfirm(title, "Registreren", "Annuleren",
		container.NewVBox(form), func(save bool) {
			if !save {
				return
			}

			amount, err := strconv.ParseFloat(strings.ReplaceAll(amountEntry.Text, ",", "."), 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("ongeldig bedrag %q", amountEntry.Text), ct.window)
				d.Show()
				return
			}
			date, err := models.ParseDate(dateEntry.Text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("ongeldige datum %q, gebruik JJJJ-MM-DD", dateEntry.Text), ct.window)
				d.Show()
				return
			}

			payment := models.Payment{
				Amount: amount,
				Method: paymentMethodLabels[methodSelect.Selected],
				Date:   date,
			}
			if notesEntry.Text != "" {
				notes := notesEntry.Text
				payment.Notes = &notes
			}
			if err := payment.Validate(); err != nil {
				dialog.ShowError(fmt.Errorf("betaling is niet geldig: %v", err), ct.window)
				d.Show()
				return
			}

			go func() {
				if err := ct.portal.api.AddPayment(context.Background(), debt.ID, payment); err != nil {
					log.Printf("Failed to add payment on debt %d: %v", debt.ID, err)
					fyne.Do(func() {
						showSaveError(err, ct.window)
						d.Show()
					})
					return
				}
				log.Printf("Recorded payment of %s on debt %d", formatEuro(payment.Amount), debt.ID)
				fyne.Do(func() {
					ct.showDetail(client.ID)
				})
			}()
		}, ct.window)
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}
