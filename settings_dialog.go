package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettingsDialog edits the portal configuration. Saved values apply
// immediately: the API client is repointed, the autostart entry synced and the
// tickers restarted on their new intervals.
func showSettingsDialog(p *Portal, window fyne.Window) {
	urlEntry := widget.NewEntry()
	urlEntry.SetText(p.config.APIBaseURL)

	leadEntry := widget.NewEntry()
	leadEntry.SetText(strconv.Itoa(p.config.ReminderLeadMin))

	verifyEntry := widget.NewEntry()
	verifyEntry.SetText(strconv.Itoa(p.config.VerifyIntervalMin))

	autostartCheck := widget.NewCheck("Starten bij inloggen op de computer", nil)
	autostartCheck.SetChecked(p.config.AutoStart)

	form := widget.NewForm(
		widget.NewFormItem("API-adres", urlEntry),
		widget.NewFormItem("Herinnering (min vooraf)", leadEntry),
		widget.NewFormItem("Sessiecontrole (min)", verifyEntry),
		widget.NewFormItem("", autostartCheck),
	)

	var d dialog.Dialog
	d = dialog.NewCustomConfirm("Instellingen", "Opslaan", "Annuleren",
		container.NewVBox(form), func(save bool) {
			if !save {
				return
			}

			lead, err := strconv.Atoi(leadEntry.Text)
			if err != nil || lead <= 0 {
				dialog.ShowError(fmt.Errorf("ongeldige herinneringstijd %q", leadEntry.Text), window)
				d.Show()
				return
			}
			verify, err := strconv.Atoi(verifyEntry.Text)
			if err != nil || verify <= 0 {
				dialog.ShowError(fmt.Errorf("ongeldig controle-interval %q", verifyEntry.Text), window)
				d.Show()
				return
			}
			if urlEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("API-adres is verplicht"), window)
				d.Show()
				return
			}

			p.config.APIBaseURL = urlEntry.Text
			p.config.ReminderLeadMin = lead
			p.config.VerifyIntervalMin = verify
			p.config.AutoStart = autostartCheck.Checked
			saveConfig(p.app, p.config)

			p.api.SetBaseURL(p.config.APIBaseURL)
			if p.verifyTicker != nil {
				p.verifyTicker.Reset(time.Duration(verify) * time.Minute)
			}
			if err := setupAutostart(p.config.AutoStart); err != nil {
				log.Printf("Warning: failed to apply autostart setting: %v", err)
			}

			log.Println("Settings saved")
		}, window)
	d.Resize(fyne.NewSize(440, 0))
	d.Show()
}
