package main

import (
	"fyne.io/fyne/v2"
)

type Config struct {
	APIBaseURL        string `json:"api_base_url"`
	AutoStart         bool   `json:"auto_start"`
	ReminderLeadMin   int    `json:"reminder_lead_min"`
	VerifyIntervalMin int    `json:"verify_interval_min"`
}

func loadConfig(app fyne.App) *Config {
	prefs := app.Preferences()

	return &Config{
		APIBaseURL:        prefs.StringWithFallback("api_base_url", "http://localhost:8000"),
		AutoStart:         prefs.BoolWithFallback("auto_start", false),
		ReminderLeadMin:   prefs.IntWithFallback("reminder_lead_min", 15),
		VerifyIntervalMin: prefs.IntWithFallback("verify_interval_min", 10),
	}
}

func saveConfig(app fyne.App, config *Config) {
	prefs := app.Preferences()

	prefs.SetString("api_base_url", config.APIBaseURL)
	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetInt("reminder_lead_min", config.ReminderLeadMin)
	prefs.SetInt("verify_interval_min", config.VerifyIntervalMin)
}
