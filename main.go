package main

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/api"
	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/calendar"
	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/session"
)

type Portal struct {
	app        fyne.App
	config     *Config
	api        *api.Client
	sessions   *session.Store
	controller *calendar.Controller

	loginWindow    *LoginWindow
	portalWindow   *PortalWindow
	verifyTicker   *time.Ticker
	reminderTicker *time.Ticker
	reminders      *ReminderTracker
}

func main() {
	a := app.NewWithID("nl.annoursuccesacademy.finfit-schuldbeheer")

	p := &Portal{app: a}
	p.initialize()
	p.app.Run()
}

func (p *Portal) initialize() {
	p.config = loadConfig(p.app)
	saveConfig(p.app, p.config)

	p.api = api.New(p.config.APIBaseURL)
	p.sessions = session.New(p.app.Preferences(), p.api)
	p.controller = calendar.NewController(p.api)
	p.reminders = NewReminderTracker()

	// Sync autostart state with config on startup
	if err := setupAutostart(p.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	p.setupSystemTray()
	p.startVerifyChecker()
	p.startReminderChecker()

	if sess := p.sessions.Restore(); sess != nil {
		// Optimistic: show the portal on restored state, confirm in the
		// background. A failed confirmation forces the login screen.
		p.showPortalWindow()
		go func() {
			if !p.sessions.Verify(context.Background()) {
				fyne.Do(func() {
					p.forceLogin("Je sessie is verlopen. Log opnieuw in.")
				})
			}
		}()
	} else {
		p.showLoginWindow("")
	}
}

// showLoginWindow presents the login screen, closing the portal window if open.
func (p *Portal) showLoginWindow(notice string) {
	if p.portalWindow != nil {
		p.portalWindow.Close()
		p.portalWindow = nil
	}
	if p.loginWindow != nil {
		p.loginWindow.window.RequestFocus()
		p.loginWindow.window.Show()
		return
	}

	p.loginWindow = NewLoginWindow(p.app, p.sessions, notice, func() {
		p.loginWindow = nil
		p.showPortalWindow()
	})
	p.loginWindow.Show()
}

// showPortalWindow presents the authenticated portal.
func (p *Portal) showPortalWindow() {
	if p.loginWindow != nil {
		p.loginWindow.Close()
		p.loginWindow = nil
	}
	if p.portalWindow != nil {
		p.portalWindow.window.RequestFocus()
		p.portalWindow.window.Show()
		return
	}

	p.portalWindow = NewPortalWindow(p)
	p.portalWindow.Show()

	// Load the current month once the window is up.
	go func() {
		if err := p.controller.Today(context.Background()); err != nil {
			log.Printf("Initial agenda load failed: %v", err)
		}
	}()
}

// forceLogin drops back to the login screen with an explanation. Used when
// verification fails mid-session.
func (p *Portal) forceLogin(notice string) {
	log.Println("Session no longer valid, returning to login")
	p.showLoginWindow(notice)
	p.updateSystemTrayMenu()
}

// startVerifyChecker periodically confirms the session token. The session
// store already couples a failed check to a forced logout; the portal only has
// to swap the UI.
func (p *Portal) startVerifyChecker() {
	p.verifyTicker = time.NewTicker(time.Duration(p.config.VerifyIntervalMin) * time.Minute)
	go func() {
		for range p.verifyTicker.C {
			if p.sessions.Current() == nil {
				continue
			}
			if !p.sessions.Verify(context.Background()) {
				fyne.Do(func() {
					p.forceLogin("Je sessie is verlopen. Log opnieuw in.")
				})
			}
		}
	}()
}

// startReminderChecker watches the loaded agenda for imminent appointments.
func (p *Portal) startReminderChecker() {
	p.reminderTicker = time.NewTicker(1 * time.Minute)
	go func() {
		for range p.reminderTicker.C {
			p.checkReminders()
		}
	}()

	go func() {
		time.Sleep(5 * time.Second)
		p.checkReminders()
	}()
}

func (p *Portal) checkReminders() {
	if p.sessions.Current() == nil {
		return
	}

	lead := time.Duration(p.config.ReminderLeadMin) * time.Minute
	for _, a := range p.reminders.Due(p.controller.Appointments(), time.Now(), lead) {
		appointment := a
		clientName := ""
		if appointment.ClientID != nil {
			clientName = p.controller.ClientName(*appointment.ClientID)
		}
		log.Printf("Reminder: %s at %s", appointment.Title, appointment.Time)
		NewReminderWindow(p.app, appointment, clientName).Show()
	}
}

// showSettings opens the settings dialog on whichever window is up.
func (p *Portal) showSettings() {
	switch {
	case p.portalWindow != nil:
		p.portalWindow.window.Show()
		showSettingsDialog(p, p.portalWindow.window)
	case p.loginWindow != nil:
		p.loginWindow.window.Show()
		showSettingsDialog(p, p.loginWindow.window)
	}
}

func (p *Portal) quit() {
	if p.verifyTicker != nil {
		p.verifyTicker.Stop()
	}
	if p.reminderTicker != nil {
		p.reminderTicker.Stop()
	}
	p.app.Quit()
}
