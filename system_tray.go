package main

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

func (p *Portal) setupSystemTray() {
	p.updateSystemTrayMenu()
}

func (p *Portal) updateSystemTrayMenu() {
	if desk, ok := p.app.(desktop.App); ok {
		menuItems := []*fyne.MenuItem{}

		// Show the remaining appointments for today at the top
		upcoming := p.upcomingTodayAppointments(5)
		if len(upcoming) > 0 {
			headerItem := fyne.NewMenuItem("Vandaag:", nil)
			headerItem.Disabled = true
			menuItems = append(menuItems, headerItem)

			for _, appointment := range upcoming {
				itemText := fmt.Sprintf("  %s - %s",
					appointment.Time,
					truncateString(appointment.Title, 35))

				item := fyne.NewMenuItem(itemText, nil)
				item.Disabled = true
				menuItems = append(menuItems, item)
			}

			menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		}

		menuItems = append(menuItems,
			fyne.NewMenuItem("Open portaal", func() {
				if p.sessions.Current() != nil {
					p.showPortalWindow()
				} else {
					p.showLoginWindow("")
				}
			}),
			fyne.NewMenuItem("Instellingen", func() {
				p.showSettings()
			}),
			fyne.NewMenuItem("Nu verversen", func() {
				go func() {
					if err := p.controller.Reload(context.Background()); err == nil {
						fyne.Do(p.updateSystemTrayMenu)
					}
				}()
			}),
		)

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		menuItems = append(menuItems, fyne.NewMenuItem("Afsluiten", func() {
			p.quit()
		}))

		menu := fyne.NewMenu("FinFit Schuldbeheer", menuItems...)
		desk.SetSystemTrayMenu(menu)
	}
}

// upcomingTodayAppointments returns the next N appointments still ahead today.
func (p *Portal) upcomingTodayAppointments(limit int) []models.Appointment {
	if p.sessions.Current() == nil {
		return nil
	}

	now := time.Now()
	today := models.Today()

	upcoming := []models.Appointment{}
	for _, appointment := range p.controller.AppointmentsOn(today) {
		if appointment.Start().After(now) {
			upcoming = append(upcoming, appointment)
			if len(upcoming) >= limit {
				break
			}
		}
	}

	return upcoming
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
