package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PortalWindow is the authenticated main window: dashboard, client dossiers
// and the agenda.
type PortalWindow struct {
	portal *Portal
	window fyne.Window

	dashboardTab *DashboardTab
	clientsTab   *ClientsTab
	agendaTab    *AgendaTab
}

func NewPortalWindow(p *Portal) *PortalWindow {
	pw := &PortalWindow{portal: p}

	pw.window = p.app.NewWindow("FinFit Schuldbeheer")
	pw.buildUI()

	return pw
}

func (pw *PortalWindow) buildUI() {
	pw.dashboardTab = NewDashboardTab(pw.portal, pw.window)
	pw.clientsTab = NewClientsTab(pw.portal, pw.window)
	pw.agendaTab = NewAgendaTab(pw.portal, pw.window)

	tabs := container.NewAppTabs(
		container.NewTabItem("Overzicht", pw.dashboardTab.Content()),
		container.NewTabItem("Cliënten", pw.clientsTab.Content()),
		container.NewTabItem("Agenda", pw.agendaTab.Content()),
	)
	tabs.OnSelected = func(item *container.TabItem) {
		switch item.Text {
		case "Overzicht":
			pw.dashboardTab.Refresh()
		case "Cliënten":
			pw.clientsTab.Refresh()
		}
	}

	userLabel := widget.NewLabel("")
	if sess := pw.portal.sessions.Current(); sess != nil {
		name := sess.User.DisplayName
		if name == "" {
			name = sess.User.Username
		}
		userLabel.SetText("Ingelogd als " + name)
	}

	settingsButton := widget.NewButton("Instellingen", func() {
		showSettingsDialog(pw.portal, pw.window)
	})

	logoutButton := widget.NewButton("Uitloggen", func() {
		pw.portal.sessions.Logout()
		pw.portal.showLoginWindow("")
		pw.portal.updateSystemTrayMenu()
	})

	header := container.NewBorder(nil, nil, userLabel,
		container.NewHBox(settingsButton, logoutButton))
	content := container.NewBorder(container.NewPadded(header), nil, nil, nil, tabs)

	pw.window.SetContent(content)
	pw.window.Resize(fyne.NewSize(1100, 760))
	pw.window.CenterOnScreen()

	pw.dashboardTab.Refresh()
	pw.clientsTab.Refresh()
}

func (pw *PortalWindow) Show() {
	pw.window.Show()
}

func (pw *PortalWindow) Close() {
	pw.window.Close()
}
