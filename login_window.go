package main

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/api"
	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/session"
)

// LoginWindow collects credentials and hands them to the session store.
type LoginWindow struct {
	window    fyne.Window
	app       fyne.App
	sessions  *session.Store
	onSuccess func()

	usernameEntry *widget.Entry
	passwordEntry *widget.Entry
	statusLabel   *widget.Label
	loginButton   *widget.Button
}

func NewLoginWindow(app fyne.App, sessions *session.Store, notice string, onSuccess func()) *LoginWindow {
	lw := &LoginWindow{
		app:       app,
		sessions:  sessions,
		onSuccess: onSuccess,
	}

	lw.window = app.NewWindow("FinFit Schuldbeheer - Inloggen")
	lw.buildUI(notice)

	return lw
}

func (lw *LoginWindow) buildUI(notice string) {
	heading := widget.NewLabel("FinFit Schuldbeheer")
	heading.TextStyle.Bold = true
	heading.Alignment = fyne.TextAlignCenter

	lw.usernameEntry = widget.NewEntry()
	lw.usernameEntry.SetPlaceHolder("Gebruikersnaam")

	lw.passwordEntry = widget.NewPasswordEntry()
	lw.passwordEntry.SetPlaceHolder("Wachtwoord")
	lw.passwordEntry.OnSubmitted = func(string) {
		lw.attemptLogin()
	}

	lw.statusLabel = widget.NewLabel(notice)
	lw.statusLabel.Wrapping = fyne.TextWrapWord
	if notice != "" {
		lw.statusLabel.Importance = widget.WarningImportance
	}

	lw.loginButton = widget.NewButton("Inloggen", func() {
		lw.attemptLogin()
	})
	lw.loginButton.Importance = widget.HighImportance

	form := container.NewVBox(
		heading,
		widget.NewSeparator(),
		lw.usernameEntry,
		lw.passwordEntry,
		lw.loginButton,
		lw.statusLabel,
	)

	lw.window.SetContent(container.NewCenter(container.NewPadded(form)))
	lw.window.Resize(fyne.NewSize(420, 320))
	lw.window.CenterOnScreen()
}

func (lw *LoginWindow) attemptLogin() {
	username := lw.usernameEntry.Text
	password := lw.passwordEntry.Text
	if username == "" || password == "" {
		lw.statusLabel.Importance = widget.DangerImportance
		lw.statusLabel.SetText("Vul gebruikersnaam en wachtwoord in.")
		lw.statusLabel.Refresh()
		return
	}

	lw.loginButton.Disable()
	lw.statusLabel.Importance = widget.MediumImportance
	lw.statusLabel.SetText("Bezig met inloggen...")
	lw.statusLabel.Refresh()

	go func() {
		_, err := lw.sessions.Login(context.Background(), username, password)
		fyne.Do(func() {
			if err != nil {
				lw.loginButton.Enable()
				lw.statusLabel.Importance = widget.DangerImportance
				if errors.Is(err, api.ErrInvalidCredentials) {
					lw.statusLabel.SetText("Onjuiste gebruikersnaam of wachtwoord.")
				} else {
					lw.statusLabel.SetText("Er is een fout opgetreden bij het inloggen. Probeer het later opnieuw.")
				}
				lw.statusLabel.Refresh()
				return
			}
			if lw.onSuccess != nil {
				lw.onSuccess()
			}
		})
	}()
}

func (lw *LoginWindow) Show() {
	lw.window.Show()
}

func (lw *LoginWindow) Close() {
	lw.window.Close()
}
