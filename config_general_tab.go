package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

func (cw *ConfigWindow) buildGeneralTab() fyne.CanvasObject {
	cw.autoStartCheck = widget.NewCheck("Lancer Day au démarrage du système", func(checked bool) {
		cw.markChanged()
	})
	cw.autoStartCheck.SetChecked(cw.config.AutoStart)

	cw.displayNameEntry = widget.NewEntry()
	cw.displayNameEntry.SetPlaceHolder("Votre nom")
	cw.displayNameEntry.SetText(cw.config.DisplayName)
	cw.displayNameEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	cw.chimeCheck = widget.NewCheck("Jouer un carillon lors des changements distants", func(checked bool) {
		cw.markChanged()
	})
	cw.chimeCheck.SetChecked(cw.config.ChimeEnabled)

	cw.hotkeyCheck = widget.NewCheck("Raccourci global Ctrl+Shift+D", func(checked bool) {
		cw.markChanged()
	})
	cw.hotkeyCheck.SetChecked(cw.config.HotkeyEnabled)

	nameLabel := widget.NewLabel("Nom affiché :")
	nameHelp := widget.NewLabel("Pré-rempli lors de l'inscription à un événement")
	nameHelp.Importance = widget.MediumImportance

	autoStartLabel := widget.NewLabel("Démarrage :")
	chimeLabel := widget.NewLabel("Carillon :")
	hotkeyLabel := widget.NewLabel("Raccourci :")

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(nameLabel, nameHelp),
		cw.displayNameEntry,

		autoStartLabel,
		cw.autoStartCheck,

		chimeLabel,
		cw.chimeCheck,

		hotkeyLabel,
		cw.hotkeyCheck,
	)

	content := container.NewVBox(
		widget.NewLabel("Paramètres généraux"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}
