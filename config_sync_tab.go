package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

func (cw *ConfigWindow) buildSyncTab() fyne.CanvasObject {
	cw.relayURLEntry = widget.NewEntry()
	cw.relayURLEntry.SetPlaceHolder("wss://relay.example.com/sync")
	cw.relayURLEntry.SetText(cw.config.RelayURL)
	cw.relayURLEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	cw.boardKeyEntry = widget.NewEntry()
	cw.boardKeyEntry.SetPlaceHolder("day-events")
	cw.boardKeyEntry.SetText(cw.config.BoardKey)
	cw.boardKeyEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	urlLabel := widget.NewLabel("Serveur relais :")
	urlHelp := widget.NewLabel("Adresse WebSocket du serveur de synchronisation")
	urlHelp.Importance = widget.MediumImportance

	boardLabel := widget.NewLabel("Clé du tableau :")
	boardHelp := widget.NewLabel("Tous les participants avec la même clé partagent les mêmes événements")
	boardHelp.Wrapping = fyne.TextWrapWord
	boardHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(urlLabel, urlHelp),
		cw.relayURLEntry,

		container.NewVBox(boardLabel, boardHelp),
		cw.boardKeyEntry,
	)

	offlineNote := widget.NewLabel("Sans connexion, les modifications sont conservées localement et envoyées à la reconnexion.")
	offlineNote.Wrapping = fyne.TextWrapWord
	offlineNote.Importance = widget.LowImportance

	content := container.NewVBox(
		widget.NewLabel("Synchronisation"),
		widget.NewSeparator(),
		form,
		offlineNote,
	)

	return container.NewPadded(container.NewVScroll(content))
}
