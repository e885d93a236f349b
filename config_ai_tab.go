package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

func (cw *ConfigWindow) buildAITab() fyne.CanvasObject {
	cw.apiKeyEntry = widget.NewPasswordEntry()
	cw.apiKeyEntry.SetPlaceHolder("Clé API Gemini")
	cw.apiKeyEntry.SetText(cw.config.APIKey)
	cw.apiKeyEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	cw.modelEntry = widget.NewEntry()
	cw.modelEntry.SetPlaceHolder(models.DefaultModel)
	cw.modelEntry.SetText(cw.config.Model)
	cw.modelEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	keyLabel := widget.NewLabel("Clé API :")
	keyHelp := widget.NewLabel("Laisser vide pour utiliser la variable d'environnement GEMINI_API_KEY")
	keyHelp.Wrapping = fyne.TextWrapWord
	keyHelp.Importance = widget.MediumImportance

	modelLabel := widget.NewLabel("Modèle :")

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(keyLabel, keyHelp),
		cw.apiKeyEntry,

		modelLabel,
		cw.modelEntry,
	)

	envNote := widget.NewLabel("")
	if os.Getenv("GEMINI_API_KEY") != "" {
		envNote.SetText("GEMINI_API_KEY est définie dans l'environnement.")
	} else {
		envNote.SetText("Sans clé, les événements sont générés en mode local.")
	}
	envNote.Wrapping = fyne.TextWrapWord
	envNote.Importance = widget.LowImportance

	content := container.NewVBox(
		widget.NewLabel("Génération d'idées"),
		widget.NewSeparator(),
		form,
		envNote,
	)

	return container.NewPadded(container.NewVScroll(content))
}
