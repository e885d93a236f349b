package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

type ConfigWindow struct {
	window fyne.Window
	app    fyne.App
	config *models.Config
	onSave func(*models.Config)

	// General tab
	autoStartCheck   *widget.Check
	displayNameEntry *widget.Entry
	chimeCheck       *widget.Check
	hotkeyCheck      *widget.Check

	// Sync tab
	relayURLEntry *widget.Entry
	boardKeyEntry *widget.Entry

	// AI tab
	apiKeyEntry *widget.Entry
	modelEntry  *widget.Entry

	// UI state
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewConfigWindow(app fyne.App, config *models.Config, onSave func(*models.Config)) *ConfigWindow {
	cw := &ConfigWindow{
		app:    app,
		config: config,
		onSave: onSave,
	}

	cw.window = app.NewWindow("Day - Paramètres")
	cw.buildUI()

	return cw
}

func (cw *ConfigWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Général", cw.buildGeneralTab()),
		container.NewTabItem("Synchronisation", cw.buildSyncTab()),
		container.NewTabItem("IA", cw.buildAITab()),
	)

	cw.saveStatusLabel = widget.NewLabel("")
	cw.saveStatusLabel.Importance = widget.SuccessImportance

	cw.saveButton = widget.NewButton("Enregistrer", func() {
		cw.saveButton.Disable()
		cw.saveStatusLabel.SetText("Enregistrement...")
		cw.saveStatusLabel.Importance = widget.MediumImportance
		cw.saveStatusLabel.Refresh()

		newConfig := cw.getConfigFromUI()
		go func() {
			if err := setupAutostart(newConfig.AutoStart); err != nil {
				log.Printf("Error setting autostart: %v", err)
				fyne.Do(func() {
					cw.saveStatusLabel.SetText("Erreur: démarrage automatique")
					cw.saveStatusLabel.Importance = widget.DangerImportance
					cw.saveStatusLabel.Refresh()
					cw.updateSaveButtonState()
				})
				return
			}

			if cw.onSave != nil {
				cw.onSave(newConfig)
			}

			fyne.Do(func() {
				cw.config = newConfig
				cw.hasUnsavedChanges = false
				cw.saveStatusLabel.SetText("Paramètres enregistrés")
				cw.saveStatusLabel.Importance = widget.SuccessImportance
				cw.saveStatusLabel.Refresh()
				cw.updateSaveButtonState()

				// Clear success message after 3 seconds
				go func() {
					time.Sleep(3 * time.Second)
					fyne.Do(func() {
						if cw.saveStatusLabel.Text == "Paramètres enregistrés" {
							cw.saveStatusLabel.SetText("")
							cw.saveStatusLabel.Refresh()
						}
					})
				}()
			})
		}()
	})
	cw.saveButton.Importance = widget.HighImportance
	cw.saveButton.Disable() // Initially disabled until changes are made

	closeButton := widget.NewButton("Fermer", func() {
		cw.handleClose()
	})

	leftButtons := container.NewHBox(
		cw.saveButton,
		cw.saveStatusLabel,
	)
	rightButtons := container.NewHBox(
		closeButton,
	)

	buttonRow := container.NewBorder(
		nil,
		nil,
		leftButtons,
		rightButtons,
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	)

	cw.window.SetContent(content)
	cw.window.Resize(fyne.NewSize(640, 520))
	cw.window.CenterOnScreen()

	cw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			cw.handleClose()
		}
	})

	cw.window.SetCloseIntercept(func() {
		cw.handleClose()
	})
}

func (cw *ConfigWindow) getConfigFromUI() *models.Config {
	return &models.Config{
		AutoStart:     cw.autoStartCheck.Checked,
		DisplayName:   cw.displayNameEntry.Text,
		RelayURL:      cw.relayURLEntry.Text,
		BoardKey:      cw.boardKeyEntry.Text,
		APIKey:        cw.apiKeyEntry.Text,
		Model:         cw.modelEntry.Text,
		ChimeEnabled:  cw.chimeCheck.Checked,
		HotkeyEnabled: cw.hotkeyCheck.Checked,
	}
}

func (cw *ConfigWindow) Show() {
	cw.window.Show()
}

// markChanged marks the config as having unsaved changes
func (cw *ConfigWindow) markChanged() {
	cw.hasUnsavedChanges = true
	cw.updateSaveButtonState()
}

// updateSaveButtonState enables or disables the save button based on changes
func (cw *ConfigWindow) updateSaveButtonState() {
	if cw.saveButton != nil {
		if cw.hasUnsavedChanges {
			cw.saveButton.Enable()
		} else {
			cw.saveButton.Disable()
		}
	}
}

// handleClose handles window close with unsaved changes check
func (cw *ConfigWindow) handleClose() {
	if cw.hasActualChanges() {
		dialog.ShowConfirm("Modifications non enregistrées",
			"Des modifications n'ont pas été enregistrées. Fermer quand même ?",
			func(confirmed bool) {
				if confirmed {
					cw.window.Close()
				}
			}, cw.window)
	} else {
		cw.window.Close()
	}
}

// hasActualChanges checks if the current UI state differs from the saved config
func (cw *ConfigWindow) hasActualChanges() bool {
	current := cw.getConfigFromUI()

	return current.AutoStart != cw.config.AutoStart ||
		current.DisplayName != cw.config.DisplayName ||
		current.RelayURL != cw.config.RelayURL ||
		current.BoardKey != cw.config.BoardKey ||
		current.APIKey != cw.config.APIKey ||
		current.Model != cw.config.Model ||
		current.ChimeEnabled != cw.config.ChimeEnabled ||
		current.HotkeyEnabled != cw.config.HotkeyEnabled
}
