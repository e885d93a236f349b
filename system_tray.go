package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

func (da *DayApp) setupSystemTray() {
	da.updateSystemTrayMenu()
}

func (da *DayApp) updateSystemTrayMenu() {
	if desk, ok := da.app.(desktop.App); ok {
		menuItems := []*fyne.MenuItem{}

		// Connection status at the top
		statusItem := fyne.NewMenuItem(da.connectionLabel(), nil)
		statusItem.Disabled = true
		menuItems = append(menuItems, statusItem, fyne.NewMenuItemSeparator())

		// Month-by-month board summary
		summary := da.monthSummary()
		if len(summary) > 0 {
			headerItem := fyne.NewMenuItem("Événements :", nil)
			headerItem.Disabled = true
			menuItems = append(menuItems, headerItem)

			for _, line := range summary {
				item := fyne.NewMenuItem(line, nil)
				item.Disabled = true
				menuItems = append(menuItems, item)
			}

			menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		}

		menuItems = append(menuItems,
			fyne.NewMenuItem("Ouvrir Day", func() {
				da.raisePlanner()
			}),
			fyne.NewMenuItem("Synchroniser", func() {
				go da.syncNow()
			}),
			fyne.NewMenuItem("Exporter le calendrier...", func() {
				da.showExportDialog()
			}),
			fyne.NewMenuItem("Paramètres", func() {
				da.showConfigWindow()
			}),
		)

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		menuItems = append(menuItems, fyne.NewMenuItem("Quitter", func() {
			da.quit()
		}))

		menu := fyne.NewMenu("Day", menuItems...)
		desk.SetSystemTrayMenu(menu)
	}
}

// monthSummary returns one line per occupied month, in calendar order
func (da *DayApp) monthSummary() []string {
	var lines []string
	for _, month := range models.Months {
		if n := len(da.events.EventsForMonth(month)); n > 0 {
			lines = append(lines, fmt.Sprintf("  %s : %d", month, n))
		}
	}
	return lines
}

func (da *DayApp) connectionLabel() string {
	config := da.currentConfig()
	client := da.relayClient()

	switch {
	case config == nil || config.NeedsConfiguration():
		return "Non configuré"
	case client != nil && client.IsConnected():
		return "Connecté"
	default:
		return "Hors ligne"
	}
}
