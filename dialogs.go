package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/ical"
)

// showExportDialog asks for a destination file and writes the whole
// board as an iCalendar file
func (da *DayApp) showExportDialog() {
	parent := da.plannerWindow.window
	parent.Show()

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		defer writer.Close()

		events := da.events.Events()
		if err := ical.Export(writer, events, time.Now().Year()); err != nil {
			dialog.ShowError(err, parent)
			return
		}

		log.Printf("Exported %d events to %s", len(events), writer.URI())
		dialog.ShowInformation("Export terminé",
			"Le calendrier a été exporté au format iCalendar.", parent)
	}, parent)

	fileDialog.SetFileName("day-events.ics")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	fileDialog.Show()
}
