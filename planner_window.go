package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

// PlannerWindow is the main window: a creation form on top and the
// twelve month columns below
type PlannerWindow struct {
	da     *DayApp
	window fyne.Window

	nameEntry    *widget.Entry
	monthSelect  *widget.Select
	typeSelect   *widget.Select
	createButton *widget.Button
	statusLabel  *widget.Label
	monthGrid    *fyne.Container

	creating bool
}

func NewPlannerWindow(da *DayApp) *PlannerWindow {
	pw := &PlannerWindow{da: da}
	pw.window = da.app.NewWindow("Day")
	pw.buildUI()
	return pw
}

func (pw *PlannerWindow) buildUI() {
	title := widget.NewLabel("Day 🧵")
	title.TextStyle = fyne.TextStyle{Bold: true}

	pw.statusLabel = widget.NewLabel("● Hors ligne")
	pw.statusLabel.Importance = widget.MediumImportance

	pw.nameEntry = widget.NewEntry()
	pw.nameEntry.SetPlaceHolder("Nom de l'événement (optionnel)")

	pw.monthSelect = widget.NewSelect(models.Months, nil)
	pw.monthSelect.PlaceHolder = "Mois"
	pw.monthSelect.SetSelectedIndex(0)

	typeNames := make([]string, len(models.EventTypes))
	for i, t := range models.EventTypes {
		typeNames[i] = string(t)
	}
	pw.typeSelect = widget.NewSelect(typeNames, nil)
	pw.typeSelect.PlaceHolder = "Type"
	pw.typeSelect.SetSelectedIndex(0)

	pw.createButton = widget.NewButton("CRÉER", pw.handleCreate)
	pw.createButton.Importance = widget.HighImportance

	form := container.NewBorder(nil, nil,
		container.NewHBox(pw.monthSelect, pw.typeSelect),
		pw.createButton,
		pw.nameEntry,
	)

	header := container.NewVBox(
		container.NewBorder(nil, nil, title, pw.statusLabel),
		form,
		widget.NewSeparator(),
	)

	pw.monthGrid = container.NewGridWithColumns(3)
	pw.rebuildMonthGrid()

	content := container.NewBorder(
		container.NewPadded(header),
		nil, nil, nil,
		container.NewVScroll(container.NewPadded(pw.monthGrid)),
	)

	pw.window.SetContent(content)
	pw.window.Resize(fyne.NewSize(1000, 720))
	pw.window.CenterOnScreen()

	// Closing the window keeps the app in the tray
	pw.window.SetCloseIntercept(func() {
		pw.window.Hide()
	})
}

func (pw *PlannerWindow) handleCreate() {
	if pw.creating {
		return
	}

	month := pw.monthSelect.Selected
	eventType := pw.typeSelect.Selected
	if month == "" || eventType == "" {
		return
	}
	name := pw.nameEntry.Text

	pw.creating = true
	pw.createButton.Disable()
	pw.createButton.SetText("Création...")

	go func() {
		pw.da.createEvent(month, models.EventType(eventType), name)
		fyne.Do(func() {
			pw.creating = false
			pw.createButton.SetText("CRÉER")
			pw.createButton.Enable()
			pw.nameEntry.SetText("")
		})
	}()
}

// Refresh rebuilds the month grid from the store. Must be called on
// the UI thread.
func (pw *PlannerWindow) Refresh() {
	pw.rebuildMonthGrid()
}

func (pw *PlannerWindow) rebuildMonthGrid() {
	pw.monthGrid.RemoveAll()

	for _, month := range models.Months {
		pw.monthGrid.Add(pw.buildMonthCard(month))
	}

	pw.monthGrid.Refresh()
}

func (pw *PlannerWindow) buildMonthCard(month string) fyne.CanvasObject {
	header := widget.NewLabel(month)
	header.TextStyle = fyne.TextStyle{Bold: true}

	events := pw.da.events.EventsForMonth(month)

	body := container.NewVBox()
	if len(events) == 0 {
		free := widget.NewLabel("Libre")
		free.Importance = widget.LowImportance
		free.TextStyle = fyne.TextStyle{Italic: true}
		body.Add(free)
	} else {
		for _, event := range events {
			ev := event
			body.Add(NewEventBubble(&ev, func() {
				pw.da.showEventWindow(&ev)
			}))
		}
	}

	count := widget.NewLabel("")
	if len(events) > 0 {
		count.SetText(fmt.Sprintf("%d", len(events)))
		count.Importance = widget.MediumImportance
	}

	card := container.NewVBox(
		container.NewBorder(nil, nil, header, count),
		widget.NewSeparator(),
		body,
	)

	return container.NewPadded(card)
}

// SetConnectionStatus updates the relay status indicator. Must be
// called on the UI thread.
func (pw *PlannerWindow) SetConnectionStatus(connected bool) {
	if connected {
		pw.statusLabel.SetText("● Connecté")
		pw.statusLabel.Importance = widget.SuccessImportance
	} else {
		pw.statusLabel.SetText("● Hors ligne")
		pw.statusLabel.Importance = widget.MediumImportance
	}
	pw.statusLabel.Refresh()
}

func (pw *PlannerWindow) Show() {
	pw.window.Show()
}
