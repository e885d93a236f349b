package main

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/ui/components"
)

const deleteHoldSeconds = 2

// EventWindow shows one event in detail: editable fields, the
// attendee list with registration, and hold-to-delete
type EventWindow struct {
	da     *DayApp
	window fyne.Window

	// Working copy of the event, published on save
	current *models.Event

	titleLabel      *widget.Label
	countLabel      *widget.Label
	dateEntry       *widget.Entry
	descEntry       *widget.Entry
	locationEntry   *widget.Entry
	maxEntry        *widget.Entry
	attendeeEntry   *widget.Entry
	attendeeManager *components.ListManager

	deleteHeld     bool
	deleteProgress float64
	deleteTicker   *time.Ticker
}

func NewEventWindow(da *DayApp, event *models.Event) *EventWindow {
	clone := event.Clone()
	ew := &EventWindow{
		da:      da,
		current: &clone,
	}
	ew.window = da.app.NewWindow(event.Title)
	ew.buildUI()
	return ew
}

func (ew *EventWindow) buildUI() {
	ev := ew.current

	ew.titleLabel = widget.NewLabel(fmt.Sprintf("%s  %s", ev.Icon, ev.Title))
	ew.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	subtitle := widget.NewLabel(fmt.Sprintf("%s · %s", ev.Type, ev.Month))
	subtitle.Importance = widget.MediumImportance

	header := container.NewVBox(ew.titleLabel, subtitle)
	if ev.AIGenerated {
		aiBadge := widget.NewLabel("✨ Généré par IA")
		aiBadge.Importance = widget.LowImportance
		header.Add(aiBadge)
	}

	ew.dateEntry = widget.NewEntry()
	ew.dateEntry.SetText(ev.Date)

	ew.descEntry = widget.NewMultiLineEntry()
	ew.descEntry.SetText(ev.Description)
	ew.descEntry.Wrapping = fyne.TextWrapWord

	ew.locationEntry = widget.NewEntry()
	if ev.Location != nil {
		ew.locationEntry.SetText(ev.Location.Name)
	}

	mapsButton := widget.NewButton("Carte", func() {
		ew.openMaps()
	})
	locationRow := container.NewBorder(nil, nil, nil, mapsButton, ew.locationEntry)

	ew.maxEntry = widget.NewEntry()
	ew.maxEntry.SetText(strconv.Itoa(ev.MaxParticipants))

	saveButton := widget.NewButton("Enregistrer", func() {
		ew.saveEdits()
	})
	saveButton.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Date", ew.dateEntry),
		widget.NewFormItem("Description", ew.descEntry),
		widget.NewFormItem("Lieu", locationRow),
		widget.NewFormItem("Places", ew.maxEntry),
	)

	// Attendee section
	ew.countLabel = widget.NewLabel(countText(ev))

	ew.attendeeEntry = widget.NewEntry()
	ew.attendeeEntry.SetPlaceHolder("Votre nom")
	ew.attendeeEntry.SetText(ew.da.currentConfig().DisplayName)

	registerButton := widget.NewButton("S'inscrire", func() {
		ew.register()
	})

	var attendeeBox *fyne.Container
	ew.attendeeManager, attendeeBox = components.NewListManager(append([]string{}, ev.Attendees...), components.ListManagerConfig{
		OnRemove: func(idx int) {
			ew.unregister(idx)
		},
	})

	attendeeSection := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Participants"), ew.countLabel),
		attendeeBox,
		container.NewBorder(nil, nil, nil, registerButton, ew.attendeeEntry),
	)

	deleteButton := components.NewHoldButton("Maintenir pour supprimer", nil, nil)
	deleteButton.Danger = true
	deleteButton.OnHoldStart = func() {
		ew.startDeleteProgress(deleteButton)
	}
	deleteButton.OnHoldEnd = func() {
		ew.stopDeleteProgress(deleteButton)
	}

	content := container.NewVBox(
		header,
		widget.NewSeparator(),
		form,
		container.NewPadded(saveButton),
		widget.NewSeparator(),
		attendeeSection,
		widget.NewSeparator(),
		container.NewPadded(deleteButton),
	)

	ew.window.SetContent(container.NewVScroll(container.NewPadded(content)))
	ew.window.Resize(fyne.NewSize(460, 640))
	ew.window.CenterOnScreen()
}

// saveEdits publishes the edited fields as a full record rewrite
func (ew *EventWindow) saveEdits() {
	clone := ew.current.Clone()
	ev := &clone
	ev.Date = ew.dateEntry.Text
	ev.Description = ew.descEntry.Text

	locationName := ew.locationEntry.Text
	if locationName != "" {
		ev.Location = &models.EventLocation{
			Name:    locationName,
			MapsURI: models.MapsSearchURL(locationName),
		}
	} else {
		ev.Location = nil
	}

	if max, err := strconv.Atoi(ew.maxEntry.Text); err == nil && max > 0 {
		ev.MaxParticipants = max
	} else {
		ew.maxEntry.SetText(strconv.Itoa(ev.MaxParticipants))
	}

	ew.current = ev
	ew.da.publishEvent(ev)
}

// register appends the entered name to the attendee list. Going over
// capacity is allowed, the count just turns red.
func (ew *EventWindow) register() {
	name := ew.attendeeEntry.Text
	if name == "" {
		return
	}

	clone := ew.current.Clone()
	ev := &clone
	ev.Attendees = append(ev.Attendees, name)
	ew.current = ev

	ew.attendeeManager.SetData(append([]string{}, ev.Attendees...))
	ew.countLabel.SetText(countText(ev))
	ew.da.publishEvent(ev)
}

// unregister removes the attendee at idx and rewrites the record
func (ew *EventWindow) unregister(idx int) {
	if idx < 0 || idx >= len(ew.current.Attendees) {
		return
	}

	clone := ew.current.Clone()
	ev := &clone
	ev.Attendees = append(ev.Attendees[:idx], ev.Attendees[idx+1:]...)
	ew.current = ev

	ew.countLabel.SetText(countText(ev))
	ew.da.publishEvent(ev)
}

func (ew *EventWindow) openMaps() {
	var raw string
	if ew.current.Location != nil && ew.current.Location.MapsURI != "" {
		raw = ew.current.Location.MapsURI
	} else if ew.locationEntry.Text != "" {
		raw = models.MapsSearchURL(ew.locationEntry.Text)
	} else {
		return
	}

	u, err := url.Parse(raw)
	if err != nil {
		log.Printf("Invalid maps URL %q: %v", raw, err)
		return
	}
	if err := ew.da.app.OpenURL(u); err != nil {
		log.Printf("Failed to open maps URL: %v", err)
	}
}

func (ew *EventWindow) startDeleteProgress(button *components.HoldButton) {
	if ew.deleteHeld {
		return
	}

	ew.deleteHeld = true
	ew.deleteProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})

	tickInterval := 50 * time.Millisecond
	totalTicks := float64(deleteHoldSeconds*1000) / float64(tickInterval.Milliseconds())
	progressIncrement := 1.0 / totalTicks

	ew.deleteTicker = time.NewTicker(tickInterval)

	go func() {
		for range ew.deleteTicker.C {
			if !ew.deleteHeld {
				return
			}

			ew.deleteProgress += progressIncrement
			currentProgress := ew.deleteProgress

			fyne.Do(func() {
				button.SetProgress(currentProgress)
			})

			if currentProgress >= 1.0 {
				ew.deleteTicker.Stop()
				ew.da.deleteEvent(ew.current.ID)
				fyne.Do(func() {
					ew.window.Close()
				})
				return
			}
		}
	}()
}

func (ew *EventWindow) stopDeleteProgress(button *components.HoldButton) {
	ew.deleteHeld = false
	if ew.deleteTicker != nil {
		ew.deleteTicker.Stop()
	}
	ew.deleteProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})
}

// Refresh pulls the latest version of the event from the store after a
// remote change. Must be called on the UI thread.
func (ew *EventWindow) Refresh() {
	latest, ok := ew.da.events.Get(ew.current.ID)
	if !ok {
		return
	}

	clone := latest.Clone()
	ew.current = &clone

	ew.titleLabel.SetText(fmt.Sprintf("%s  %s", ew.current.Icon, ew.current.Title))
	ew.dateEntry.SetText(ew.current.Date)
	ew.descEntry.SetText(ew.current.Description)
	if ew.current.Location != nil {
		ew.locationEntry.SetText(ew.current.Location.Name)
	} else {
		ew.locationEntry.SetText("")
	}
	ew.maxEntry.SetText(strconv.Itoa(ew.current.MaxParticipants))
	ew.attendeeManager.SetData(append([]string{}, ew.current.Attendees...))
	ew.countLabel.SetText(countText(ew.current))
}

// CloseRemoved closes the window after the event was deleted on
// another client. Must be called on the UI thread.
func (ew *EventWindow) CloseRemoved() {
	log.Printf("Event %s removed remotely, closing its window", ew.current.ID)
	ew.window.Close()
}

func (ew *EventWindow) Show() {
	ew.window.Show()
}
