package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ListManager is a reusable component for managing a list of strings
// with a remove control. It backs the attendee list of an event; adding
// goes through the caller's own entry widget.
type ListManager struct {
	list        *widget.List
	data        []string
	selectedIdx int
	onRemove    func(int)
	renderItem  func(int) string
}

// ListManagerConfig configures the list manager
type ListManagerConfig struct {
	RenderItem func(int) string // Renders a data item as string for display
	OnRemove   func(int)        // Called when removing an item
}

// NewListManager creates a new list manager component
func NewListManager(data []string, config ListManagerConfig) (*ListManager, *fyne.Container) {
	lm := &ListManager{
		data:        data,
		selectedIdx: -1,
		onRemove:    config.OnRemove,
		renderItem:  config.RenderItem,
	}

	lm.list = widget.NewList(
		func() int {
			return len(lm.data)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if i < len(lm.data) {
				text := lm.data[i]
				if lm.renderItem != nil {
					text = lm.renderItem(i)
				}
				label.SetText(text)
			}
		})

	lm.list.OnSelected = func(id widget.ListItemID) {
		lm.selectedIdx = id
	}

	minusButton := widget.NewButton("", func() {
		lm.RemoveSelected()
	})
	minusButton.Icon = theme.ContentRemoveIcon()

	listScroll := container.NewScroll(lm.list)
	listScroll.SetMinSize(fyne.NewSize(0, 150))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	listContainer := container.NewVBox(listWithBorder, container.NewHBox(minusButton))

	return lm, listContainer
}

// Refresh refreshes the list display
func (lm *ListManager) Refresh() {
	lm.list.Refresh()
}

// SetData updates the data and refreshes
func (lm *ListManager) SetData(data []string) {
	lm.data = data
	lm.list.UnselectAll()
	lm.selectedIdx = -1
	lm.list.Refresh()
}

// RemoveSelected removes the currently selected item
func (lm *ListManager) RemoveSelected() {
	if lm.selectedIdx >= 0 && lm.selectedIdx < len(lm.data) {
		if lm.onRemove != nil {
			lm.onRemove(lm.selectedIdx)
		}
		lm.data = append(lm.data[:lm.selectedIdx], lm.data[lm.selectedIdx+1:]...)
		lm.list.UnselectAll()
		lm.selectedIdx = -1
		lm.list.Refresh()
	}
}
