package main

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

// EventBubble is a compact tappable summary of one event: icon, title
// and the attendee count colored by capacity
type EventBubble struct {
	widget.BaseWidget
	Event    *models.Event
	OnTapped func()

	hovered bool
}

func NewEventBubble(event *models.Event, onTapped func()) *EventBubble {
	b := &EventBubble{
		Event:    event,
		OnTapped: onTapped,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *EventBubble) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.ButtonColor())
	bg.CornerRadius = theme.Padding()

	icon := canvas.NewText(b.Event.Icon, theme.ForegroundColor())
	icon.TextSize = theme.TextSize() + 4

	title := canvas.NewText(b.Event.Title, theme.ForegroundColor())

	count := canvas.NewText(countText(b.Event), capacityColor(b.Event))

	return &eventBubbleRenderer{
		bubble: b,
		bg:     bg,
		icon:   icon,
		title:  title,
		count:  count,
	}
}

func (b *EventBubble) Tapped(*fyne.PointEvent) {
	if b.OnTapped != nil {
		b.OnTapped()
	}
}

func (b *EventBubble) TappedSecondary(*fyne.PointEvent) {
}

func (b *EventBubble) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

func (b *EventBubble) MouseMoved(*desktop.MouseEvent) {
}

func (b *EventBubble) MouseOut() {
	b.hovered = false
	b.Refresh()
}

func (b *EventBubble) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func countText(event *models.Event) string {
	return fmt.Sprintf("%d/%d", len(event.Attendees), event.MaxParticipants)
}

func capacityColor(event *models.Event) color.Color {
	switch event.Capacity() {
	case models.CapacityExceeded:
		return theme.ErrorColor()
	case models.CapacityReached:
		return theme.WarningColor()
	default:
		return theme.ForegroundColor()
	}
}

type eventBubbleRenderer struct {
	bubble *EventBubble
	bg     *canvas.Rectangle
	icon   *canvas.Text
	title  *canvas.Text
	count  *canvas.Text
}

func (r *eventBubbleRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	pad := theme.Padding()
	iconSize := r.icon.MinSize()
	countSize := r.count.MinSize()

	r.icon.Move(fyne.NewPos(pad, (size.Height-iconSize.Height)/2))
	r.icon.Resize(iconSize)

	titleX := pad*2 + iconSize.Width
	titleWidth := size.Width - titleX - countSize.Width - pad*2
	titleSize := r.title.MinSize()
	r.title.Move(fyne.NewPos(titleX, (size.Height-titleSize.Height)/2))
	r.title.Resize(fyne.NewSize(titleWidth, titleSize.Height))

	r.count.Move(fyne.NewPos(size.Width-countSize.Width-pad, (size.Height-countSize.Height)/2))
	r.count.Resize(countSize)
}

func (r *eventBubbleRenderer) MinSize() fyne.Size {
	pad := theme.Padding()
	width := r.icon.MinSize().Width + r.title.MinSize().Width + r.count.MinSize().Width + pad*4
	height := r.icon.MinSize().Height + pad*2
	if height < 36 {
		height = 36
	}
	return fyne.NewSize(width, height)
}

func (r *eventBubbleRenderer) Refresh() {
	r.icon.Text = r.bubble.Event.Icon
	r.title.Text = r.bubble.Event.Title
	r.count.Text = countText(r.bubble.Event)
	r.count.Color = capacityColor(r.bubble.Event)

	if r.bubble.hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	r.bg.Refresh()
	r.icon.Refresh()
	r.title.Refresh()
	r.count.Refresh()
}

func (r *eventBubbleRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.icon, r.title, r.count}
}

func (r *eventBubbleRenderer) Destroy() {
}
