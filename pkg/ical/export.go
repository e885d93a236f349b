package ical

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

var dayPattern = regexp.MustCompile(`\b([0-9]{1,2})\b`)

// Export writes the given events as an iCalendar stream. Records whose
// month is not one of the twelve recognized names are skipped, matching
// what the planner renders. The free-text date is mined for a day
// number; without one, the 15th is used.
func Export(w io.Writer, events []models.Event, year int) error {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, "-//Day//Planificateur//FR")

	exported := 0
	for i := range events {
		e := &events[i]
		month, ok := monthIndex(e.Month)
		if !ok {
			continue
		}

		event := goical.NewEvent()
		event.Props.SetText(goical.PropUID, e.ID)
		event.Props.SetDateTime(goical.PropDateTimeStamp, time.Now().UTC())
		event.Props.SetDateTime(goical.PropDateTimeStart, eventStart(e.Date, year, month))
		event.Props.SetText(goical.PropSummary, strings.TrimSpace(e.Icon+" "+e.Title))

		description := e.Description
		if len(e.Attendees) > 0 {
			description += "\nParticipants : " + strings.Join(e.Attendees, ", ")
		}
		event.Props.SetText(goical.PropDescription, description)

		if e.Location != nil && e.Location.Name != "" {
			event.Props.SetText(goical.PropLocation, e.Location.Name)
			if e.Location.MapsURI != "" {
				event.Props.SetText(goical.PropURL, e.Location.MapsURI)
			}
		}

		cal.Children = append(cal.Children, event.Component)
		exported++
	}

	if exported == 0 {
		return fmt.Errorf("no exportable events")
	}

	return goical.NewEncoder(w).Encode(cal)
}

// monthIndex maps a recognized French month name to its 1-based index
func monthIndex(month string) (time.Month, bool) {
	for i, m := range models.Months {
		if m == month {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// eventStart derives a calendar date from the record's free-text date
// ("Le 15 Mars", "Samedi 7 Juin au soir", ...) within the given year and
// month. The first standalone number that is a plausible day wins.
func eventStart(freeText string, year int, month time.Month) time.Time {
	day := 15
	for _, match := range dayPattern.FindAllString(freeText, -1) {
		if n, err := strconv.Atoi(match); err == nil && n >= 1 && n <= 31 {
			day = n
			break
		}
	}

	start := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	// Clamp days the month does not have (e.g. "Le 31 Février")
	if start.Month() != month {
		start = time.Date(year, month+1, 0, 12, 0, 0, 0, time.Local)
	}
	return start
}
