// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/ST10291541/ToastAPI/models"
)

// DefaultDuration is used for DTEND since events only carry a start time
const DefaultDuration = 3 * time.Hour

const productID = "-//toast//event//EN"

var ErrUnparsableDate = errors.New("event date is not in a recognized format")

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3PM",
	"3 PM",
}

// ParseStart combines the free-form date and time strings into a wall-clock
// start. When the time cannot be read the event is treated as all-day.
func ParseStart(date, clock string) (start time.Time, allDay bool, err error) {
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))

	var day time.Time
	for _, layout := range dateLayouts {
		if day, err = time.ParseInLocation(layout, date, time.Local); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %q", ErrUnparsableDate, date)
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			start = time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
			return start, false, nil
		}
	}

	return day, true, nil
}

// Encode writes a single-event iCalendar file for the shared event.
func Encode(w io.Writer, view *models.ShareView, now time.Time) error {
	start, allDay, err := ParseStart(view.Date, view.Time)
	if err != nil {
		return err
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, view.ID+"@toast")
	ve.Props.SetText(ical.PropSummary, view.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())

	if allDay {
		ve.Props.Set(dateProp(ical.PropDateTimeStart, start))
		ve.Props.Set(dateProp(ical.PropDateTimeEnd, start.AddDate(0, 0, 1)))
	} else {
		ve.Props.Set(floatingProp(ical.PropDateTimeStart, start))
		ve.Props.Set(floatingProp(ical.PropDateTimeEnd, start.Add(DefaultDuration)))
	}

	if view.Location != "" {
		ve.Props.SetText(ical.PropLocation, view.Location)
	}
	if desc := description(view); desc != "" {
		ve.Props.SetText(ical.PropDescription, desc)
	}
	if view.Category != "" {
		ve.Props.SetText(ical.PropCategories, view.Category)
	}
	if view.ShareURL != "" {
		p := ical.NewProp(ical.PropURL)
		p.Value = view.ShareURL
		ve.Props.Set(p)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Children = append(cal.Children, ve)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// floatingProp writes a DATE-TIME with no TZID and no Z suffix.
func floatingProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format("20060102T150405")
	return p
}

func dateProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Params = ical.Params{ical.ParamValue: []string{string(ical.ValueDate)}}
	p.Value = t.Format("20060102")
	return p
}

func description(view *models.ShareView) string {
	var parts []string
	if view.Description != "" {
		parts = append(parts, view.Description)
	}
	if view.SharedMediaLink != "" {
		parts = append(parts, "Photos: "+view.SharedMediaLink)
	}
	if view.ShareURL != "" {
		parts = append(parts, "RSVP: "+view.ShareURL)
	}
	return strings.Join(parts, "\n\n")
}
