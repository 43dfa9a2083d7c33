// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package calendar renders a shared event as an iCalendar (.ics) file using
github.com/emersion/go-ical.

	err := calendar.Encode(w, view, time.Now())

Event dates and times are free text, so ParseStart tries a handful of
common layouts. An unreadable time makes the entry all-day; an unreadable
date is ErrUnparsableDate. Times are written as floating local times and
every entry lasts DefaultDuration.
*/
package calendar
