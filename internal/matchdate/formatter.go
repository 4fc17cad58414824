// Package matchdate renders match timestamps for the Russian-speaking group
// chat and computes the remaining-time breakdown used by reminders.
//
// All dates are naive local timestamps interpreted in a single fixed zone.
package matchdate

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the wire format of match_date in the persisted document.
const ISOLayout = "2006-01-02T15:04:05"

// NotSet is the sentinel rendered for a missing or unparsable date.
const NotSet = "Дата не назначена"

// suppressWindow is the span before kickoff in which reminders are held
// back: the announcement in the same conversation already covered it.
const suppressWindow = 30 * time.Minute

// months is the fixed genitive month table for the single supported locale.
var months = [...]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

var location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tashkent")
	if err != nil {
		// UTC+5, no DST. Containers without tzdata end up here.
		return time.FixedZone("Asia/Tashkent", 5*60*60)
	}
	return loc
}

// Location returns the fixed zone all match times are interpreted in.
func Location() *time.Location {
	return location
}

// Parse interprets a naive ISO-8601 timestamp in the fixed zone.
func Parse(iso string) (time.Time, error) {
	return time.ParseInLocation(ISOLayout, iso, location)
}

// Format renders "02 января в 18:30".
func Format(t time.Time) string {
	t = t.In(location)
	return fmt.Sprintf("%02d %s в %02d:%02d", t.Day(), months[t.Month()], t.Hour(), t.Minute())
}

// FormatDay renders just the day part, "02 января".
func FormatDay(t time.Time) string {
	t = t.In(location)
	return fmt.Sprintf("%02d %s", t.Day(), months[t.Month()])
}

// FormatISO renders a stored optional timestamp; nil or unparsable input
// yields the NotSet sentinel rather than an error.
func FormatISO(iso *string) string {
	if iso == nil {
		return NotSet
	}
	t, err := Parse(*iso)
	if err != nil {
		return NotSet
	}
	return Format(t)
}

// FormatISODay is FormatISO restricted to the day part, used by history
// listings.
func FormatISODay(iso *string) string {
	if iso == nil {
		return NotSet
	}
	t, err := Parse(*iso)
	if err != nil {
		return NotSet
	}
	return FormatDay(t)
}

// Verdict classifies the remaining time before a match.
type Verdict int

const (
	// Notify means a reminder should go out.
	Notify Verdict = iota
	// Expired means the match time has passed.
	Expired
	// Imminent means kickoff is under 30 minutes away and the reminder is
	// suppressed.
	Imminent
)

// Countdown is the non-cumulative days/hours/minutes breakdown of the time
// remaining before a match.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
}

// String renders "1 дн. 2 ч. 3 мин.", omitting zero components.
func (c Countdown) String() string {
	var parts []string
	if c.Days > 0 {
		parts = append(parts, fmt.Sprintf("%d дн.", c.Days))
	}
	if c.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%d ч.", c.Hours))
	}
	if c.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d мин.", c.Minutes))
	}
	return strings.Join(parts, " ")
}

// Until decomposes the time remaining until target and classifies it.
// Minutes are the remainder after whole days and hours are removed.
func Until(target, now time.Time) (Countdown, Verdict) {
	if !now.Before(target) {
		return Countdown{}, Expired
	}
	diff := target.Sub(now)
	cd := Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff % (24 * time.Hour) / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
	}
	if diff < suppressWindow {
		return cd, Imminent
	}
	return cd, Notify
}
