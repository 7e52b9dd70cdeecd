package calendar

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prodID    = "-//St Elias Orthodox Church//Events//EN"
	uidDomain = "steliasaustin.org"

	// events without an explicit end time default to 2 hours
	defaultEventLength = 2 * time.Hour
)

// Invite holds the fields of a single-event calendar invite.
type Invite struct {
	Title       string
	Description string
	Start       time.Time
	End         *time.Time // defaults to Start + 2h
	Location    string
	Address     string
}

// ICS renders the invite as an iCalendar document (RFC 5545 subset),
// CRLF-terminated, with text values escaped per the format's rules.
func ICS(inv Invite) string {
	now := time.Now()
	uid := uuid.NewString() + "@" + uidDomain

	end := inv.Start.Add(defaultEventLength)
	if inv.End != nil {
		end = *inv.End
	}

	locationParts := []string{inv.Location}
	if inv.Address != "" {
		locationParts = append(locationParts, inv.Address)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + formatICSTime(now),
		"DTSTART:" + formatICSTime(inv.Start),
		"DTEND:" + formatICSTime(end),
		"SUMMARY:" + escapeICSText(inv.Title),
		"DESCRIPTION:" + escapeICSText(inv.Description),
		"LOCATION:" + escapeICSText(strings.Join(locationParts, ", ")),
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return strings.Join(lines, "\r\n")
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICSText escapes backslash, semicolon, comma and newline.
// Backslash must go first.
func escapeICSText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, ";", `\;`)
	text = strings.ReplaceAll(text, ",", `\,`)
	text = strings.ReplaceAll(text, "\n", `\n`)
	return text
}
