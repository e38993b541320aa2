// Package calendar turns an event's date and free-text time range into an iCal document
// and a Google Calendar link.
package calendar

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ContentType is the MIME type of generated calendar files.
const ContentType = "text/calendar; charset=utf-8"

// FileExtension is appended to every saved calendar file.
const FileExtension = ".ics"

const (
	defaultStart    = "9:00 AM"
	defaultEnd      = "5:00 PM"
	basicUTCLayout  = "20060102T150405Z"
	googleRenderURL = "https://calendar.google.com/calendar/render"
	prodID          = "-//CGC//Events//EN"
)

// DefaultUIDDomain is the host part of generated UIDs when Generator.UIDDomain is empty.
const DefaultUIDDomain = "cgc.co.ke"

var (
	clockRegex      = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// separatorRegex matches path separators and dot runs, which must not reach a file name.
	separatorRegex = regexp.MustCompile(`[/\\]+|\.{2,}`)
)

// Event is the subset of an event needed for calendar export.
type Event struct {
	Title       string
	Description string
	Location    string
	// Date carries the calendar day and the time zone the range is read in.
	Date time.Time
	// Time is a range such as "9:00 AM - 4:00 PM".
	Time string
}

// ParseTimeRange derives start and end instants on date's calendar day from a range such as
// "9:00 AM - 4:00 PM". A missing start defaults to 9:00 AM; a missing end reuses the start, or
// 5:00 PM when both are missing. A segment that does not look like "H:MM AM|PM" leaves its
// instant at midnight. It never fails.
func ParseTimeRange(date time.Time, timeStr string) (start, end time.Time) {
	parts := strings.Split(timeStr, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	first := segment(parts, 0)
	second := segment(parts, 1)

	startStr := first
	if startStr == "" {
		startStr = defaultStart
	}
	endStr := second
	if endStr == "" {
		endStr = first
	}
	if endStr == "" {
		endStr = defaultEnd
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return setClock(midnight, startStr), setClock(midnight, endStr)
}

func segment(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func setClock(day time.Time, s string) time.Time {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return day
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location())
}

// FormatUTC renders t in iCal UTC basic format, e.g. 20260315T090000Z.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(basicUTCLayout)
}

// Generator renders calendar documents. The zero value is ready to use.
type Generator struct {
	// UIDDomain is the host part of generated UIDs.
	UIDDomain string
	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

// GenerateICS renders a single-event VCALENDAR with a fresh UID per call.
func (g Generator) GenerateICS(ev Event) string {
	start, end := ParseTimeRange(ev.Date, ev.Time)
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"BEGIN:VEVENT",
		"DTSTART:" + FormatUTC(start),
		"DTEND:" + FormatUTC(end),
		"SUMMARY:" + ev.Title,
		"DESCRIPTION:" + EscapeText(ev.Description),
		"LOCATION:" + ev.Location,
		"UID:" + g.uid(),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n")
}

func (g Generator) uid() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	domain := g.UIDDomain
	if domain == "" {
		domain = DefaultUIDDomain
	}
	return fmt.Sprintf("%d-%s@%s", now().UnixMilli(), randomBase36(9), domain)
}

func randomBase36(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// GenerateICS renders ev with the default Generator.
func GenerateICS(ev Event) string {
	return Generator{}.GenerateICS(ev)
}

// EscapeText escapes embedded newlines as the two characters `\n`.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// UnescapeText reverses EscapeText.
func UnescapeText(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// GoogleCalendarURL builds a Google Calendar "add event" link carrying the same
// start, end, title, description and location as GenerateICS.
func GoogleCalendarURL(ev Event) string {
	start, end := ParseTimeRange(ev.Date, ev.Time)
	params := []struct{ key, value string }{
		{"action", "TEMPLATE"},
		{"text", ev.Title},
		{"dates", FormatUTC(start) + "/" + FormatUTC(end)},
		{"details", ev.Description},
		{"location", ev.Location},
	}
	q := make([]string, 0, len(params))
	for _, p := range params {
		q = append(q, p.key+"="+url.QueryEscape(p.value))
	}
	return googleRenderURL + "?" + strings.Join(q, "&")
}

// Slug turns a title into a filename stem: whitespace runs become "-" and letters are lowered.
// Path separators and dot runs are replaced as well, and leading or trailing "-" and "." are trimmed.
func Slug(title string) string {
	s := separatorRegex.ReplaceAllString(title, " ")
	s = strings.ToLower(whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), "-"))
	return strings.Trim(s, "-.")
}

// Stem returns Slug(title), or fallback when the title leaves nothing usable.
func Stem(title, fallback string) string {
	if s := Slug(title); s != "" {
		return s
	}
	return fallback
}

// Filename returns stem with the .ics extension.
func Filename(stem string) string {
	return stem + FileExtension
}

// Save writes content to dir/<stem>.ics and returns the written path.
// A stem that is not a single path element is rejected.
func Save(dir, stem, content string) (string, error) {
	if stem == "" || stem == "." || stem == ".." || filepath.Base(stem) != stem {
		return "", fmt.Errorf("bad calendar file name %q", stem)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create calendar dir: %w", err)
	}
	path := filepath.Join(dir, Filename(stem))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write calendar file: %w", err)
	}
	return path, nil
}
