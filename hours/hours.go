package hours

import (
	"regexp"
	"strconv"
	"strings"

	"vedomist/models"
)

// Interval is the outcome of validating one worked-time token.
type Interval struct {
	Valid   bool
	Absence bool
	Minutes int
	Text    string
}

var (
	intervalRe = regexp.MustCompile(`^(\d{1,2}:\d{2})-(\d{1,2}:\d{2})$`)
	absenceRe  = regexp.MustCompile(`(?i)вихід|вихідн|вибув`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

func validClock(token string, allowMidnight bool) bool {
	parts := strings.SplitN(token, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])

	if allowMidnight && h == 24 {
		return m == 0
	}

	return h >= 0 && h < 24 && m >= 0 && m < 60
}

// ParseInterval validates a free-text worked-time token. Empty input and the
// recognized absence tokens are valid with zero minutes; everything else must
// be a strict HH:MM-HH:MM range. Only the end time may be 24:00.
func ParseInterval(raw string) Interval {
	token := strings.TrimSpace(raw)
	if token == "" {
		return Interval{Valid: true}
	}

	if strings.EqualFold(token, "в") {
		return Interval{Valid: true, Absence: true, Text: "в"}
	}

	if absenceRe.MatchString(token) {
		return Interval{Valid: true, Absence: true, Text: token}
	}

	clean := spaceRe.ReplaceAllString(token, "")
	m := intervalRe.FindStringSubmatch(clean)
	if m == nil {
		return Interval{Text: token}
	}

	start, end := m[1], m[2]
	if !validClock(start, false) || !validClock(end, true) {
		return Interval{Text: token}
	}

	if end == "24:00" {
		end = "00:00"
	}

	return Interval{
		Valid:   true,
		Minutes: models.MinutesBetween(start, end),
		Text:    m[1] + "-" + m[2],
	}
}

// ApplyBulk assigns worked-time lines positionally to the roster. Fixed-rate
// employees are skipped without consuming a line; so are blank lines.
func ApplyBulk(lines []string, employees []*models.Employee) {
	i := 0
	n := len(lines)

	for _, emp := range employees {
		if emp.RateType == models.RateFixed {
			emp.HoursText = ""
			emp.HoursMinutes = 0
			continue
		}

		for i < n && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		if i >= n {
			emp.HoursText = ""
			emp.HoursMinutes = 0
			continue
		}

		token := strings.TrimSpace(lines[i])
		i++

		parsed := ParseInterval(token)
		if parsed.Valid {
			emp.HoursText = parsed.Text
			emp.HoursMinutes = parsed.Minutes
		} else {
			// Keep the bad token visible; export is gated until it is fixed.
			emp.HoursText = spaceRe.ReplaceAllString(token, "")
			emp.HoursMinutes = 0
		}
	}
}

// SplitLines splits bulk-hours text, one token per line.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
