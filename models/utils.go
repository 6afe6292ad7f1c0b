package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numberRe = regexp.MustCompile(`(\d+\.?\d*)`)

// ExtractNumber pulls the first decimal out of free operator text.
// Comma decimal separators are tolerated; no number means zero.
func ExtractNumber(text string) float64 {
	normalized := strings.ReplaceAll(text, ",", ".")
	m := numberRe.FindStringSubmatch(normalized)
	if m == nil {
		return 0
	}

	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return val
}

func clockToMinutes(token string) int {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return 0
	}

	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])

	return h*60 + m
}

// MinutesBetween computes end minus start for "H:MM"/"HH:MM" tokens.
// A negative span is treated as crossing midnight.
func MinutesBetween(start string, end string) int {
	s := clockToMinutes(start)
	e := clockToMinutes(end)

	if e < s {
		e += 1440
	}

	return e - s
}

// DaysInMonth returns the calendar length of the month the YYYY-MM-DD date
// falls in. Unparseable input substitutes the current date.
func DaysInMonth(dateStr string) int {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t = time.Now()
	}

	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	return firstOfNext.AddDate(0, 0, -1).Day()
}

// Round2 rounds to the cent, half away from zero. The epsilon counters
// binary float representation of values like 2.675.
func Round2(n float64) float64 {
	if n < 0 {
		return -Round2(-n)
	}

	return math.Round((n+1e-9)*100) / 100
}
