package service

import "time"

// Yesterday is the default reporting date: the ledger is filled in the
// morning for the previous trading day.
func Yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
}

// DateSegment renders a YYYY-MM-DD date as the short DD.MM label used in the
// report header and export filenames. Unparseable input falls back to
// yesterday.
func DateSegment(dateStr string) string {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t, _ = time.Parse("2006-01-02", Yesterday())
	}

	return t.Format("02.01")
}
