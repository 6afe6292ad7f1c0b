package session

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"vedomist/hours"
	"vedomist/models"
	"vedomist/payroll"
	"vedomist/report"
	"vedomist/roster"
	"vedomist/service"
)

// Session owns the in-memory roster and the report settings. All mutation
// goes through it, and every mutation ends with a full pay recomputation so
// no stale Pay value ever survives an edit. Callers are responsible for not
// running two edits concurrently.
type Session struct {
	Employees []*models.Employee
	Settings  models.Settings
}

func New(settings models.Settings) *Session {
	if settings.ReportDate == "" {
		settings.ReportDate = service.Yesterday()
	}

	return &Session{Settings: settings}
}

// Recompute runs the pay engine over the roster. Idempotent.
func (s *Session) Recompute() {
	payroll.ComputePays(s.Employees, s.Settings.ReportDate)
}

// ImportRoster replaces the roster from pasted bulk text.
func (s *Session) ImportRoster(text string) (int, error) {
	parsed := roster.Parse(text)
	if len(parsed) == 0 {
		return 0, fmt.Errorf("no employees found in roster text")
	}

	s.Employees = parsed
	s.Recompute()

	log.Infof("imported %d employees", len(parsed))

	return len(parsed), nil
}

// Seed replaces the roster with previously persisted records. The stored
// rate columns are authoritative, so nothing is re-derived from the raw text.
func (s *Session) Seed(employees []*models.Employee) {
	s.Employees = employees
	s.Recompute()

	log.Infof("restored %d employees", len(employees))
}

// EditText renders the roster for re-editing.
func (s *Session) EditText() string {
	return roster.Serialize(s.Employees)
}

// ApplyEdit re-parses edited roster text and carries the current hours and
// shift money over by original order.
func (s *Session) ApplyEdit(text string) error {
	parsed := roster.Parse(text)
	if len(parsed) == 0 {
		return fmt.Errorf("no employees found in edited text")
	}

	roster.Merge(s.Employees, parsed)
	s.Employees = parsed
	s.Recompute()

	return nil
}

// ApplyHours distributes bulk worked-time text over the roster.
func (s *Session) ApplyHours(text string) {
	hours.ApplyBulk(hours.SplitLines(text), s.Employees)
	s.Recompute()
}

func (s *Session) find(id string) *models.Employee {
	for _, e := range s.Employees {
		if e.ID == id {
			return e
		}
	}

	return nil
}

// SetHours applies a single worked-time cell edit. Invalid input leaves the
// prior minutes in place and reports false; the raw text is kept on the
// record so the operator can see what to fix.
func (s *Session) SetHours(id string, raw string) bool {
	e := s.find(id)
	if e == nil {
		return false
	}

	parsed := hours.ParseInterval(raw)
	e.HoursText = parsed.Text
	if !parsed.Valid {
		return false
	}

	e.HoursMinutes = parsed.Minutes
	s.Recompute()

	return true
}

// Money field setters take raw operator text; anything that is not a number
// counts as zero.

func (s *Session) SetSales(id string, raw string) {
	if e := s.find(id); e != nil {
		e.Sales = models.ExtractNumber(raw)
		s.Recompute()
	}
}

func (s *Session) SetGifts(id string, raw string) {
	if e := s.find(id); e != nil {
		e.Gifts = models.ExtractNumber(raw)
		s.Recompute()
	}
}

func (s *Session) SetWithheld(id string, raw string) {
	if e := s.find(id); e != nil {
		e.Withheld = models.ExtractNumber(raw)
		s.Recompute()
	}
}

// SetMonthlyBase switches an employee to a fixed monthly salary apportioned
// per day of the report month.
func (s *Session) SetMonthlyBase(id string, amount float64) {
	if e := s.find(id); e != nil {
		e.RateType = models.RateFixed
		e.MonthlyBase = amount
		e.HourlyRate = 0
		s.Recompute()
	}
}

// SetWaiterGuarantee toggles the minimum-pay rule for one waiter.
func (s *Session) SetWaiterGuarantee(id string, enabled bool) {
	if e := s.find(id); e != nil {
		e.WaiterMinGuarantee = enabled
		s.Recompute()
	}
}

// ClearShift resets the per-day inputs for a new trading day. The roster
// itself stays.
func (s *Session) ClearShift() {
	for _, e := range s.Employees {
		e.HoursText = ""
		e.HoursMinutes = 0
		e.Sales = 0
		e.Gifts = 0
		e.Withheld = 0
		e.Pay = 0
		e.Min500Applied = false
	}

	s.Recompute()
}

// InvalidHours lists records currently failing interval validation.
func (s *Session) InvalidHours() []string {
	return report.InvalidHours(s.Employees)
}

// BuildReport assembles the export dataset after a fresh pay pass. Fails
// whole if any hours interval in the roster is invalid.
func (s *Session) BuildReport() (*report.Report, error) {
	s.Recompute()

	return report.Build(s.Employees, s.Settings)
}
