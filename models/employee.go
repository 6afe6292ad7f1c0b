package models

import (
	"fmt"
	"strings"
)

// Employee is one roster record. Transactional fields (hours, sales, gifts,
// withheld) are mutated between pay passes; Pay is always derived and must be
// recomputed after any edit.
type Employee struct {
	ID         string `gorm:"primaryKey"`
	Order      int    `gorm:"column:sort_order"`
	Group      string
	Name       string
	Position   string
	RawRateStr string

	RateType       RateType
	WaiterPercent  float64
	HostessPercent float64
	HourlyRate     float64
	BasePay        float64
	MonthlyBase    float64

	HoursText    string
	HoursMinutes int
	Sales        float64
	Gifts        float64
	Withheld     float64 `gorm:"default:0"`
	Pay          float64

	WaiterMinGuarantee bool `gorm:"default:true"`
	Min500Applied      bool
}

// NetSales is gross sales minus gifts for the shift. Not clamped here;
// display layers floor it at zero.
func (e *Employee) NetSales() float64 {
	return e.Sales - e.Gifts
}

// HasActivity reports whether the employee did anything this period.
// The waiter guarantee never fires on a dormant row.
func (e *Employee) HasActivity() bool {
	return e.HoursMinutes > 0 || e.Sales > 0 || e.Gifts > 0
}

// WorkedThisPeriod reports whether the record takes part in the current
// report: fixed-salary staff always do, everyone else needs worked minutes.
func (e *Employee) WorkedThisPeriod() bool {
	return e.RateType == RateFixed || e.HoursMinutes > 0
}

// IsDayOff reports whether the hours cell carries an absence token for the
// reporting period. The record stays in the roster; it just sits out the
// report.
func (e *Employee) IsDayOff() bool {
	token := strings.ToLower(strings.TrimSpace(e.HoursText))
	if token == "" {
		return false
	}

	if token == "в" {
		return true
	}

	return strings.HasPrefix(token, "вихід") || strings.HasPrefix(token, "вибув")
}

// RateDisplay renders the compensation scheme for the preview table.
func (e *Employee) RateDisplay() string {
	switch e.RateType {
	case RateWaiter:
		return fmt.Sprintf("%.0f%%", e.WaiterPercent)
	case RateHostess:
		return fmt.Sprintf("%v + %.0f%%", trimFloat(e.HourlyRate), e.HostessPercent)
	case RateFixed:
		if e.MonthlyBase > 0 {
			return fmt.Sprintf("фікс %v/міс", trimFloat(e.MonthlyBase))
		}
		return fmt.Sprintf("фікс %v", trimFloat(e.BasePay))
	default:
		return trimFloat(e.HourlyRate)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// ApplyRate merges a freshly interpreted compensation descriptor into the
// record, zeroing the fields the new scheme does not use.
func (e *Employee) ApplyRate(r Rate) {
	e.RateType = r.RateType
	e.WaiterPercent = r.WaiterPercent
	e.HostessPercent = r.HostessPercent
	e.HourlyRate = r.HourlyRate
	e.BasePay = r.BasePay
}
