package payroll

import (
	"fmt"
	"math"

	"vedomist/models"
)

// Scheme is one compensation formula expressed twice from a single
// definition: as an amount for the live pay pass and as a spreadsheet
// formula over a report row's own cells. Keeping both on one type is what
// guarantees the exported sheet recomputes to the same number the engine
// shows.
type Scheme interface {
	// Gross returns the accrued amount before the universal withheld
	// subtraction.
	Gross(e *models.Employee, reportDate string) float64
	// Formula renders the total-column expression for a 1-based sheet row.
	// Column letters follow the fixed report layout: C hours, D rate,
	// E net sales, F withheld, G issued.
	Formula(row int) string
}

type waiterScheme struct{}

func (waiterScheme) Gross(e *models.Employee, _ string) float64 {
	net := e.NetSales()
	pay := net * (e.WaiterPercent / 100)

	if e.WaiterMinGuarantee && e.HasActivity() && net < models.GuaranteeSalesCutoff {
		return models.WaiterGuaranteeAmount
	}

	return pay
}

func (waiterScheme) Formula(row int) string {
	return fmt.Sprintf("IF(E%d<%d,%d,E%d*D%d)-F%d-G%d",
		row, int(models.GuaranteeSalesCutoff), int(models.WaiterGuaranteeAmount), row, row, row, row)
}

// waiterNoGuaranteeScheme covers waiters whose minimum was switched off.
type waiterNoGuaranteeScheme struct{}

func (waiterNoGuaranteeScheme) Gross(e *models.Employee, _ string) float64 {
	return e.NetSales() * (e.WaiterPercent / 100)
}

func (waiterNoGuaranteeScheme) Formula(row int) string {
	return fmt.Sprintf("E%d*D%d-F%d-G%d", row, row, row, row)
}

type hostessScheme struct{}

func (hostessScheme) Gross(e *models.Employee, _ string) float64 {
	hourly := float64(e.HoursMinutes) / 60 * e.HourlyRate
	return hourly + e.NetSales()*(e.HostessPercent/100)
}

func (hostessScheme) Formula(row int) string {
	return fmt.Sprintf("C%d*D%d+E%d*%s-F%d-G%d",
		row, row, row, percentFraction(models.HostessSalesPercent), row, row)
}

type barScheme struct{}

func (barScheme) Gross(e *models.Employee, _ string) float64 {
	hourly := float64(e.HoursMinutes) / 60 * e.HourlyRate
	return hourly + e.NetSales()*(models.BarSalesPercent/100)
}

func (barScheme) Formula(row int) string {
	return fmt.Sprintf("C%d*D%d+E%d*%s-F%d-G%d",
		row, row, row, percentFraction(models.BarSalesPercent), row, row)
}

type fixedScheme struct{}

func (fixedScheme) Gross(e *models.Employee, reportDate string) float64 {
	if e.MonthlyBase > 0 {
		return math.Round(e.MonthlyBase / float64(models.DaysInMonth(reportDate)))
	}

	return e.BasePay
}

func (fixedScheme) Formula(row int) string {
	// The rate cell already holds the apportioned per-day amount; hours is
	// pinned to one unit.
	return fmt.Sprintf("C%d*D%d-F%d-G%d", row, row, row, row)
}

type hourlyScheme struct{}

func (hourlyScheme) Gross(e *models.Employee, _ string) float64 {
	return float64(e.HoursMinutes) / 60 * e.HourlyRate
}

func (hourlyScheme) Formula(row int) string {
	return fmt.Sprintf("C%d*D%d-F%d-G%d", row, row, row, row)
}

func percentFraction(percent float64) string {
	return fmt.Sprintf("%g", percent/100)
}

// SchemeFor picks the compensation scheme for an employee. Bar staff carry
// the hourly rate type but earn a net-sales commission on top, so they get
// their own scheme rather than a divergent export-only formula.
func SchemeFor(e *models.Employee) Scheme {
	switch e.RateType {
	case models.RateWaiter:
		if e.WaiterMinGuarantee {
			return waiterScheme{}
		}
		return waiterNoGuaranteeScheme{}
	case models.RateHostess:
		return hostessScheme{}
	case models.RateFixed:
		return fixedScheme{}
	default:
		if models.IsBarPosition(e.Position) {
			return barScheme{}
		}
		return hourlyScheme{}
	}
}
