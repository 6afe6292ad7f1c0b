package payroll

import (
	"vedomist/models"
)

func guaranteeFires(e *models.Employee) bool {
	if e.RateType != models.RateWaiter || !e.WaiterMinGuarantee {
		return false
	}

	return e.HasActivity() && e.NetSales() < models.GuaranteeSalesCutoff
}

// ComputePay derives one employee's pay from their scheme, worked minutes
// and shift money. Pure over its inputs apart from writing Pay and
// Min500Applied back onto the record.
func ComputePay(e *models.Employee, reportDate string) {
	pay := SchemeFor(e).Gross(e, reportDate)

	e.Min500Applied = guaranteeFires(e)

	pay -= e.Withheld
	e.Pay = models.Round2(pay)
}

// ComputePays recalculates the whole roster. Safe to call any number of
// times; a second pass over unchanged records changes nothing.
func ComputePays(employees []*models.Employee, reportDate string) {
	for _, e := range employees {
		ComputePay(e, reportDate)
	}
}
