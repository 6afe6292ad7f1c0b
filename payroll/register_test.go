package payroll

import (
	"testing"

	"vedomist/models"
)

func TestBuildRegister(t *testing.T) {
	employees := []*models.Employee{
		{Order: 1, Name: "Ольга Шевчук", Position: "Менеджер", RateType: models.RateFixed, BasePay: 1000},
		{Order: 2, Name: "Іван Петренко", Position: "Офіціант", RateType: models.RateWaiter,
			WaiterPercent: models.WaiterSalesPercent, WaiterMinGuarantee: true,
			HoursText: "10:00-20:00", HoursMinutes: 600, Sales: 8000, Gifts: 500},
		{Order: 3, Name: "Олена Коваль", Position: "Хостес", RateType: models.RateHostess,
			HoursText: "вихідний"},
		{Order: 4, Name: "Василь Ткаченко", Position: "Кухар", RateType: models.RateHourly,
			HourlyRate: 130},
	}
	ComputePays(employees, "2025-06-15")

	entries := BuildRegister(employees)

	// Day-off and idle records stay out of the register.
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	if entries[0].Name != "Ольга Шевчук" || entries[0].Hours != 1 || entries[0].Total != 1000 {
		t.Errorf("fixed entry = %+v", entries[0])
	}

	if entries[1].Hours != 10 || entries[1].Sales != 7500 || entries[1].Total != 500 {
		t.Errorf("waiter entry = %+v", entries[1])
	}
}
