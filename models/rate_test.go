package models

import "testing"

func TestInterpretRate(t *testing.T) {
	cases := []struct {
		position string
		rateText string
		want     Rate
	}{
		{"Офіціант", "", Rate{RateType: RateWaiter, WaiterPercent: 5}},
		{"Официантка", "5%", Rate{RateType: RateWaiter, WaiterPercent: 5}},
		// A 5% rate string makes a waiter regardless of position.
		{"Кухар", "5 %", Rate{RateType: RateWaiter, WaiterPercent: 5}},
		{"Хостес", "150", Rate{RateType: RateHostess, HourlyRate: 150, HostessPercent: 2}},
		{"Бармен", "фікс 8000", Rate{RateType: RateFixed, BasePay: 8000}},
		{"Бармен", "фикс 6500", Rate{RateType: RateFixed, BasePay: 6500}},
		{"Кухар", "120 грн/год", Rate{RateType: RateHourly, HourlyRate: 120}},
		{"Повар", "140,5", Rate{RateType: RateHourly, HourlyRate: 140.5}},
		{"", "", Rate{RateType: RateHourly}},
		{"Невідома посада", "щось дивне", Rate{RateType: RateHourly}},
	}

	for _, c := range cases {
		got := InterpretRate(c.position, c.rateText)
		if got != c.want {
			t.Errorf("InterpretRate(%q, %q) = %+v, want %+v", c.position, c.rateText, got, c.want)
		}
	}
}

func TestIsBarPosition(t *testing.T) {
	if !IsBarPosition("Бармен") {
		t.Error("expected Бармен to be a bar position")
	}
	if !IsBarPosition("старший бармен") {
		t.Error("expected старший бармен to be a bar position")
	}
	if IsBarPosition("Кухар") {
		t.Error("Кухар is not a bar position")
	}
}
