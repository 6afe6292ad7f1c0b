package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedomist/models"
)

func testRoster() []*models.Employee {
	return []*models.Employee{
		{
			Name:     "Ольга Шевчук",
			Position: "Менеджер",
			RateType: models.RateFixed,
			BasePay:  1000,
		},
		{
			Name:               "Іван Петренко",
			Position:           "Офіціант",
			RateType:           models.RateWaiter,
			WaiterPercent:      models.WaiterSalesPercent,
			WaiterMinGuarantee: true,
			HoursText:          "10:00-20:00",
			HoursMinutes:       600,
			Sales:              8000,
		},
		{
			Name:         "Ігор Мельник",
			Position:     "Бармен",
			RateType:     models.RateHourly,
			HourlyRate:   120,
			HoursText:    "16:00-24:00",
			HoursMinutes: 480,
			Sales:        2000,
		},
		{
			Name:           "Олена Коваль",
			Position:       "Хостес",
			RateType:       models.RateHostess,
			HourlyRate:     150,
			HostessPercent: models.HostessSalesPercent,
			HoursText:      "10:00-20:00",
			HoursMinutes:   600,
			Sales:          1000,
		},
	}
}

func TestBuild(t *testing.T) {
	rep, err := Build(testRoster(), models.Settings{City: "Київ", ReportDate: "2025-06-15"})
	require.NoError(t, err)

	assert.Equal(t, "Той Самий Баранчик Київ", rep.Title)
	assert.Equal(t, "15.06", rep.DateLabel)
	require.Len(t, rep.Rows, 16)

	// Title, date and header occupy the first three rows.
	assert.Equal(t, "Той Самий Баранчик Київ", rep.Rows[0][0])
	assert.Equal(t, "15.06", rep.Rows[1][0])
	assert.Equal(t, "ПІБ", rep.Rows[2][0])
	assert.Equal(t, "Всього нараховано", rep.Rows[2][7])

	// Subgroups appear in canonical order, empty ones skipped.
	assert.Equal(t, "Адмін. Персонал", rep.Rows[3][0])
	assert.Equal(t, "Бар", rep.Rows[6][0])
	assert.Equal(t, "Офіціанти / ранери", rep.Rows[9][0])
	assert.Equal(t, "Хостес / Доставка", rep.Rows[12][0])
	assert.Equal(t, "ВСЬОГО", rep.Rows[15][0])

	assert.Equal(t, 4080.0, rep.GrandTotal)
	assert.Equal(t, 4080.0, rep.Rows[15][7])
}

func TestBuildEmployeeRows(t *testing.T) {
	rep, err := Build(testRoster(), models.Settings{City: "Київ", ReportDate: "2025-06-15"})
	require.NoError(t, err)

	// Fixed staff: one unit of hours, per-shift amount in the rate cell,
	// no sales shown.
	manager := rep.Rows[4]
	assert.Equal(t, "Ольга Шевчук", manager[0])
	assert.Equal(t, 1.0, manager[2])
	assert.Equal(t, 1000.0, manager[3])
	assert.Equal(t, "", manager[4])
	assert.Equal(t, 1000.0, manager[7])

	// Bar staff show sales and earn the commission on top of the hourly pay.
	bar := rep.Rows[7]
	assert.Equal(t, 8.0, bar[2])
	assert.Equal(t, 120.0, bar[3])
	assert.Equal(t, 2000.0, bar[4])
	assert.Equal(t, 1060.0, bar[7])

	// Waiter rate is a fraction so the sheet multiplies it directly.
	wtr := rep.Rows[10]
	assert.Equal(t, 10.0, wtr[2])
	assert.Equal(t, 0.05, wtr[3])
	assert.Equal(t, 8000.0, wtr[4])
	assert.Equal(t, 500.0, wtr[7])

	hostess := rep.Rows[13]
	assert.Equal(t, 150.0, hostess[3])
	assert.Equal(t, 1000.0, hostess[4])
	assert.Equal(t, 1520.0, hostess[7])
}

func TestBuildHoursCellExactFraction(t *testing.T) {
	employees := []*models.Employee{{
		Name:         "Василь Ткаченко",
		Position:     "Кухар",
		RateType:     models.RateHourly,
		HourlyRate:   120,
		HoursText:    "10:00-18:20",
		HoursMinutes: 500,
	}}

	rep, err := Build(employees, models.Settings{ReportDate: "2025-06-15"})
	require.NoError(t, err)

	// Row 5 is the single employee row. The hours cell times the rate must
	// reproduce the cached total exactly, which a 8.33 display value cannot.
	cell := rep.Rows[4][2].(float64)
	assert.Equal(t, 500.0/60, cell)
	assert.Equal(t, 1000.0, rep.Rows[4][7])
	assert.InDelta(t, 1000.0, cell*120, 1e-9)
}

func TestBuildFormulas(t *testing.T) {
	rep, err := Build(testRoster(), models.Settings{City: "Київ", ReportDate: "2025-06-15"})
	require.NoError(t, err)

	require.Len(t, rep.Formulas, 9)

	byRow := make(map[int]FormulaEntry, len(rep.Formulas))
	for _, f := range rep.Formulas {
		byRow[f.Row] = f
	}

	assert.Equal(t, "C5*D5-F5-G5", byRow[5].Formula)
	assert.Equal(t, "SUM(H5:H5)", byRow[6].Formula)
	assert.Equal(t, "C8*D8+E8*0.05-F8-G8", byRow[8].Formula)
	assert.Equal(t, "IF(E11<10000,500,E11*D11)-F11-G11", byRow[11].Formula)
	assert.Equal(t, "C14*D14+E14*0.02-F14-G14", byRow[14].Formula)
	assert.Equal(t, "H6+H9+H12+H15", byRow[16].Formula)
	assert.Equal(t, 4080.0, byRow[16].Value)
}

func TestBuildMerges(t *testing.T) {
	rep, err := Build(testRoster(), models.Settings{City: "Київ", ReportDate: "2025-06-15"})
	require.NoError(t, err)

	assert.Contains(t, rep.Merges, Merge{1, 1, 1, 9})
	assert.Contains(t, rep.Merges, Merge{2, 2, 2, 9})
	assert.Contains(t, rep.Merges, Merge{4, 1, 4, 9})
	assert.Contains(t, rep.Merges, Merge{6, 2, 6, 7})
	assert.Contains(t, rep.Merges, Merge{16, 2, 16, 7})
}

func TestBuildGatesOnInvalidHours(t *testing.T) {
	employees := testRoster()
	employees[1].HoursText = "99:99"

	_, err := Build(employees, models.Settings{ReportDate: "2025-06-15"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Іван Петренко")
}

func TestBuildSkipsDayOffAndIdle(t *testing.T) {
	employees := testRoster()
	employees[1].HoursText = "вихідний"
	employees[1].HoursMinutes = 0
	employees[3].HoursText = ""
	employees[3].HoursMinutes = 0
	employees[3].Sales = 0

	rep, err := Build(employees, models.Settings{ReportDate: "2025-06-15"})
	require.NoError(t, err)

	for _, row := range rep.Rows {
		assert.NotEqual(t, "Іван Петренко", row[0])
		assert.NotEqual(t, "Олена Коваль", row[0])
	}
	assert.Equal(t, 2060.0, rep.GrandTotal)
}

func TestClassifySubgroup(t *testing.T) {
	cases := map[string]string{
		"Менеджер":     "Адмін. Персонал",
		"Керуюча":      "Адмін. Персонал",
		"Бармен":       "Бар",
		"Кухар":        "Кухня",
		"Су-шеф":       "Кухня",
		"Офіціант":     "Офіціанти / ранери",
		"Ранер":        "Офіціанти / ранери",
		"Хостес":       "Хостес / Доставка",
		"Пакувальниця": "Хостес / Доставка",
		"Господиня":    "Господарка",
		"Кур'єр":       "Інший персонал",
		"Невідомо":     "Інший персонал",
	}

	for position, want := range cases {
		assert.Equal(t, want, ClassifySubgroup(position), "position %q", position)
	}
}

func TestFilename(t *testing.T) {
	rep := &Report{City: "Біла Церква", DateLabel: "15.06"}
	assert.Equal(t, "Відомість_Біла_Церква_15.06.xlsx", rep.Filename())

	rep = &Report{DateLabel: "01.01"}
	assert.Equal(t, "Відомість_Місто_01.01.xlsx", rep.Filename())
}

func TestShow(t *testing.T) {
	rep, err := Build(testRoster(), models.Settings{City: "Київ", ReportDate: "2025-06-15"})
	require.NoError(t, err)

	out := rep.Show()
	assert.Contains(t, out, "Той Самий Баранчик Київ")
	assert.Contains(t, out, "Іван Петренко")
	assert.Contains(t, out, "ВСЬОГО: 4080")
}
