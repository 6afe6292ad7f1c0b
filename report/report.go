package report

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"vedomist/hours"
	"vedomist/models"
	"vedomist/payroll"
	"vedomist/service"
)

const venueName = "Той Самий Баранчик"

// Column holds one slot of the fixed positional layout. The order is part of
// the format: the formula builder addresses cells by these positions.
type Column struct {
	Key   string
	Title string
	Width float64
}

var Layout = []Column{
	{Key: "name", Title: "ПІБ", Width: 28},
	{Key: "position", Title: "Посада", Width: 16},
	{Key: "hours", Title: "Кількість відпрацьованих годин, %, змін", Width: 18},
	{Key: "rate", Title: "Ставка", Width: 10},
	{Key: "sales", Title: "Продажі", Width: 12},
	{Key: "withheld", Title: "Утримано", Width: 12},
	{Key: "issued", Title: "Видано", Width: 12},
	{Key: "total", Title: "Всього нараховано", Width: 18},
	{Key: "sign", Title: "Підпис отримувача", Width: 18},
}

// totalCol and issuedCol are 1-based column numbers inside Layout.
const (
	issuedCol = 7
	totalCol  = 8
)

type subgroup struct {
	Name     string
	patterns []*regexp.Regexp
}

// subgroups are the seven fixed export categories in canonical order.
// Classification is by first matching position pattern; anything else lands
// in the final catch-all.
var subgroups = []subgroup{
	{"Адмін. Персонал", compileAll(`^керуюч(ий|а)$`, `^менеджер$`, `^шеф$`)},
	{"Бар", compileAll(`бармен`)},
	{"Кухня", compileAll(`кухар`, `су[- ]?шеф`, `суш[- ]?шеф`)},
	{"Офіціанти / ранери", compileAll(`офіціант`, `официант`, `ранер`)},
	{"Хостес / Доставка", compileAll(`хостес`, `пакувальниц`, `пакувальник`, `упаковщ`)},
	{"Господарка", compileAll(`господарк`, `господин`)},
	{"Інший персонал", compileAll(`кур[’'`+"`"+`]?єр`, `курьер`, `завгосп`)},
}

const catchAllSubgroup = "Інший персонал"

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}

	return out
}

// ClassifySubgroup maps a position onto one of the seven report categories.
func ClassifySubgroup(position string) string {
	pos := strings.ToLower(strings.TrimSpace(position))
	for _, sg := range subgroups {
		for _, re := range sg.patterns {
			if re.MatchString(pos) {
				return sg.Name
			}
		}
	}

	return catchAllSubgroup
}

// FormulaEntry pairs a total-column cell formula with its precomputed value,
// so the exported file is auditable and still correct before the consuming
// software recalculates. Row is 1-based.
type FormulaEntry struct {
	Row     int
	Formula string
	Value   float64
}

// Merge is an inclusive 1-based cell region to merge in the sheet.
type Merge struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Report is the full export dataset: ordered display rows plus the parallel
// formula and merge descriptors. Styling belongs to the writer, not here.
type Report struct {
	Title      string
	DateLabel  string
	ReportDate string
	City       string
	Rows       models.Rows
	Merges     []Merge
	Formulas   []FormulaEntry
	GrandTotal float64
}

// Filename is the canonical export name, city spaces underscored.
func (r *Report) Filename() string {
	city := r.City
	if city == "" {
		city = "Місто"
	}
	city = strings.Join(strings.Fields(city), "_")

	return fmt.Sprintf("Відомість_%s_%s.xlsx", city, r.DateLabel)
}

// InvalidHours lists employees whose worked-time text fails validation.
// A non-empty result gates the export: no partial file is ever produced.
func InvalidHours(employees []*models.Employee) []string {
	var bad []string

	for _, e := range employees {
		if !hours.ParseInterval(e.HoursText).Valid {
			bad = append(bad, fmt.Sprintf("%s (%s)", e.Name, e.HoursText))
		}
	}

	return bad
}

func blankRow() models.Row {
	return make(models.Row, len(Layout))
}

func fullWidthRow(first interface{}) models.Row {
	row := blankRow()
	for i := range row {
		row[i] = ""
	}
	row[0] = first

	return row
}

// hoursCell carries the exact minutes fraction, not a 2-dp display value:
// the total-column formulas multiply this cell, and a rounded 8.33 would
// recalculate cents away from the cached total on non-round intervals.
func hoursCell(e *models.Employee) float64 {
	if e.RateType == models.RateFixed {
		return 1
	}

	return float64(e.HoursMinutes) / 60
}

func rateCell(e *models.Employee, reportDate string) float64 {
	switch e.RateType {
	case models.RateWaiter:
		// Fraction, so the percent-formatted cell multiplies cleanly.
		return e.WaiterPercent / 100
	case models.RateFixed:
		return payroll.SchemeFor(e).Gross(e, reportDate)
	default:
		return e.HourlyRate
	}
}

func salesCell(e *models.Employee) interface{} {
	showSales := e.RateType == models.RateWaiter ||
		e.RateType == models.RateHostess ||
		models.IsBarPosition(e.Position)
	if !showSales {
		return ""
	}

	net := e.NetSales()
	if net <= 0 {
		return ""
	}

	return net
}

func moneyOrBlank(v float64) interface{} {
	if v == 0 {
		return ""
	}

	return v
}

// Build assembles the grouped, formula-annotated export dataset from the
// computed roster. It refuses to build while any hours interval anywhere in
// the roster is invalid.
func Build(employees []*models.Employee, settings models.Settings) (*Report, error) {
	if bad := InvalidHours(employees); len(bad) != 0 {
		return nil, fmt.Errorf("invalid hours for: %s", strings.Join(bad, ", "))
	}

	reportDate := settings.ReportDate
	if reportDate == "" {
		reportDate = service.Yesterday()
	}

	title := venueName
	if settings.City != "" {
		title = venueName + " " + settings.City
	}

	rep := &Report{
		Title:      title,
		DateLabel:  service.DateSegment(reportDate),
		ReportDate: reportDate,
		City:       settings.City,
	}

	lastCol := len(Layout)

	// Title, date and header rows.
	rep.Rows = append(rep.Rows, fullWidthRow(rep.Title))
	rep.Merges = append(rep.Merges, Merge{1, 1, 1, lastCol})
	rep.Rows = append(rep.Rows, fullWidthRow(rep.DateLabel))
	rep.Merges = append(rep.Merges, Merge{2, 2, 2, lastCol})

	header := blankRow()
	for i, c := range Layout {
		header[i] = c.Title
	}
	rep.Rows = append(rep.Rows, header)

	grouped := make(map[string][]*models.Employee)
	for _, e := range employees {
		if e.IsDayOff() || !e.WorkedThisPeriod() {
			continue
		}
		name := ClassifySubgroup(e.Position)
		grouped[name] = append(grouped[name], e)
	}

	var subtotalRows []int
	grandTotal := 0.0
	row := len(rep.Rows) // 1-based row of the last appended row

	for _, sg := range subgroups {
		members := grouped[sg.Name]
		if len(members) == 0 {
			continue
		}

		rep.Rows = append(rep.Rows, fullWidthRow(sg.Name))
		row++
		rep.Merges = append(rep.Merges, Merge{row, 1, row, lastCol})

		firstDataRow := row + 1
		subtotal := 0.0

		for _, e := range members {
			row++

			scheme := payroll.SchemeFor(e)
			value := models.Round2(scheme.Gross(e, reportDate) - e.Withheld)
			subtotal += value

			r := blankRow()
			r[0] = e.Name
			r[1] = e.Position
			r[2] = hoursCell(e)
			r[3] = rateCell(e, reportDate)
			r[4] = salesCell(e)
			r[5] = moneyOrBlank(e.Withheld)
			r[6] = ""
			r[7] = value
			r[8] = ""
			rep.Rows = append(rep.Rows, r)

			rep.Formulas = append(rep.Formulas, FormulaEntry{
				Row:     row,
				Formula: scheme.Formula(row),
				Value:   value,
			})
		}

		subtotal = models.Round2(subtotal)
		grandTotal += subtotal

		row++
		sub := fullWidthRow("всього " + strings.ToLower(sg.Name))
		sub[totalCol-1] = subtotal
		rep.Rows = append(rep.Rows, sub)
		rep.Merges = append(rep.Merges, Merge{row, 2, row, issuedCol})
		rep.Formulas = append(rep.Formulas, FormulaEntry{
			Row:     row,
			Formula: fmt.Sprintf("SUM(H%d:H%d)", firstDataRow, row-1),
			Value:   subtotal,
		})
		subtotalRows = append(subtotalRows, row)
	}

	grandTotal = models.Round2(grandTotal)
	rep.GrandTotal = grandTotal

	row++
	grand := fullWidthRow("ВСЬОГО")
	grand[totalCol-1] = grandTotal
	rep.Rows = append(rep.Rows, grand)
	rep.Merges = append(rep.Merges, Merge{row, 2, row, issuedCol})

	refs := make([]string, len(subtotalRows))
	for i, r := range subtotalRows {
		refs[i] = fmt.Sprintf("H%d", r)
	}
	grandFormula := "0"
	if len(refs) != 0 {
		grandFormula = strings.Join(refs, "+")
	}
	rep.Formulas = append(rep.Formulas, FormulaEntry{
		Row:     row,
		Formula: grandFormula,
		Value:   grandTotal,
	})

	log.Debugf("report: %d rows, %d formula cells, grand total %.2f",
		len(rep.Rows), len(rep.Formulas), grandTotal)

	return rep, nil
}

// Show renders the report as plain text for logs and the PDF copy.
func (r *Report) Show() string {
	output := strings.Builder{}

	output.WriteString(fmt.Sprintf("%s\n", r.Title))
	output.WriteString(fmt.Sprintf("%s\n", r.DateLabel))
	output.WriteString("-----------------------\n")

	for _, row := range r.Rows[3:] {
		label, _ := row[0].(string)
		total := row[totalCol-1]

		if label != "" && isBlank(row[1]) && isBlank(row[2]) {
			if total == nil || total == "" {
				output.WriteString(fmt.Sprintf("\n%s\n", label))
			} else {
				output.WriteString(fmt.Sprintf("%s: %v\n", label, total))
			}
			continue
		}

		output.WriteString(fmt.Sprintf("%v | %v | %v | %v\n", row[0], row[1], row[2], total))
	}

	return output.String()
}

func isBlank(v interface{}) bool {
	return v == nil || v == ""
}
