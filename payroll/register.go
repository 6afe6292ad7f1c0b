package payroll

import (
	"os"

	"github.com/gocarina/gocsv"

	"vedomist/models"
)

// Entry is one payout-register row handed to the bookkeeper.
type Entry struct {
	Order    int     `csv:"num"`
	Name     string  `csv:"name"`
	Position string  `csv:"position"`
	Group    string  `csv:"group"`
	Hours    float64 `csv:"hours"`
	Sales    float64 `csv:"sales"`
	Withheld float64 `csv:"withheld"`
	Total    float64 `csv:"total"`
}

type Entries []Entry

// BuildRegister flattens the computed roster into payout entries. Day-off
// records are left out, matching the exported report.
func BuildRegister(employees []*models.Employee) Entries {
	var entries Entries

	for _, e := range employees {
		if e.IsDayOff() || !e.WorkedThisPeriod() {
			continue
		}

		hoursWorked := float64(e.HoursMinutes) / 60
		if e.RateType == models.RateFixed {
			hoursWorked = 1
		}

		entries = append(entries, Entry{
			Order:    e.Order,
			Name:     e.Name,
			Position: e.Position,
			Group:    e.Group,
			Hours:    models.Round2(hoursWorked),
			Sales:    models.Round2(e.NetSales()),
			Withheld: e.Withheld,
			Total:    e.Pay,
		})
	}

	return entries
}

func (entries Entries) ToCSV(file *os.File) error {
	return gocsv.MarshalFile(entries, file)
}
