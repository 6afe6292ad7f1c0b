package models

// Settings carries the report-level inputs kept between sessions.
type Settings struct {
	ID         uint `gorm:"primaryKey"`
	City       string
	ReportDate string // YYYY-MM-DD
}
