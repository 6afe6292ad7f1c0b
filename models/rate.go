package models

import (
	"regexp"
)

type RateType string

const (
	RateWaiter  RateType = "waiter"
	RateHostess RateType = "hostess"
	RateFixed   RateType = "fixed"
	RateHourly  RateType = "hourly"
)

// Venue business rules. A policy change touches these and nothing else.
const (
	WaiterSalesPercent    = 5.0
	HostessSalesPercent   = 2.0
	BarSalesPercent       = 5.0
	WaiterGuaranteeAmount = 500.0
	GuaranteeSalesCutoff  = 10000.0
)

// Rate is the compensation descriptor produced by classifying a
// position + rate string pair.
type Rate struct {
	RateType       RateType
	WaiterPercent  float64
	HostessPercent float64
	HourlyRate     float64
	BasePay        float64
}

var (
	waiterPosRe   = regexp.MustCompile(`(?i)(официант|офіціант)`)
	waiterRateRe  = regexp.MustCompile(`5\s*%`)
	hostessPosRe  = regexp.MustCompile(`(?i)хостес`)
	fixedRateRe   = regexp.MustCompile(`(?i)(фікс|фикс)`)
	barPositionRe = regexp.MustCompile(`(?i)бармен`)
)

// InterpretRate classifies free text into one of the four compensation
// schemes. First match wins; unrecognized input degrades to hourly with a
// zero rate rather than failing.
func InterpretRate(position string, rateText string) Rate {
	if waiterPosRe.MatchString(position) || waiterRateRe.MatchString(rateText) {
		return Rate{RateType: RateWaiter, WaiterPercent: WaiterSalesPercent}
	}

	if hostessPosRe.MatchString(position) {
		return Rate{
			RateType:       RateHostess,
			HourlyRate:     ExtractNumber(rateText),
			HostessPercent: HostessSalesPercent,
		}
	}

	if fixedRateRe.MatchString(rateText) {
		return Rate{RateType: RateFixed, BasePay: ExtractNumber(rateText)}
	}

	return Rate{RateType: RateHourly, HourlyRate: ExtractNumber(rateText)}
}

// IsBarPosition reports whether a position belongs behind the bar. Bar staff
// keep the hourly rate type but earn a sales commission on top.
func IsBarPosition(position string) bool {
	return barPositionRe.MatchString(position)
}
