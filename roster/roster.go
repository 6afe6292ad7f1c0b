package roster

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"vedomist/models"
)

// Role words the venue uses, Ukrainian and Russian spellings.
var knownPositions = []string{
	"официант",
	"офіціант",
	"официантка",
	"офіціантка",
	"хостес",
	"бармен",
	"кур'єр",
	"курєр",
	"курьер",
	"пакувальниця",
	"пакувальник",
	"господиня",
	"завгосп",
	"завхоз",
	"менеджер",
	"керуючий",
	"су-шеф",
	"су шеф",
	"кухар",
	"повар",
	"ранер",
	"раннер",
}

var (
	tabRe       = regexp.MustCompile(`\t+`)
	fallbackRe  = regexp.MustCompile(`\s{2,}|\s+[-–—]\s+|\s*\|\s*|\s*;\s*|\s*,\s*`)
	percentTail = regexp.MustCompile(`(\d+\s*%)\s*$`)
	fixTail     = regexp.MustCompile(`(?i)((?:фікс|фикс|fix)\s*\d+[.,]?\d*)\s*$`)
	numberTail  = regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*(?:грн|uah|₴)?(?:\s*[\\/]\s*(?:год|час|ч))?\s*$`)
	rateShapeRe = regexp.MustCompile(`(?i)(\d+\s*%$)|((?:фікс|фикс|fix)\s*\d+[.,]?\d*$)|((?:\d+[.,]?\d*)\s*(?:грн|uah|₴)?(?:\s*[\\/]\s*(?:год|час|ч))?$)`)
	positionRe  = buildPositionRe()
)

func buildPositionRe() *regexp.Regexp {
	escaped := make([]string, len(knownPositions))
	for i, p := range knownPositions {
		escaped[i] = regexp.QuoteMeta(p)
	}

	return regexp.MustCompile(`(?i)` + strings.Join(escaped, "|"))
}

// detectTrailingRate finds a percent, "фікс N" or bare-number rate at the
// end of a token and strips it off.
func detectTrailingRate(str string) (rateStr string, stripped string, found bool) {
	if str == "" {
		return "", "", false
	}

	if loc := percentTail.FindStringSubmatchIndex(str); loc != nil {
		return str[loc[2]:loc[3]], strings.TrimSpace(str[:loc[0]]), true
	}

	if loc := fixTail.FindStringSubmatchIndex(str); loc != nil {
		return str[loc[2]:loc[3]], strings.TrimSpace(str[:loc[0]]), true
	}

	if loc := numberTail.FindStringSubmatchIndex(str); loc != nil {
		return strings.TrimSpace(str[loc[0]:loc[1]]), strings.TrimSpace(str[:loc[0]]), true
	}

	return "", "", false
}

func looksLikeRate(token string) bool {
	return rateShapeRe.MatchString(token)
}

func splitFields(raw string) []string {
	parts := tabRe.Split(raw, -1)
	parts = trimNonEmpty(parts)
	if len(parts) >= 2 {
		return parts
	}

	// Pasted spreadsheet rows carry tabs; plain-text pastes fall back to
	// two+ spaces, comma, semicolon, pipe or a spaced dash.
	return trimNonEmpty(fallbackRe.Split(raw, -1))
}

func trimNonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func splitNamePosition(blob string) (name string, position string) {
	if loc := positionRe.FindStringIndex(blob); loc != nil {
		return strings.TrimSpace(blob[:loc[0]]), strings.TrimSpace(blob[loc[0]:])
	}

	if idx := strings.LastIndex(blob, " "); idx > 0 {
		return strings.TrimSpace(blob[:idx]), strings.TrimSpace(blob[idx+1:])
	}

	return strings.TrimSpace(blob), ""
}

// preferEmbeddedRate lets a rate embedded in the position token win when the
// supplied rate carries no number.
func preferEmbeddedRate(position string, rateStr string) (string, string) {
	emb, stripped, found := detectTrailingRate(position)
	if !found {
		return position, rateStr
	}

	if rateStr == "" || models.ExtractNumber(rateStr) == 0 {
		return stripped, emb
	}

	return position, rateStr
}

// Parse turns pasted multi-line roster text into employee records. A line
// that cannot be split confidently and carries no detectable rate becomes a
// group header for all lines after it, never a malformed employee.
func Parse(text string) []*models.Employee {
	var employees []*models.Employee

	order := 1
	currentGroup := ""

	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, " \t\r")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var name, position, rateStr string

		parts := splitFields(raw)
		switch {
		case len(parts) >= 4:
			rateStr = parts[len(parts)-1]
			position = parts[len(parts)-2]
			name = strings.Join(parts[:len(parts)-2], " ")
			position, rateStr = preferEmbeddedRate(position, rateStr)

		case len(parts) == 3:
			name, position, rateStr = parts[0], parts[1], parts[2]
			position, rateStr = preferEmbeddedRate(position, rateStr)

		case len(parts) == 2:
			if looksLikeRate(parts[1]) {
				rateStr = parts[1]
				name, position = splitNamePosition(parts[0])
			} else {
				name, position = parts[0], parts[1]
				if emb, stripped, found := detectTrailingRate(position); found {
					rateStr = emb
					position = stripped
				}
			}

		default:
			remainder := line
			if emb, stripped, found := detectTrailingRate(remainder); found {
				rateStr = emb
				remainder = stripped
			}

			if loc := positionRe.FindStringIndex(remainder); loc != nil {
				before := strings.TrimSpace(remainder[:loc[0]])
				if rateStr == "" && before == "" {
					// Likely something like "Хостес/Доставка".
					log.Debugf("roster: line %q taken as group header", line)
					currentGroup = remainder
					continue
				}
				position = strings.TrimSpace(remainder[loc[0]:])
				name = before
			} else {
				if rateStr == "" {
					log.Debugf("roster: line %q taken as group header", line)
					currentGroup = remainder
					continue
				}
				name, position = splitNamePosition(remainder)
			}
		}

		emp := &models.Employee{
			ID:                 uuid.NewString(),
			Order:              order,
			Group:              currentGroup,
			Name:               name,
			Position:           position,
			RawRateStr:         rateStr,
			WaiterMinGuarantee: true,
		}
		emp.ApplyRate(models.InterpretRate(position, rateStr))

		employees = append(employees, emp)
		order++
	}

	return employees
}

// Serialize renders the roster back into the edit-text format.
func Serialize(employees []*models.Employee) string {
	var b strings.Builder

	prevGroup := "__INIT__"
	for _, e := range employees {
		if e.Group != "" && e.Group != prevGroup {
			b.WriteString(e.Group)
			b.WriteString("\n")
			prevGroup = e.Group
		}
		b.WriteString(e.Name)
		b.WriteString("\t")
		b.WriteString(e.Position)
		b.WriteString("\t")
		b.WriteString(e.RawRateStr)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// Merge carries transactional fields from the previous roster onto a
// re-parsed one, matching records by their original input position.
func Merge(previous []*models.Employee, parsed []*models.Employee) {
	byOrder := make(map[int]*models.Employee, len(previous))
	for _, old := range previous {
		byOrder[old.Order] = old
	}

	for _, e := range parsed {
		old, found := byOrder[e.Order]
		if !found {
			continue
		}

		e.HoursText = old.HoursText
		e.HoursMinutes = old.HoursMinutes
		e.Sales = old.Sales
		e.Gifts = old.Gifts
		e.Withheld = old.Withheld
		e.MonthlyBase = old.MonthlyBase
		e.WaiterMinGuarantee = old.WaiterMinGuarantee
	}
}
