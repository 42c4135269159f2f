package sincromei

import (
	"sincromei/pkg/domain"
	"strconv"
	"time"
)

const (
	// FirstYear is the first year listed in the yearly status list.
	FirstYear = 2019
	// NotOptingStatus labels every year before the current one.
	NotOptingStatus = "Não Optante"
)

// YearlyStatus returns "<year>:<status>" entries from FirstYear through
// currentYear inclusive. The last entry carries situacao; earlier ones carry
// NotOptingStatus. A currentYear before FirstYear yields an empty list.
func YearlyStatus(situacao string, currentYear int) []string {
	if currentYear < FirstYear {
		return []string{}
	}

	years := make([]string, 0, currentYear-FirstYear+1)
	for year := FirstYear; year <= currentYear; year++ {
		status := NotOptingStatus
		if year == currentYear {
			status = situacao
		}
		years = append(years, strconv.Itoa(year)+":"+status)
	}

	return years
}

// Transform maps an upstream record to the public schema as of now.
func Transform(rec domain.Record, now time.Time) *domain.PublicRecord {
	out := domain.FromRecord(rec)
	out.Anos = YearlyStatus(rec.Text("situacao"), now.Year())

	return out
}
