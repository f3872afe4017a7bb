package handlers

import "time"

// America/Sao_Paulo for "today" and all display formatting
var tzSaoPaulo *time.Location

func init() {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// fallback if tzdata is missing
		tzSaoPaulo = time.FixedZone("BRT", -3*3600)
		return
	}
	tzSaoPaulo = loc
}

// todayISO is the reference date for check-in dedup and event
// classification, e.g. "2006-01-02".
func todayISO() string {
	return time.Now().In(tzSaoPaulo).Format("2006-01-02")
}

// fmtISODate turns "2006-01-02" into the Brazilian "02/01/2006".
func fmtISODate(s string) string {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}
