package finance

import (
	"fmt"
	"strconv"
	"strings"
)

// FullYear is the month value that selects the twelve-month layout.
const FullYear = 0

type monthLabels struct {
	fullYear string
	names    [12]string
	initials [12]string
}

var locales = map[string]monthLabels{
	"pt": {
		fullYear: "Ano Completo",
		names: [12]string{"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
			"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"},
		initials: [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"},
	},
	"en": {
		fullYear: "Full Year",
		names: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		initials: [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"},
	},
}

func labelsFor(locale string) monthLabels {
	if l, ok := locales[strings.ToLower(locale)]; ok {
		return l
	}
	return locales["pt"]
}

// SupportedLocale reports whether month labels exist for locale.
func SupportedLocale(locale string) bool {
	_, ok := locales[strings.ToLower(locale)]
	return ok
}

// MonthChoices returns the selector entries: the full year first, then
// "N - Name" for each month.
func MonthChoices(locale string) []string {
	l := labelsFor(locale)
	out := make([]string, 0, 13)
	out = append(out, l.fullYear)
	for i, n := range l.names {
		out = append(out, fmt.Sprintf("%d - %s", i+1, n))
	}
	return out
}

// MonthName returns the localized name of month 1..12.
func MonthName(locale string, month int) string {
	if month < 1 || month > 12 {
		return labelsFor(locale).fullYear
	}
	return labelsFor(locale).names[month-1]
}

// MonthInitials returns the one-letter month labels of the full-year axis.
func MonthInitials(locale string) []string {
	l := labelsFor(locale)
	return l.initials[:]
}

// ParseMonthChoice reads a selector entry. "3 - Março" and "3" give 3; the
// full-year label, "full", "all" and "" give FullYear.
func ParseMonthChoice(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "full", "all", "0":
		return FullYear, nil
	}
	for _, l := range locales {
		if strings.EqualFold(s, l.fullYear) {
			return FullYear, nil
		}
	}
	head := s
	if i := strings.Index(s, " - "); i >= 0 {
		head = s[:i]
	}
	m, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return m, nil
}
