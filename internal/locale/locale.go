// Package locale maps Spanish month and weekday names to the English names
// stored in the release datasets.
package locale

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	es string
	en string
}

var months = []entry{
	{"enero", "January"},
	{"febrero", "February"},
	{"marzo", "March"},
	{"abril", "April"},
	{"mayo", "May"},
	{"junio", "June"},
	{"julio", "July"},
	{"agosto", "August"},
	{"septiembre", "September"},
	{"octubre", "October"},
	{"noviembre", "November"},
	{"diciembre", "December"},
}

var weekdays = []entry{
	{"lunes", "Monday"},
	{"martes", "Tuesday"},
	{"miercoles", "Wednesday"},
	{"jueves", "Thursday"},
	{"viernes", "Friday"},
	{"sabado", "Saturday"},
	{"domingo", "Sunday"},
}

var (
	monthIndex   = index(months)
	weekdayIndex = index(weekdays)
)

func index(entries []entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.es] = e.en
	}
	return m
}

// Month resolves a Spanish month name ("Enero", "enero") to its English name.
func Month(es string) (string, bool) {
	en, ok := monthIndex[Normalize(es)]
	return en, ok
}

// Weekday resolves a Spanish weekday name ("Miercoles", "miercoles") to its
// English name.
func Weekday(es string) (string, bool) {
	en, ok := weekdayIndex[Normalize(es)]
	return en, ok
}

// MonthKeys returns the Spanish month keys in calendar order.
func MonthKeys() []string { return keys(months) }

// WeekdayKeys returns the Spanish weekday keys starting on Monday.
func WeekdayKeys() []string { return keys(weekdays) }

func keys(entries []entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.es)
	}
	return out
}

// Normalize lowercases s. Nothing else is folded: " enero" and "sábado" stay
// distinct from the keys and are rejected.
func Normalize(s string) string {
	return cases.Lower(language.Spanish).String(s)
}
