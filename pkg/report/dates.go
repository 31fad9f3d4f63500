package report

import "strings"

var englishMonths = map[string]string{
	"01": "January",
	"02": "February",
	"03": "March",
	"04": "April",
	"05": "May",
	"06": "June",
	"07": "July",
	"08": "August",
	"09": "September",
	"10": "October",
	"11": "November",
	"12": "December",
}

// EnglishDate turns "MM/YYYY" into "Month YYYY" ("03/2025" becomes
// "March 2025"). Anything else, including unknown month numbers, is
// returned unchanged.
func EnglishDate(s string) string {
	month, year, ok := splitDate(s)
	if !ok {
		return s
	}
	name, ok := englishMonths[month]
	if !ok {
		return s
	}
	return name + " " + year
}

// splitDate splits "MM/YYYY" at its only slash.
func splitDate(s string) (month, year string, ok bool) {
	month, year, ok = strings.Cut(s, "/")
	if !ok || strings.Contains(year, "/") {
		return "", "", false
	}
	return month, year, true
}
