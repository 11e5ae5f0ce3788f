package utils

import (
	"fmt"
	"time"
)

// LayoutDateFormat adalah format tanggal kalender untuk layout harian
const LayoutDateFormat = "2006-01-02"

// ParseLayoutDate memvalidasi string YYYY-MM-DD dan mengembalikan bentuk kanoniknya
func ParseLayoutDate(s string) (string, error) {
	t, err := time.Parse(LayoutDateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.Format(LayoutDateFormat), nil
}

// ParseClockTime memvalidasi jam lokal "HH:MM" (00:00 - 23:59)
func ParseClockTime(s string) (string, error) {
	if len(s) != 5 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Format("15:04"), nil
}
