package calendar

import (
	"fmt"
	"time"
)

// Holidays returns the Japanese public holidays for the given year,
// keyed by YYYY-MM-DD. Used for day styling only; it never changes
// behavior.
func Holidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays
	holidays[formatDate(year, 1, 1)] = "元日"
	holidays[formatDate(year, 2, 11)] = "建国記念の日"
	holidays[formatDate(year, 2, 23)] = "天皇誕生日"
	holidays[formatDate(year, 4, 29)] = "昭和の日"
	holidays[formatDate(year, 5, 3)] = "憲法記念日"
	holidays[formatDate(year, 5, 4)] = "みどりの日"
	holidays[formatDate(year, 5, 5)] = "こどもの日"
	holidays[formatDate(year, 8, 11)] = "山の日"
	holidays[formatDate(year, 11, 3)] = "文化の日"
	holidays[formatDate(year, 11, 23)] = "勤労感謝の日"

	// Happy Monday holidays (movable)
	holidays[nthMonday(year, 1, 2)] = "成人の日"
	holidays[nthMonday(year, 7, 3)] = "海の日"
	holidays[nthMonday(year, 9, 3)] = "敬老の日"
	holidays[nthMonday(year, 10, 2)] = "スポーツの日"

	return holidays
}

// nthMonday returns the date of the n-th Monday of a month as
// YYYY-MM-DD.
func nthMonday(year, month, n int) string {
	first := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	return formatDate(year, month, day)
}

func formatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
