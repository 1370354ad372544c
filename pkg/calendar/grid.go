// Package calendar implements the month-grid layout, day bucketing of
// appointments and the agenda controller.
package calendar

import (
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// DaysInMonth returns the number of days in the given Gregorian month,
// leap-year aware.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of day 1 of the month, with Sunday = 0.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// MonthGrid produces the day layout of a month: FirstWeekday leading empty
// slots (zero Dates), then one entry per day 1..DaysInMonth. The tail is not
// padded to full weeks, so the grid length varies per month.
func MonthGrid(year int, month time.Month) []models.Date {
	first := FirstWeekday(year, month)
	days := DaysInMonth(year, month)

	grid := make([]models.Date, 0, first+days)
	for i := 0; i < first; i++ {
		grid = append(grid, models.Date{})
	}
	for day := 1; day <= days; day++ {
		grid = append(grid, models.Date{Year: year, Month: month, Day: day})
	}
	return grid
}

// MonthBounds returns the first and last calendar day of a month.
func MonthBounds(year int, month time.Month) (models.Date, models.Date) {
	return models.Date{Year: year, Month: month, Day: 1},
		models.Date{Year: year, Month: month, Day: DaysInMonth(year, month)}
}
