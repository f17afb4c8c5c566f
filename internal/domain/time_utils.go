package domain

import (
	"time"
	_ "time/tzdata"
)

const (
	DatetimeLayout     = "2006-01-02T15:04:05Z"
	OnlyDateTimeLayout = "2006-01-02 15:04:05"
	OnlyDate           = "2006-01-02"
)

// Location used for calendar-day boundaries of appointments
var Location = loadLocation("Asia/Bangkok")

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

// BeginningOfDay returns 00:00:00 of the given date
func BeginningOfDay(date time.Time) time.Time {
	y, m, d := date.In(Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location)
}

// EndOfDay returns the last instant of the given date
func EndOfDay(date time.Time) time.Time {
	return BeginningOfDay(date).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseAppointmentTime accepts RFC3339 or the plain datetime layout in Location
func ParseAppointmentTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(OnlyDateTimeLayout, value, Location)
}
