package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout формат отображения времени слота (12-часовой формат с AM/PM)
const TimeLayout = "3:04 PM"

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")
)

// TimeString represents a time-of-day label in 12-hour clock format,
// e.g. "9:00 AM", "10:30 AM", "2:00 PM". Legacy records may hold free-form
// values; those fail Validate and are skipped by callers that compare times.
type TimeString string

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeLayout))
}

// NewTimeStringFromString creates a TimeString from its string form,
// validating the 12-hour clock format.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the time string is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка имеет корректный формат "H:MM AM|PM"
func (t TimeString) Validate() error {
	_, err := t.MinutesOfDay()
	return err
}

// MinutesOfDay parses the label into minutes since midnight.
//
// 12-hour clock rules: "12 AM" maps to hour 0, "12 PM" stays hour 12,
// any other hour with a PM suffix adds 12.
func (t TimeString) MinutesOfDay() (int, error) {
	parts := strings.Fields(string(t))
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	period := strings.ToUpper(parts[1])
	if period != "AM" && period != "PM" {
		return 0, fmt.Errorf("%w: unknown period %q", ErrInvalidTimeString, parts[1])
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	hours, err := strconv.Atoi(hm[0])
	if err != nil || hours < 1 || hours > 12 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidTimeString, string(t))
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: bad minutes in %q", ErrInvalidTimeString, string(t))
	}

	if period == "PM" && hours != 12 {
		hours += 12
	}
	if period == "AM" && hours == 12 {
		hours = 0
	}

	return hours*60 + minutes, nil
}

// AddMinutes возвращает новый TimeString, сдвинутый на указанное число минут
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.MinutesOfDay()
	if err != nil {
		return "", err
	}

	total = (total + m) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}

	return fromMinutes(total), nil
}

// IsBefore returns true if t is strictly earlier than other.
// Unparseable values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.MinutesOfDay()
	if err != nil {
		return false
	}
	b, err := other.MinutesOfDay()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter returns true if t is strictly later than other.
// Unparseable values compare as not-after.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.MinutesOfDay()
	if err != nil {
		return false
	}
	b, err := other.MinutesOfDay()
	if err != nil {
		return false
	}
	return a > b
}

// At привязывает время к конкретной дате и возвращает момент времени
func (t TimeString) At(date time.Time) (time.Time, error) {
	minutes, err := t.MinutesOfDay()
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(minutes) * time.Minute), nil
}

// fromMinutes собирает TimeString из количества минут с начала суток
func fromMinutes(total int) TimeString {
	hours := total / 60
	minutes := total % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}

	display := hours % 12
	if display == 0 {
		display = 12
	}

	return TimeString(fmt.Sprintf("%d:%02d %s", display, minutes, period))
}
