package xtime

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	localDateTimeLayout        = "2006-01-02T15:04"
	localDateTimeSecondsLayout = "2006-01-02T15:04:05"
)

// LocalDateTime is a naive wall-clock date and time. Arithmetic on it never applies zone rules.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{NewLocalDate(t), NewLocalTime(t)}
}

func ParseLocalDateTime(v string) (LocalDateTime, error) {
	layout := localDateTimeLayout
	if len(v) == len(localDateTimeSecondsLayout) {
		layout = localDateTimeSecondsLayout
	}

	t, err := time.Parse(layout, v)
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("invalid local datetime %q: %w", v, err)
	}

	return NewLocalDateTime(t), nil
}

func MustParseLocalDateTime(v string) LocalDateTime {
	ldt, err := ParseLocalDateTime(v)
	if err != nil {
		panic(err)
	}

	return ldt
}

// Naive returns the wall-clock value in UTC so that differences ignore zone transitions.
func (ldt LocalDateTime) Naive() time.Time {
	return ldt.Time.Time(ldt.Date, time.UTC)
}

func (ldt LocalDateTime) Compare(other LocalDateTime) int {
	return ldt.Naive().Compare(other.Naive())
}

func (ldt LocalDateTime) Before(other LocalDateTime) bool {
	return ldt.Compare(other) < 0
}

func (ldt LocalDateTime) After(other LocalDateTime) bool {
	return ldt.Compare(other) > 0
}

func (ldt LocalDateTime) Sub(other LocalDateTime) time.Duration {
	return ldt.Naive().Sub(other.Naive())
}

func (ldt LocalDateTime) YearMonth() YearMonth {
	return ldt.Date.YearMonth()
}

func (ldt LocalDateTime) String() string {
	return ldt.Naive().Format(localDateTimeLayout)
}

func (ldt *LocalDateTime) UnmarshalText(text []byte) error {
	var err error
	*ldt, err = ParseLocalDateTime(string(text))

	return err
}

func (ldt LocalDateTime) MarshalText() ([]byte, error) {
	return []byte(ldt.String()), nil
}

func (ldt *LocalDateTime) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	return ldt.UnmarshalText([]byte(v))
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ldt.String())
}
