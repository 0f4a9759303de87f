package xtime

import (
	"cmp"
	"fmt"
	"iter"
	"time"
)

type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(t time.Time) YearMonth {
	return YearMonth{t.Year(), t.Month()}
}

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{ym.Year + 1, time.January}
	}

	return YearMonth{ym.Year, ym.Month + 1}
}

func (ym YearMonth) Compare(other YearMonth) int {
	return cmp.Or(cmp.Compare(ym.Year, other.Year), cmp.Compare(ym.Month, other.Month))
}

// Until yields every month from ym up to and including endInclusive.
func (ym YearMonth) Until(endInclusive YearMonth) iter.Seq[YearMonth] {
	return func(yield func(YearMonth) bool) {
		for curr := ym; curr.Compare(endInclusive) <= 0; curr = curr.Next() {
			if !yield(curr) {
				return
			}
		}
	}
}

// Date does not normalize day; a day outside the month yields an invalid LocalDate.
func (ym YearMonth) Date(day int) LocalDate {
	return LocalDate{ym.Year, ym.Month, day}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
