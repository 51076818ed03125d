package finance

import "time"

// Period selects a dashboard aggregation window.
type Period string

const (
	// PeriodToday covers the current calendar day.
	PeriodToday Period = "today"
	// PeriodWeek covers the rolling seven days ending today.
	PeriodWeek Period = "week"
	// PeriodMonth covers the current calendar month.
	PeriodMonth Period = "month"
	// PeriodYear covers the current calendar year.
	PeriodYear Period = "year"
	// PeriodAll applies no date filtering.
	PeriodAll Period = "all"
)

// ResolvePeriod translates a period keyword into an inclusive DateRange
// anchored at now, day granularity in now's location.
func ResolvePeriod(p Period, now time.Time) (DateRange, error) {
	switch p {
	case PeriodToday:
		return boundedRange(startOfDay(now), endOfDay(now)), nil
	case PeriodWeek:
		return boundedRange(startOfDay(now.AddDate(0, 0, -6)), endOfDay(now)), nil
	case PeriodMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return boundedRange(from, endOfDay(now)), nil
	case PeriodYear:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return boundedRange(from, endOfDay(now)), nil
	case PeriodAll, "":
		return DateRange{}, nil
	}
	return DateRange{}, ErrUnknownPeriod
}

func boundedRange(from, to time.Time) DateRange {
	return DateRange{From: &from, To: &to}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
