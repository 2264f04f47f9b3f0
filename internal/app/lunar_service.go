// internal/app/lunar_service.go
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lunar_tracker_bot/internal/domain/moon"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	// soonThresholdDays marks upcoming events close enough to highlight.
	soonThresholdDays = 3
)

// DayView is everything shown for a single calendar day.
type DayView struct {
	Date         time.Time
	Phase        moon.Phase
	Details      moon.Details
	CycleDay     float64
	Illumination float64 // computed, as opposed to Details.Illumination
	IsToday      bool
	Label        string // "TODAY" or "SELECTED DATE"
}

// MonthRef identifies a calendar month.
type MonthRef struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) MonthRef {
	return MonthRef{Year: t.Year(), Month: t.Month()}
}

// First returns the first day of the month at midnight UTC.
func (m MonthRef) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m MonthRef) Prev() MonthRef {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

func (m MonthRef) Next() MonthRef {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

func (m MonthRef) String() string {
	return m.First().Format(monthLayout)
}

// CalendarCell is one slot of a month grid. Padding cells have Day == 0.
type CalendarCell struct {
	Day        int
	Date       time.Time
	Phase      moon.Phase
	IsToday    bool
	IsSelected bool
}

// MonthView is a Sunday-first grid of weeks.
type MonthView struct {
	Month MonthRef
	Weeks [][]CalendarCell
}

// UpcomingEvent is a quarter-phase event relative to today.
type UpcomingEvent struct {
	moon.Event
	Details   moon.Details
	DaysUntil int
	Label     string // "Today", "Tomorrow" or "N days"
	Soon      bool
}

// LunarService answers phase questions in the configured timezone.
type LunarService struct {
	calc     moon.Calculator
	location *time.Location
	now      func() time.Time
}

func NewLunarService(calc moon.Calculator, location *time.Location) *LunarService {
	if location == nil {
		location = time.UTC
	}
	return &LunarService{
		calc:     calc,
		location: location,
		now:      time.Now,
	}
}

// today returns the current calendar day in the service location.
func (s *LunarService) today() time.Time {
	return moon.CalendarDay(s.now().In(s.location))
}

// ParseDate validates user input of the form YYYY-MM-DD.
func (s *LunarService) ParseDate(input string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	return t, nil
}

// ParseMonth validates user input of the form YYYY-MM.
func (s *LunarService) ParseMonth(input string) (MonthRef, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(input))
	if err != nil {
		return MonthRef{}, fmt.Errorf("%w: %q", ErrInvalidMonth, input)
	}
	return MonthOf(t), nil
}

// CurrentMonth returns the month containing today.
func (s *LunarService) CurrentMonth() MonthRef {
	return MonthOf(s.today())
}

// Today describes the current day, with illumination at the current instant.
func (s *LunarService) Today() DayView {
	view := s.Day(s.today())
	view.Illumination = s.calc.Illumination(s.now())
	return view
}

// Day describes the calendar day of date.
func (s *LunarService) Day(date time.Time) DayView {
	day := moon.CalendarDay(date)
	phase := s.calc.PhaseForDate(day)
	isToday := day.Equal(s.today())

	label := "SELECTED DATE"
	if isToday {
		label = "TODAY"
	}

	return DayView{
		Date:         day,
		Phase:        phase,
		Details:      moon.DetailsFor(phase),
		CycleDay:     s.calc.CycleDay(day),
		Illumination: s.calc.Illumination(day),
		IsToday:      isToday,
		Label:        label,
	}
}

// Month builds the phase calendar for m. selected may be nil.
func (s *LunarService) Month(m MonthRef, selected *time.Time) MonthView {
	today := s.today()
	first := m.First()
	next := m.Next().First()

	var selectedDay time.Time
	if selected != nil {
		selectedDay = moon.CalendarDay(*selected)
	}

	week := make([]CalendarCell, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, CalendarCell{})
	}

	view := MonthView{Month: m}
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		week = append(week, CalendarCell{
			Day:        d.Day(),
			Date:       d,
			Phase:      s.calc.PhaseForDate(d),
			IsToday:    d.Equal(today),
			IsSelected: selected != nil && d.Equal(selectedDay),
		})
		if len(week) == 7 {
			view.Weeks = append(view.Weeks, week)
			week = make([]CalendarCell, 0, 7)
		}
	}
	if len(week) > 0 {
		view.Weeks = append(view.Weeks, week)
	}
	return view
}

// Upcoming returns the next four quarter-phase events from today.
func (s *LunarService) Upcoming() []UpcomingEvent {
	events := s.calc.NextPhaseEvents(s.today())
	out := make([]UpcomingEvent, 0, len(events))
	for _, e := range events {
		out = append(out, UpcomingEvent{
			Event:     e,
			Details:   moon.DetailsFor(e.Phase),
			DaysUntil: e.DaysAway,
			Label:     RelativeDayLabel(e.DaysAway),
			Soon:      e.DaysAway <= soonThresholdDays,
		})
	}
	return out
}

// RelativeDayLabel renders a day distance the way the events list shows it.
func RelativeDayLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
