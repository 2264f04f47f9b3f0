// internal/infra/telegram/format.go
package telegram

import (
	"fmt"
	"strings"
	"time"

	"lunar_tracker_bot/internal/app"
	"lunar_tracker_bot/internal/domain/alert"
	"lunar_tracker_bot/internal/domain/moon"
	"lunar_tracker_bot/internal/domain/subscriber"

	"gopkg.in/telebot.v3"
)

// Callback uniques for the inline calendar. Payloads are YYYY-MM for
// month navigation and YYYY-MM-DD for day selection.
const (
	uniqueCalendarMonth = "cal_month"
	uniqueCalendarDay   = "cal_day"
	uniqueCalendarNoop  = "cal_noop"
)

var weekDays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// FormatDay renders the detail card for one day.
func FormatDay(v app.DayView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", v.Label, v.Date.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&b, "%s %s\n", v.Details.Glyph, v.Details.Name)
	fmt.Fprintf(&b, "%s\n\n", v.Details.Description)
	fmt.Fprintf(&b, "Illumination: %d%% (%.0f%% computed), %s\n", v.Details.Illumination, v.Illumination, litText(v.Details.Lit))
	fmt.Fprintf(&b, "Cycle day: %.1f of %.2f\n", v.CycleDay, moon.SynodicMonth)
	next := moon.DetailsFor(v.Phase.Next())
	fmt.Fprintf(&b, "Next phase: %s %s\n\n", next.Glyph, next.Name)
	fmt.Fprintf(&b, "Energy & themes: %s", v.Details.Energy)
	return b.String()
}

func litText(side moon.LitSide) string {
	switch side {
	case moon.LitNone:
		return "dark disc"
	case moon.LitFull:
		return "fully lit"
	default:
		return "lit on the " + string(side)
	}
}

// FormatUpcoming renders the upcoming events list.
func FormatUpcoming(events []app.UpcomingEvent) string {
	var b strings.Builder
	b.WriteString("Upcoming Events\n")
	for _, e := range events {
		marker := " "
		if e.Soon {
			marker = "•"
		}
		fmt.Fprintf(&b, "\n%s %s %s, %s (%s)", marker, e.Details.Glyph, e.Details.Name, e.Date.Format("Monday, Jan 2"), e.Label)
	}
	return b.String()
}

// FormatMonthHeader renders the text above the calendar keyboard.
func FormatMonthHeader(v app.MonthView) string {
	return fmt.Sprintf("%s\n%s New  %s Quarter  %s Full",
		v.Month.First().Format("January 2006"),
		moon.DetailsFor(moon.PhaseNewMoon).Glyph,
		moon.DetailsFor(moon.PhaseFirstQuarter).Glyph,
		moon.DetailsFor(moon.PhaseFullMoon).Glyph,
	)
}

func calendarCellText(c app.CalendarCell) string {
	text := fmt.Sprintf("%d%s", c.Day, moon.DetailsFor(c.Phase).Glyph)
	switch {
	case c.IsSelected:
		return "[" + text + "]"
	case c.IsToday:
		return "*" + text
	}
	return text
}

// CalendarMarkup builds the month grid as an inline keyboard: a navigation row,
// a weekday row and one row per week.
func CalendarMarkup(v app.MonthView) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	noop := func(text string) telebot.Btn {
		return markup.Data(text, uniqueCalendarNoop)
	}

	rows := make([]telebot.Row, 0, len(v.Weeks)+2)
	rows = append(rows, markup.Row(
		markup.Data("◀ "+v.Month.Prev().First().Format("Jan"), uniqueCalendarMonth, v.Month.Prev().String()),
		noop(v.Month.First().Format("Jan 2006")),
		markup.Data(v.Month.Next().First().Format("Jan")+" ▶", uniqueCalendarMonth, v.Month.Next().String()),
	))

	header := make([]telebot.Btn, 0, len(weekDays))
	for _, d := range weekDays {
		header = append(header, noop(d))
	}
	rows = append(rows, markup.Row(header...))

	for _, week := range v.Weeks {
		btns := make([]telebot.Btn, 0, 7)
		for _, c := range week {
			if c.Day == 0 {
				btns = append(btns, noop(" "))
				continue
			}
			btns = append(btns, markup.Data(calendarCellText(c), uniqueCalendarDay, calendarDate(c.Date)))
		}
		for len(btns) < 7 {
			btns = append(btns, noop(" "))
		}
		rows = append(rows, markup.Row(btns...))
	}

	markup.Inline(rows...)
	return markup
}

// FormatSubscribers renders the admin subscriber listing.
func FormatSubscribers(title string, list []*subscriber.Subscriber) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (%d) ---\n", title, len(list))
	for _, s := range list {
		status := "inactive"
		if s.IsActive {
			status = "active"
		}
		name := s.FirstName
		if s.Username.Valid {
			name += " @" + s.Username.String
		}
		fmt.Fprintf(&b, "Chat %d: %s, %s, since %s\n", s.ChatID, name, status, s.CreatedAt.Format("2006-01-02"))
	}
	return b.String()
}

// FormatAlerts renders the admin alert history.
func FormatAlerts(days int, list []*alert.Alert) string {
	if len(list) == 0 {
		return fmt.Sprintf("No phase alerts sent in the last %d days.", days)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- Phase alerts, last %d days (%d) ---\n", days, len(list))
	for _, a := range list {
		d := moon.DetailsFor(a.Phase)
		fmt.Fprintf(&b, "%s %s on %s: %d recipients\n", d.Glyph, d.Name, calendarDate(a.EventDate), a.Recipients)
	}
	return b.String()
}

// calendarDate formats a date the way day callbacks carry it.
func calendarDate(t time.Time) string {
	return t.Format("2006-01-02")
}
