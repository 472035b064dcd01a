package reminders

import (
	"strings"
	"time"
)

// RepeatInterval define cada cuánto se repite un recordatorio.
// @Enum none, daily, weekly, monthly, yearly
type RepeatInterval string

const (
	RepeatNone    RepeatInterval = "none"
	RepeatDaily   RepeatInterval = "daily"
	RepeatWeekly  RepeatInterval = "weekly"
	RepeatMonthly RepeatInterval = "monthly"
	RepeatYearly  RepeatInterval = "yearly"
)

// ParseRepeatInterval acepta "" como none.
func ParseRepeatInterval(s string) (RepeatInterval, bool) {
	switch RepeatInterval(strings.ToLower(strings.TrimSpace(s))) {
	case "", RepeatNone:
		return RepeatNone, true
	case RepeatDaily:
		return RepeatDaily, true
	case RepeatWeekly:
		return RepeatWeekly, true
	case RepeatMonthly:
		return RepeatMonthly, true
	case RepeatYearly:
		return RepeatYearly, true
	}
	return "", false
}

func (i RepeatInterval) Recurring() bool {
	switch i {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// Advance suma una unidad de interval a due con aritmética de calendario.
// Mensual y anual conservan el día del mes salvo que el mes destino sea más corto;
// en ese caso se usa su último día (31/01 -> 29/02 en bisiesto, 29/02 + 1 año -> 28/02).
func Advance(due time.Time, interval RepeatInterval) time.Time {
	switch interval {
	case RepeatDaily:
		return due.AddDate(0, 0, 1)
	case RepeatWeekly:
		return due.AddDate(0, 0, 7)
	case RepeatMonthly:
		return addMonthsClamped(due, 1)
	case RepeatYearly:
		return addMonthsClamped(due, 12)
	default:
		return due
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	// Día 1 nunca desborda, así que Date normaliza solo año/mes.
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsOverdue compara por día calendario: vencido si el día de due es anterior al de now
// y no está completado. Solo para presentación.
func IsOverdue(r Reminder, now time.Time) bool {
	if r.IsCompleted {
		return false
	}
	return dayOf(r.DueDate).Before(dayOf(now))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
