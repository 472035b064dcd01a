package diary

import (
	"sort"
	"time"
)

// MaxPreviewPhotos es el número de fotos que muestra el badge de un día.
const MaxPreviewPhotos = 3

// DayKey identifica un día calendario ("2006-01-02").
type DayKey string

// KeyOf trunca t al día usando sus propios campos de fecha, sin convertir de zona horaria.
func KeyOf(t time.Time) DayKey {
	return DayKey(t.Format(time.DateOnly))
}

// ParseDayKey valida un "YYYY-MM-DD".
func ParseDayKey(s string) (DayKey, bool) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", false
	}
	return KeyOf(t), true
}

// GroupByDay parte entries por día. Cada entrada cae en exactamente un bucket y dentro
// de un bucket se conserva el orden de entrada. Los días sin entradas no aparecen.
func GroupByDay(entries []Entry) map[DayKey][]Entry {
	out := make(map[DayKey][]Entry)
	for _, e := range entries {
		k := KeyOf(e.Date)
		out[k] = append(out[k], e)
	}
	return out
}

// Summary es el badge de un día del calendario.
type Summary struct {
	Day       DayKey
	Count     int
	PhotoURLs []string // hasta MaxPreviewPhotos, concatenadas entre entradas
}

// DaySummary devuelve ok=false si el día no tiene entradas.
func DaySummary(entries []Entry, day DayKey) (Summary, bool) {
	return summarize(day, DayDetail(entries, day))
}

func summarize(day DayKey, bucket []Entry) (Summary, bool) {
	if len(bucket) == 0 {
		return Summary{}, false
	}

	photos := make([]string, 0, MaxPreviewPhotos)
collect:
	for _, e := range bucket {
		for _, u := range e.PhotoURLs {
			if len(photos) == MaxPreviewPhotos {
				break collect
			}
			photos = append(photos, u)
		}
	}

	return Summary{Day: day, Count: len(bucket), PhotoURLs: photos}, true
}

// DayDetail devuelve todas las entradas del día en el orden original.
func DayDetail(entries []Entry, day DayKey) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if KeyOf(e.Date) == day {
			out = append(out, e)
		}
	}
	return out
}

// MonthSummaries devuelve los badges de los días de year/month con entradas, ascendente.
func MonthSummaries(entries []Entry, year int, month time.Month) []Summary {
	groups := GroupByDay(entries)

	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-")
	out := make([]Summary, 0)
	for k, bucket := range groups {
		if len(k) != len(time.DateOnly) || string(k[:len(prefix)]) != prefix {
			continue
		}
		if s, ok := summarize(k, bucket); ok {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
