package ui

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RelativeFormat renders dates relative to now ("yesterday at 3:04 PM").
const RelativeFormat = "relative"

const dateOnlyLayout = "2006-01-02"

var (
	dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	zonePattern     = regexp.MustCompile(`(?:Z|[+-]\d{2}:\d{2})$`)
)

// IsDateOnly reports whether value is a yyyy-MM-dd calendar date.
func IsDateOnly(value string) bool {
	if !dateOnlyPattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(dateOnlyLayout, value)
	return err == nil
}

// IsDateTime reports whether value is an ISO 8601 timestamp with an
// explicit zone.
func IsDateTime(value string) bool {
	if !strings.Contains(value, "T") || !zonePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, value)
	return err == nil
}

// FormatDate formats value with pattern if value looks like a date or a
// timestamp. now anchors relative output and supplies the display zone.
func FormatDate(value, pattern string, now time.Time) (string, bool) {
	loc := now.Location()

	if IsDateOnly(value) {
		t, err := time.ParseInLocation(dateOnlyLayout, value, loc)
		if err != nil {
			return "", false
		}
		if pattern == RelativeFormat {
			out, _, _ := strings.Cut(relative(t, now), " at ")
			return out, true
		}
		return formatPattern(t, pattern), true
	}

	if IsDateTime(value) {
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return "", false
		}
		t = t.In(loc)
		if pattern == RelativeFormat {
			return relative(t, now), true
		}
		return formatPattern(t, pattern), true
	}

	return "", false
}

func relative(t, now time.Time) string {
	days := calendarDays(t, now)
	clock := t.Format("3:04 PM")
	switch {
	case days < -6 || days >= 7:
		return t.Format("01/02/2006")
	case days < -1:
		return "last " + t.Format("Monday") + " at " + clock
	case days < 0:
		return "yesterday at " + clock
	case days < 1:
		return "today at " + clock
	case days < 2:
		return "tomorrow at " + clock
	default:
		return t.Format("Monday") + " at " + clock
	}
}

func calendarDays(t, base time.Time) int {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := base.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// formatPattern renders t using date-fns style tokens such as yyyy-MM-dd
// or "EEEE, d MMMM". Text inside single quotes is copied verbatim and ''
// yields a literal quote. Unknown letters are copied as is.
func formatPattern(t time.Time, pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			j := i + 1
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						b.WriteRune('\'')
						j += 2
						continue
					}
					break
				}
				b.WriteRune(runes[j])
				j++
			}
			i = j + 1
			continue
		}

		if !isLetter(r) {
			b.WriteRune(r)
			i++
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		b.WriteString(formatToken(t, r, n))
		i += n
	}
	return b.String()
}

func formatToken(t time.Time, r rune, n int) string {
	switch r {
	case 'y':
		if n == 2 {
			return t.Format("06")
		}
		return pad(t.Year(), n)
	case 'Y':
		year, _ := localWeek(t)
		return weekYear(year, n)
	case 'R':
		year, _ := t.ISOWeek()
		return weekYear(year, n)
	case 'w':
		_, week := localWeek(t)
		return pad(week, n)
	case 'I':
		_, week := t.ISOWeek()
		return pad(week, n)
	case 'M', 'L':
		switch n {
		case 1:
			return strconv.Itoa(int(t.Month()))
		case 2:
			return t.Format("01")
		case 3:
			return t.Format("Jan")
		default:
			return t.Format("January")
		}
	case 'd':
		return pad(t.Day(), n)
	case 'D':
		return pad(t.YearDay(), n)
	case 'E', 'e', 'i':
		if n <= 3 {
			return t.Format("Mon")
		}
		return t.Format("Monday")
	case 'H':
		return pad(t.Hour(), n)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, n)
	case 'm':
		return pad(t.Minute(), n)
	case 's':
		return pad(t.Second(), n)
	case 'S':
		frac := t.Format("." + strings.Repeat("0", min(n, 9)))
		return frac[1:]
	case 'a':
		return t.Format("PM")
	case 'X':
		if t.Location() == time.UTC {
			return "Z"
		}
		return zone(t, n)
	case 'x':
		return zone(t, n)
	}
	return strings.Repeat(string(r), n)
}

// localWeek numbers weeks starting on Sunday, with week 1 holding January 1.
func localWeek(t time.Time) (year, week int) {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	year = day.AddDate(0, 0, 6-int(day.Weekday())).Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	first := jan1.AddDate(0, 0, -int(jan1.Weekday()))
	week = int(day.Sub(first).Hours()/24)/7 + 1
	return year, week
}

func weekYear(year, n int) string {
	if n == 2 {
		return pad(year%100, 2)
	}
	return pad(year, n)
}

func zone(t time.Time, n int) string {
	switch n {
	case 1:
		return t.Format("-07")
	case 2:
		return t.Format("-0700")
	default:
		return t.Format("-07:00")
	}
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
