package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

var reClock = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)

// StandardizeTime reduces an injection time stamp to HH:MM:SS. Date parts
// are dropped, missing seconds become ":00" and Excel day fractions are
// converted. Values without a recognizable time are returned trimmed.
func StandardizeTime(v models.Value) string {
	if v.IsEmpty() {
		return ""
	}
	if v.Kind == models.KindNumber {
		if s, ok := serialClock(v.Num); ok {
			return s
		}
		return v.Text()
	}
	text := v.Text()
	matches := reClock.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text
	}
	m := matches[len(matches)-1]
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || mins > 59 || sec > 59 {
		return text
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, mins, sec)
}

func serialClock(f float64) (string, bool) {
	if f < 0 {
		return "", false
	}
	frac := f - float64(int64(f))
	if frac == 0 && f != 0 {
		return "", false
	}
	secs := int(frac*86400 + 0.5)
	if secs >= 86400 {
		secs = 86399
	}
	return formatClock(secs), true
}

// ClockSeconds parses HH:MM:SS into seconds since midnight.
func ClockSeconds(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, false
		}
		n[i] = v
	}
	if n[0] > 23 || n[1] > 59 || n[2] > 59 {
		return 0, false
	}
	return n[0]*3600 + n[1]*60 + n[2], true
}

// Duration returns last minus first as HH:MM:SS, or "n.a." when either
// bound does not parse. Runs crossing midnight wrap to the next day.
func Duration(first, last string) string {
	a, ok1 := ClockSeconds(first)
	b, ok2 := ClockSeconds(last)
	if !ok1 || !ok2 {
		return "n.a."
	}
	d := b - a
	if d < 0 {
		d += 24 * 3600
	}
	return formatClock(d)
}

func formatClock(secs int) string {
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// timeLess orders standardized clock strings. Unparseable values sort
// after every parseable one; ties fall back to the names.
func timeLess(t1, n1, t2, n2 string) bool {
	s1, ok1 := ClockSeconds(t1)
	s2, ok2 := ClockSeconds(t2)
	switch {
	case ok1 && ok2 && s1 != s2:
		return s1 < s2
	case ok1 != ok2:
		return ok1
	}
	return n1 < n2
}
