package util

import (
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // Europe/Rome must resolve on hosts without a zoneinfo database
	"unicode/utf8"
)

const DefaultTimezone = "Europe/Rome"

var (
	locMu    sync.Mutex
	locCache = map[string]*time.Location{}
)

// LoadLocation resolves an IANA zone name, falling back to UTC for unknown names.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	locMu.Lock()
	defer locMu.Unlock()
	if loc, ok := locCache[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	locCache[name] = loc
	return loc
}

// FormatLocal formats t in the named zone.
func FormatLocal(t time.Time, zone, layout string) string {
	return t.In(LoadLocation(zone)).Format(layout)
}

// FormatPoints prints a half-point score without trailing zeros: 1, 1.5, 0.
func FormatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PadRight pads s with spaces to width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
