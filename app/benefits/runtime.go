package benefits

import (
	"strings"
	"time"
)

const (
	DefaultSlideIntervalSeconds   = 10
	MinSlideIntervalSeconds       = 3
	MaxSlideIntervalSeconds       = 24 * 60 * 60
	DefaultRefreshIntervalMinutes = 20
	MinRefreshIntervalMinutes     = 5
	MaxRefreshIntervalMinutes     = 7 * 24 * 60

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// NewRuntimeConfig builds the slideshow timing config from raw
// environment-style values.
func NewRuntimeConfig(rawSlideSeconds, rawRefreshMinutes string) RuntimeConfig {
	return RuntimeConfig{
		SlideIntervalSeconds:   parseSlideSeconds(rawSlideSeconds),
		RefreshIntervalMinutes: parseRefreshMinutes(rawRefreshMinutes),
	}
}

// SlideInterval clamps the configured value, so a hand-built config still
// yields a positive duration.
func (c RuntimeConfig) SlideInterval() time.Duration {
	return time.Duration(clamp(c.SlideIntervalSeconds, MinSlideIntervalSeconds, MaxSlideIntervalSeconds)) * time.Second
}

func (c RuntimeConfig) RefreshInterval() time.Duration {
	return time.Duration(clamp(c.RefreshIntervalMinutes, MinRefreshIntervalMinutes, MaxRefreshIntervalMinutes)) * time.Minute
}

// SlideInterval parses a raw seconds value into the auto-advance interval.
func SlideInterval(rawSeconds string) time.Duration {
	return time.Duration(parseSlideSeconds(rawSeconds)) * time.Second
}

// RefreshInterval parses a raw minutes value into the polling interval.
func RefreshInterval(rawMinutes string) time.Duration {
	return time.Duration(parseRefreshMinutes(rawMinutes)) * time.Minute
}

// NewPayload builds a fresh, non-stale payload stamped with now.
func NewPayload(items []Item, now time.Time, sourceURL string, config RuntimeConfig) Payload {
	return Payload{
		Items:     items,
		UpdatedAt: FormatTimestamp(now),
		SourceURL: sourceURL,
		Config:    config,
		Stale:     false,
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func parseSlideSeconds(raw string) int {
	return parseBoundedInt(raw, DefaultSlideIntervalSeconds, MinSlideIntervalSeconds, MaxSlideIntervalSeconds)
}

func parseRefreshMinutes(raw string) int {
	return parseBoundedInt(raw, DefaultRefreshIntervalMinutes, MinRefreshIntervalMinutes, MaxRefreshIntervalMinutes)
}

// parseBoundedInt reads a leading base-10 integer the way lenient form
// inputs are usually read: "12abc" is 12, "abc" falls back to the default.
func parseBoundedInt(raw string, fallback, minimum, maximum int) int {
	value, ok := parseLeadingInt(raw)
	if !ok {
		return fallback
	}
	return clamp(value, minimum, maximum)
}

func clamp(value, minimum, maximum int) int {
	return min(max(value, minimum), maximum)
}

func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	value := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if value < 1_000_000_000 {
			value = value*10 + int(r-'0')
		}
		digits++
	}

	if digits == 0 {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}
