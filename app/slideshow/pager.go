package slideshow

import "time"

const (
	// InteractionPause suspends auto-advance after the user navigates.
	InteractionPause = 12 * time.Second
	// SwipeThreshold is the minimum horizontal travel, in pixels, of a swipe.
	SwipeThreshold = 35
)

type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func NextIndex(current, count int) int {
	if count <= 0 {
		return 0
	}
	return (current + 1) % count
}

func PrevIndex(current, count int) int {
	if count <= 0 {
		return 0
	}
	return (current - 1 + count) % count
}

// CanAutoAdvance reports whether enough time has passed since the last user
// interaction. A nil lastInteraction means the user has not interacted.
func CanAutoAdvance(lastInteraction *time.Time, now time.Time, pause time.Duration) bool {
	if lastInteraction == nil {
		return true
	}
	return now.Sub(*lastInteraction) >= pause
}

// SwipeDirection maps a horizontal drag to a navigation step. Dragging left
// moves forward.
func SwipeDirection(dx float64) Direction {
	if dx > -SwipeThreshold && dx < SwipeThreshold {
		return DirectionNone
	}
	if dx < 0 {
		return DirectionNext
	}
	return DirectionPrev
}

// ProgressPercent is the share of the slide interval that has elapsed, capped at 100.
func ProgressPercent(elapsed, interval time.Duration) int {
	if interval <= 0 {
		return 100
	}
	percent := int((elapsed*100 + interval/2) / interval)
	return min(max(percent, 0), 100)
}
