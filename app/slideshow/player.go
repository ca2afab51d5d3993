package slideshow

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lysyi3m/benefit-slides/app/benefits"
)

const tickInterval = time.Second

// Player drives a text slideshow from polled payloads. It is not safe for
// concurrent use; Run owns it once started.
type Player struct {
	fetcher Fetcher
	out     io.Writer
	now     func() time.Time

	items           []benefits.Item
	currentIndex    int
	updatedAt       string
	stale           bool
	errMessage      string
	lastInteraction *time.Time
	lastAdvance     time.Time

	slideInterval   time.Duration
	refreshInterval time.Duration
}

func NewPlayer(fetcher Fetcher, out io.Writer) *Player {
	p := &Player{
		fetcher:         fetcher,
		out:             out,
		now:             time.Now,
		slideInterval:   benefits.SlideInterval(""),
		refreshInterval: benefits.RefreshInterval(""),
	}
	p.lastAdvance = p.now()
	return p
}

func (p *Player) Index() int {
	return p.currentIndex
}

func (p *Player) SlideInterval() time.Duration {
	return p.slideInterval
}

func (p *Player) RefreshInterval() time.Duration {
	return p.refreshInterval
}

// Refresh polls once. It reports whether the refresh interval changed so
// the caller can restart its polling loop.
func (p *Player) Refresh(ctx context.Context) bool {
	payload, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.errMessage = err.Error()
		slog.Debug("Benefits refresh failed", "error", err)
		return false
	}

	p.items = payload.Items
	p.currentIndex = max(min(p.currentIndex, len(p.items)-1), 0)
	p.updatedAt = payload.UpdatedAt
	p.stale = payload.Stale
	p.errMessage = ""

	nextSlide := benefits.SlideInterval(strconv.Itoa(payload.Config.SlideIntervalSeconds))
	nextRefresh := benefits.RefreshInterval(strconv.Itoa(payload.Config.RefreshIntervalMinutes))
	changed := nextRefresh != p.refreshInterval

	p.slideInterval = nextSlide
	p.refreshInterval = nextRefresh

	return changed
}

func (p *Player) Next(userInitiated bool) {
	p.step(NextIndex, userInitiated)
}

func (p *Player) Prev(userInitiated bool) {
	p.step(PrevIndex, userInitiated)
}

func (p *Player) step(move func(int, int) int, userInitiated bool) {
	if len(p.items) == 0 {
		return
	}

	now := p.now()
	p.currentIndex = move(p.currentIndex, len(p.items))
	if userInitiated {
		p.lastInteraction = &now
	}
	p.lastAdvance = now
}

// Swipe navigates according to a horizontal drag distance.
func (p *Player) Swipe(dx float64) {
	switch SwipeDirection(dx) {
	case DirectionNext:
		p.Next(true)
	case DirectionPrev:
		p.Prev(true)
	}
}

// Tick advances the slide when the user is idle and the slide interval has
// elapsed. It reports whether it advanced.
func (p *Player) Tick() bool {
	if len(p.items) == 0 {
		return false
	}

	now := p.now()
	if !CanAutoAdvance(p.lastInteraction, now, InteractionPause) {
		return false
	}

	if now.Sub(p.lastAdvance) >= p.slideInterval {
		p.Next(false)
		return true
	}

	return false
}

func (p *Player) Render() string {
	var b strings.Builder

	if len(p.items) == 0 {
		b.WriteString("Member Benefits\n")
		b.WriteString(cmp.Or(p.errMessage, "No benefits available right now."))
		b.WriteString("\n")
		return b.String()
	}

	item := p.items[p.currentIndex]

	fmt.Fprintf(&b, "Benefit %d of %d\n", p.currentIndex+1, len(p.items))
	fmt.Fprintf(&b, "%s\n\n", item.Title)
	fmt.Fprintf(&b, "%s\n", item.Description)
	if item.Link != "" {
		fmt.Fprintf(&b, "Open offer: %s\n", item.Link)
	}

	fmt.Fprintf(&b, "[%s]\n", progressBar(ProgressPercent(p.now().Sub(p.lastAdvance), p.slideInterval)))

	footer := "Last updated: " + formatTime(p.updatedAt)
	if p.stale {
		footer += " (cached)"
	}
	fmt.Fprintf(&b, "%s | %s\n", footer, cmp.Or(p.errMessage, "Live sync active"))

	return b.String()
}

// Run refreshes, ticks and applies commands ("n", "p", "q") until ctx is
// cancelled, the command channel closes, or "q" is received.
func (p *Player) Run(ctx context.Context, commands <-chan string) error {
	p.draw("Member Benefits\nLoading benefits...\n")
	p.Refresh(ctx)
	p.draw(p.Render())

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	refresh := time.NewTicker(p.refreshInterval)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			p.Tick()

		case <-refresh.C:
			if p.Refresh(ctx) {
				refresh.Reset(p.refreshInterval)
				slog.Debug("Refresh interval changed", "interval", p.refreshInterval.String())
			}

		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			switch strings.ToLower(strings.TrimSpace(cmd)) {
			case "n", "next":
				p.Next(true)
			case "p", "prev":
				p.Prev(true)
			case "q", "quit":
				return nil
			}
		}

		p.draw(p.Render())
	}
}

func (p *Player) draw(frame string) {
	// Clear screen and home cursor.
	fmt.Fprint(p.out, "\033[H\033[2J", frame)
}

func progressBar(percent int) string {
	const width = 20
	filled := percent * width / 100
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

func formatTime(iso string) string {
	if iso == "" {
		return "never"
	}

	t, err := benefits.ParseTimestamp(iso)
	if err != nil {
		return iso
	}
	return t.In(time.Local).Format("02.01 15:04")
}
