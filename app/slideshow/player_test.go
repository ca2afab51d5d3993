package slideshow

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/benefit-slides/app/benefits"
)

type fakeFetcher struct {
	payload benefits.Payload
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(context.Context) (benefits.Payload, error) {
	f.calls++
	return f.payload, f.err
}

func testPayload(count int, config benefits.RuntimeConfig) benefits.Payload {
	items := make([]benefits.Item, 0, count)
	for i := 0; i < count; i++ {
		title := string(rune('A'+i)) + " fordel"
		items = append(items, benefits.Item{
			ID:          benefits.SlugifyTitle(title),
			Title:       title,
			Description: "En beskrivelse der er lang nok til at blive vist.",
			Link:        "https://example.com/" + benefits.SlugifyTitle(title),
		})
	}
	return benefits.Payload{
		Items:     items,
		UpdatedAt: "2024-03-09T16:00:00.000Z",
		Config:    config,
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestPlayer(fetcher Fetcher) (*Player, *testClock) {
	clock := &testClock{now: time.UnixMilli(1710000000000)}
	p := NewPlayer(fetcher, &bytes.Buffer{})
	p.now = clock.Now
	p.lastAdvance = clock.Now()
	return p, clock
}

func TestPlayer_RefreshAdoptsConfig(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{payload: testPayload(3, benefits.RuntimeConfig{SlideIntervalSeconds: 5, RefreshIntervalMinutes: 20})}
	p, _ := newTestPlayer(fetcher)

	assert.Equal(t, 10*time.Second, p.SlideInterval())
	assert.Equal(t, 20*time.Minute, p.RefreshInterval())

	changed := p.Refresh(context.Background())
	assert.False(t, changed)
	assert.Equal(t, 5*time.Second, p.SlideInterval())

	fetcher.payload.Config = benefits.RuntimeConfig{SlideIntervalSeconds: 1, RefreshIntervalMinutes: 1}
	changed = p.Refresh(context.Background())
	assert.True(t, changed)
	assert.Equal(t, 3*time.Second, p.SlideInterval())
	assert.Equal(t, 5*time.Minute, p.RefreshInterval())
}

func TestPlayer_RefreshCapsHugeIntervals(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{payload: testPayload(1, benefits.RuntimeConfig{SlideIntervalSeconds: 2_000_000_000, RefreshIntervalMinutes: 200_000_000})}
	p, _ := newTestPlayer(fetcher)

	assert.True(t, p.Refresh(context.Background()))
	assert.Equal(t, 24*time.Hour, p.SlideInterval())
	assert.Equal(t, 7*24*time.Hour, p.RefreshInterval())
}

func TestPlayer_RefreshClampsIndex(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{payload: testPayload(5, benefits.RuntimeConfig{})}
	p, _ := newTestPlayer(fetcher)
	p.Refresh(context.Background())

	p.Prev(true)
	assert.Equal(t, 4, p.Index())

	fetcher.payload = testPayload(2, benefits.RuntimeConfig{})
	p.Refresh(context.Background())
	assert.Equal(t, 1, p.Index())
}

func TestPlayer_RefreshErrorKeepsItems(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{payload: testPayload(2, benefits.RuntimeConfig{})}
	p, _ := newTestPlayer(fetcher)
	p.Refresh(context.Background())

	fetcher.err = errors.New("API error 502")
	p.Refresh(context.Background())

	frame := p.Render()
	assert.Contains(t, frame, "Benefit 1 of 2")
	assert.Contains(t, frame, "API error 502")
}

func TestPlayer_TickAutoAdvances(t *testing.T) {
	t.Parallel()

	p, clock := newTestPlayer(&fakeFetcher{payload: testPayload(3, benefits.RuntimeConfig{SlideIntervalSeconds: 10, RefreshIntervalMinutes: 20})})
	p.Refresh(context.Background())

	clock.Advance(9 * time.Second)
	assert.False(t, p.Tick())
	assert.Equal(t, 0, p.Index())

	clock.Advance(time.Second)
	assert.True(t, p.Tick())
	assert.Equal(t, 1, p.Index())

	clock.Advance(5 * time.Second)
	assert.False(t, p.Tick())
}

func TestPlayer_InteractionPausesAutoAdvance(t *testing.T) {
	t.Parallel()

	p, clock := newTestPlayer(&fakeFetcher{payload: testPayload(3, benefits.RuntimeConfig{SlideIntervalSeconds: 3, RefreshIntervalMinutes: 20})})
	p.Refresh(context.Background())

	p.Next(true)
	assert.Equal(t, 1, p.Index())

	clock.Advance(11 * time.Second)
	assert.False(t, p.Tick())

	clock.Advance(time.Second)
	assert.True(t, p.Tick())
	assert.Equal(t, 2, p.Index())
}

func TestPlayer_Swipe(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(&fakeFetcher{payload: testPayload(3, benefits.RuntimeConfig{})})
	p.Refresh(context.Background())

	p.Swipe(-10)
	assert.Equal(t, 0, p.Index())
	p.Swipe(-40)
	assert.Equal(t, 1, p.Index())
	p.Swipe(80)
	assert.Equal(t, 0, p.Index())
}

func TestPlayer_NavigationWithoutItems(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(&fakeFetcher{err: ErrNoItems})
	p.Refresh(context.Background())

	p.Next(true)
	assert.Equal(t, 0, p.Index())
	assert.False(t, p.Tick())
	assert.Equal(t, "Member Benefits\nNo benefit items returned\n", p.Render())
}

func TestPlayer_Render(t *testing.T) {
	t.Parallel()

	payload := testPayload(2, benefits.RuntimeConfig{})
	payload.Stale = true
	p, _ := newTestPlayer(&fakeFetcher{payload: payload})

	assert.Equal(t, "Member Benefits\nNo benefits available right now.\n", p.Render())

	p.Refresh(context.Background())
	frame := p.Render()

	assert.Contains(t, frame, "Benefit 1 of 2\n")
	assert.Contains(t, frame, "A fordel\n")
	assert.Contains(t, frame, "En beskrivelse der er lang nok til at blive vist.\n")
	assert.Contains(t, frame, "Open offer: https://example.com/a-fordel\n")
	assert.Contains(t, frame, "(cached)")
	assert.Contains(t, frame, "Live sync active")
}

func TestPlayer_Run(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	fetcher := &fakeFetcher{payload: testPayload(3, benefits.RuntimeConfig{})}
	p := NewPlayer(fetcher, &out)

	commands := make(chan string, 3)
	commands <- "n"
	commands <- "n"
	commands <- "q"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx, commands))
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, 1, fetcher.calls)
	assert.Contains(t, out.String(), "Loading benefits...")
	assert.Contains(t, out.String(), "Benefit 3 of 3")
}

func TestPlayer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	p := NewPlayer(&fakeFetcher{payload: testPayload(1, benefits.RuntimeConfig{})}, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Run(ctx, make(chan string)), context.Canceled)
}
