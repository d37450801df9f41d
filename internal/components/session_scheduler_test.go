package components

import (
	"context"
	"testing"
	"time"

	"scheduleboard/internal/bus"
	"scheduleboard/internal/domain"
	"scheduleboard/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, store domain.ScheduleStore, sectionID, id string, start time.Time, attendees ...string) {
	t.Helper()
	session := domain.NewSession("ev-1", sectionID, id, "Talk "+id, "", start, start.Add(time.Hour), nil, attendees)
	require.NoError(t, store.UpsertSession(context.Background(), "ev-1", session))
}

func TestSessionScheduler_RendersSectionSortedByStartTime(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScheduleStore()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Inserted out of order: 09:00, 11:00, 10:00.
	seedSession(t, store, "sec-1", "s-a", day.Add(9*time.Hour))
	seedSession(t, store, "sec-1", "s-b", day.Add(11*time.Hour))
	seedSession(t, store, "sec-1", "s-c", day.Add(10*time.Hour), "Ada", "Grace")
	// A different section's session must not render.
	seedSession(t, store, "sec-2", "s-d", day.Add(8*time.Hour))

	scheduler := NewSessionScheduler(store, bus.New(), discardLogger())
	defer scheduler.Close()
	scheduler.SetEventID(ctx, "ev-1")
	scheduler.SetSectionID(ctx, "sec-1")

	cards := scheduler.Cards()
	require.Len(t, cards, 3)
	require.Equal(t, []string{"s-a", "s-c", "s-b"}, []string{cards[0].ID, cards[1].ID, cards[2].ID})
	require.Equal(t, "09:00 - 10:00", cards[0].TimeRange)
	require.Equal(t, 2, cards[1].AttendeeCount)
}

func TestSessionScheduler_TiesBrokenByID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScheduleStore()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seedSession(t, store, "sec-1", "s-b", start)
	seedSession(t, store, "sec-1", "s-a", start)

	scheduler := NewSessionScheduler(store, bus.New(), discardLogger())
	defer scheduler.Close()
	scheduler.SetEventID(ctx, "ev-1")
	scheduler.SetSectionID(ctx, "sec-1")

	cards := scheduler.Cards()
	require.Len(t, cards, 2)
	require.Equal(t, "s-a", cards[0].ID)
	require.Equal(t, "s-b", cards[1].ID)
}

func TestSessionScheduler_ReRendersOnBusSignal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScheduleStore()
	b := bus.New()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	scheduler := NewSessionScheduler(store, b, discardLogger())
	defer scheduler.Close()
	scheduler.SetEventID(ctx, "ev-1")
	scheduler.SetSectionID(ctx, "sec-1")
	require.Empty(t, scheduler.Cards())

	// New data lands in the store, then the loader-side signal arrives.
	seedSession(t, store, "sec-1", "s-1", start)
	b.Publish(bus.DataChanged{Kind: bus.KindSessions, EventID: "ev-1", UpdatedAt: time.Now()})

	require.Eventually(t, func() bool {
		return len(scheduler.Cards()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSessionScheduler_SignalForOtherEventIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScheduleStore()
	b := bus.New()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	scheduler := NewSessionScheduler(store, b, discardLogger())
	defer scheduler.Close()
	scheduler.SetEventID(ctx, "ev-1")
	scheduler.SetSectionID(ctx, "sec-1")

	seedSession(t, store, "sec-1", "s-1", start)
	b.Publish(bus.DataChanged{Kind: bus.KindSessions, EventID: "ev-9", UpdatedAt: time.Now()})

	// The subscription is keyed by event; no re-render happens.
	time.Sleep(50 * time.Millisecond)
	require.Empty(t, scheduler.Cards())
}

func TestSessionScheduler_SwitchingSectionReRenders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScheduleStore()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seedSession(t, store, "sec-1", "s-1", start)
	seedSession(t, store, "sec-2", "s-2", start)

	scheduler := NewSessionScheduler(store, bus.New(), discardLogger())
	defer scheduler.Close()
	scheduler.SetEventID(ctx, "ev-1")
	scheduler.SetSectionID(ctx, "sec-1")
	require.Equal(t, "s-1", scheduler.Cards()[0].ID)

	scheduler.SetSectionID(ctx, "sec-2")
	require.Equal(t, "s-2", scheduler.Cards()[0].ID)
}

func TestSessionScheduler_CloseStopsReacting(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScheduleStore()
	b := bus.New()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	scheduler := NewSessionScheduler(store, b, discardLogger())
	scheduler.SetEventID(ctx, "ev-1")
	scheduler.SetSectionID(ctx, "sec-1")
	scheduler.Close()

	seedSession(t, store, "sec-1", "s-1", start)
	b.Publish(bus.DataChanged{Kind: bus.KindSessions, EventID: "ev-1", UpdatedAt: time.Now()})

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, scheduler.Cards())
}
