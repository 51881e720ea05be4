package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/storage/memdb"
)

func TestPeriod_Covers(t *testing.T) {
	p := schedule.Period{Day: time.Monday, Start: "08:00", End: "09:20"}

	// 2026-08-31 is a Monday
	monday := func(hhmm string) time.Time {
		tm, err := time.Parse("2006-01-02 15:04", "2026-08-31 "+hhmm)
		require.NoError(t, err)
		return tm
	}

	assert.True(t, p.Covers(monday("08:00")))
	assert.True(t, p.Covers(monday("09:19")))
	assert.False(t, p.Covers(monday("09:20")), "end is exclusive")
	assert.False(t, p.Covers(monday("07:59")))
	assert.False(t, p.Covers(monday("08:30").AddDate(0, 0, 1)), "wrong day")
}

func TestClock_Current(t *testing.T) {
	db := memdb.Open()
	svc := schedule.NewService(memdb.NewScheduleRepository(db))

	now := time.Now()
	_, err := memdb.NewScheduleRepository(db).CreatePeriod(schedule.Period{
		ID:      "per-now",
		Day:     now.Weekday(),
		Start:   "00:00",
		End:     "23:59",
		Subject: "Physics",
	})
	require.NoError(t, err)

	clock := schedule.NewClock(svc, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	clock.Start(ctx)
	defer cancel()

	// Start evaluates synchronously before ticking
	p, ok := clock.Current()
	require.True(t, ok)
	assert.Equal(t, "per-now", p.ID)
}

func TestClock_stopsOnCancel(t *testing.T) {
	svc := schedule.NewService(memdb.NewScheduleRepository(memdb.Open()))
	clock := schedule.NewClock(svc, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	clock.Start(ctx)
	cancel()

	select {
	case <-clock.Stopped():
	case <-time.After(2 * time.Second):
		t.Fatal("clock goroutine did not exit")
	}
}
