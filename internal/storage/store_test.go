package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustRecord(t *testing.T, category factors.Category, item string, amount float64) impact.ActionRecord {
	t.Helper()
	record, err := impact.NewActionRecord(category, item, amount, "", "")
	require.NoError(t, err)
	return record
}

func TestInsertAndQueryByDate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	logged, err := store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "taxi_ice", 5), "Seoul", "to work")
	require.NoError(t, err)
	assert.NotEmpty(t, logged.ID)
	assert.Equal(t, "2025-06-10", logged.Date)
	assert.InDelta(t, 1.05, logged.CO2eKg, 1e-9)

	_, err = store.Insert(ctx, day, mustRecord(t, factors.CategoryPurchase, "coffee", 2), "", "")
	require.NoError(t, err)

	actions, err := store.ActionsByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "Seoul", findAction(t, actions, "taxi_ice").Location)
	assert.Equal(t, "to work", findAction(t, actions, "taxi_ice").Notes)

	other, err := store.ActionsByDate(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func findAction(t *testing.T, actions []LoggedAction, item string) LoggedAction {
	t.Helper()
	for _, a := range actions {
		if a.Item == item {
			return a
		}
	}
	t.Fatalf("action %q not found", item)
	return LoggedAction{}
}

func TestActionsInRange(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, base.AddDate(0, 0, i), mustRecord(t, factors.CategoryMobility, "bus", 4), "", "")
		require.NoError(t, err)
	}

	actions, err := store.ActionsInRange(ctx, base, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, actions, 2)

	// Newest day first.
	assert.Equal(t, "2025-06-11", actions[0].Date)
	assert.Equal(t, "2025-06-10", actions[1].Date)
}

func TestDailyTotals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "taxi_ice", 10), "", "")
	require.NoError(t, err)
	_, err = store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "subway", 10), "", "")
	require.NoError(t, err)
	_, err = store.Insert(ctx, day, mustRecord(t, factors.CategoryPurchase, "beef_meal", 1), "", "")
	require.NoError(t, err)

	totals, err := store.DailyTotals(ctx, day)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	mobility := totals[factors.CategoryMobility]
	assert.InDelta(t, 2.1+0.35, mobility.TotalCO2eKg, 1e-9)
	assert.Equal(t, 2, mobility.ActionCount)

	purchase := totals[factors.CategoryPurchase]
	assert.InDelta(t, 6.5, purchase.TotalCO2eKg, 1e-9)
	assert.InDelta(t, 1850, purchase.TotalWaterL, 1e-9)
}

func TestWeeklyTotals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, end, mustRecord(t, factors.CategoryMobility, "bus", 5), "", "")
	require.NoError(t, err)
	_, err = store.Insert(ctx, end.AddDate(0, 0, -2), mustRecord(t, factors.CategoryMobility, "bus", 5), "", "")
	require.NoError(t, err)
	// Outside the 7-day window.
	_, err = store.Insert(ctx, end.AddDate(0, 0, -7), mustRecord(t, factors.CategoryMobility, "bus", 5), "", "")
	require.NoError(t, err)

	weekly, err := store.WeeklyTotals(ctx, end)
	require.NoError(t, err)
	require.Len(t, weekly, 2)

	// Oldest first.
	assert.Equal(t, "2025-06-08", weekly[0].Date)
	assert.Equal(t, "2025-06-10", weekly[1].Date)
	assert.InDelta(t, 0.445, weekly[0].TotalCO2eKg, 1e-9)
}

func TestTopContributors(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "subway", 10), "", "")
	require.NoError(t, err)
	_, err = store.Insert(ctx, day, mustRecord(t, factors.CategoryPurchase, "beef_meal", 1), "", "")
	require.NoError(t, err)
	_, err = store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "taxi_ice", 10), "", "")
	require.NoError(t, err)

	top, err := store.TopContributors(ctx, day, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "beef_meal", top[0].Item)
	assert.Equal(t, "taxi_ice", top[1].Item)
}

func TestStreakDays(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	streak, err := store.StreakDays(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, today.AddDate(0, 0, -i), mustRecord(t, factors.CategoryMobility, "bus", 1), "", "")
		require.NoError(t, err)
	}
	// A log before a gap does not extend the streak.
	_, err = store.Insert(ctx, today.AddDate(0, 0, -5), mustRecord(t, factors.CategoryMobility, "bus", 1), "", "")
	require.NoError(t, err)

	streak, err = store.StreakDays(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreakRequiresToday(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, today.AddDate(0, 0, -1), mustRecord(t, factors.CategoryMobility, "bus", 1), "", "")
	require.NoError(t, err)

	streak, err := store.StreakDays(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	logged, err := store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "bus", 1), "", "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, logged.ID))

	err = store.Delete(ctx, logged.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, day, mustRecord(t, factors.CategoryMobility, "bus", 1), "", "")
		require.NoError(t, err)
	}

	n, err := store.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	actions, err := store.ActionsByDate(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestPreferences(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	got, err := store.Preference(ctx, "region")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.SetPreference(ctx, "region", "kr"))
	require.NoError(t, store.SetPreference(ctx, "region", "us"))

	got, err = store.Preference(ctx, "region")
	require.NoError(t, err)
	assert.Equal(t, "us", got)
}
