package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayimpact/ecocoach/internal/factors"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	s := store.Create()
	require.NotEmpty(t, s.ID)

	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	assert.Same(t, s, store.GetOrCreate(s.ID))

	fresh := store.GetOrCreate("no-such-session")
	assert.NotEqual(t, s.ID, fresh.ID)

	store.Delete(s.ID)
	_, ok = store.Get(s.ID)
	assert.False(t, ok)
}

func TestSessionSummary(t *testing.T) {
	store := NewSessionStore()
	s := store.Create()

	s.AddMessage("user", "커피 2잔 마셨어")
	s.AddAction(
		ParsedAction{Category: factors.CategoryPurchase, Item: "coffee", Amount: 2},
		mustRecord(t, factors.CategoryPurchase, "coffee", 2),
	)
	s.AddAction(
		ParsedAction{Category: factors.CategoryMobility, Item: "taxi_ice", Amount: 5},
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 5),
	)

	summary := s.Summary()
	assert.Equal(t, 2, summary.ActionCount)
	assert.InDelta(t, 0.56+1.05, summary.TotalCO2eKg, 1e-9)
	require.Len(t, summary.Actions, 2)
	assert.Equal(t, "coffee", summary.Actions[0].Item)

	require.Len(t, s.History(), 1)

	s.Clear()
	assert.Zero(t, s.Summary().ActionCount)
	assert.Empty(t, s.History())
}
