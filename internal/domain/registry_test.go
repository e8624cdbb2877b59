package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = int64(1_700_000_000_000)

func TestClampTotal(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		expected int
	}{
		{"zero falls back to default", 0, DefaultTotalSlots},
		{"negative clamps to minimum", -5, MinSlots},
		{"minus one clamps to minimum", -1, MinSlots},
		{"minimum passes through", 1, 1},
		{"maximum passes through", 100, 100},
		{"above maximum clamps down", 150, 100},
		{"regular value passes through", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampTotal(tt.total))
		})
	}
}

func TestNewDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry(testNow)

	assert.Equal(t, DefaultTotalSlots, reg.Total)
	assert.Len(t, reg.Slots, DefaultTotalSlots)
	assert.Equal(t, testNow, reg.UpdatedAt)
	for _, slot := range reg.Slots {
		assert.Equal(t, StatusEmpty, slot.Status)
		assert.Equal(t, TypeNormal, slot.Type)
		assert.Equal(t, testNow, slot.LastChanged)
		assert.Nil(t, slot.SessionID)
	}
}

func TestGetCounts(t *testing.T) {
	reg := &Registry{
		Total: 6,
		Slots: []Slot{
			{Status: StatusOccupied, Type: TypeNormal},
			{Status: StatusEmpty, Type: TypeVIP},
			{Status: StatusOccupied, Type: TypeVIP},
			{Status: StatusEmpty, Type: TypeNormal},
			{Status: StatusEmpty, Type: TypeHandicapped},
			{Status: StatusEmpty, Type: TypeNormal},
		},
	}

	counts := reg.GetCounts()

	assert.Equal(t, 2, counts.Occupied)
	assert.Equal(t, 4, counts.Empty)
	assert.Equal(t, 2, counts.VIPTotal)
	assert.Equal(t, 1, counts.VIPFree)
	assert.Equal(t, 33, counts.Occupancy)
	assert.Equal(t, 67, counts.FreePercent)
}

func TestGetCounts_EmptyRegistry(t *testing.T) {
	reg := &Registry{Total: 0, Slots: []Slot{}}
	counts := reg.GetCounts()

	assert.Equal(t, 0, counts.Occupied)
	assert.Equal(t, 0, counts.Occupancy)
	assert.Equal(t, 0, counts.FreePercent)
}

func TestNormalizeRegistry_MissingBlob(t *testing.T) {
	reg, repaired := NormalizeRegistry(nil, testNow)

	assert.True(t, repaired)
	assert.Equal(t, DefaultTotalSlots, reg.Total)
	assert.Len(t, reg.Slots, DefaultTotalSlots)
}

func TestNormalizeRegistry_MalformedJSON(t *testing.T) {
	reg, repaired := NormalizeRegistry([]byte(`{"total": [not json`), testNow)

	assert.True(t, repaired)
	assert.Equal(t, DefaultTotalSlots, reg.Total)
}

func TestNormalizeRegistry_ValidBlobUntouched(t *testing.T) {
	sessionID := "session-abc"
	original := &Registry{
		Total: 2,
		Slots: []Slot{
			{Status: StatusOccupied, Type: TypeVIP, LastChanged: testNow - 5000, LastFreeDuration: 1000, SessionID: &sessionID},
			{Status: StatusEmpty, Type: TypeNormal, LastChanged: testNow - 9000, LastOccupiedDuration: 2000},
		},
		UpdatedAt: testNow - 5000,
	}
	blob, err := json.Marshal(original)
	require.NoError(t, err)

	reg, repaired := NormalizeRegistry(blob, testNow)

	assert.False(t, repaired)
	assert.Equal(t, 2, reg.Total)
	require.Len(t, reg.Slots, 2)
	assert.Equal(t, StatusOccupied, reg.Slots[0].Status)
	assert.Equal(t, TypeVIP, reg.Slots[0].Type)
	assert.Equal(t, testNow-5000, reg.Slots[0].LastChanged)
	require.NotNil(t, reg.Slots[0].SessionID)
	assert.Equal(t, sessionID, *reg.Slots[0].SessionID)
	assert.Equal(t, int64(2000), reg.Slots[1].LastOccupiedDuration)
}

func TestNormalizeRegistry_LengthMismatch(t *testing.T) {
	t.Run("fewer slots than total extends with empty", func(t *testing.T) {
		blob := []byte(`{"total": 4, "slots": [{"status": "occupied", "type": "normal", "lastChanged": 1}], "updatedAt": 1}`)

		reg, repaired := NormalizeRegistry(blob, testNow)

		assert.True(t, repaired)
		assert.Equal(t, 4, reg.Total)
		require.Len(t, reg.Slots, 4)
		assert.Equal(t, StatusOccupied, reg.Slots[0].Status)
		assert.Equal(t, StatusEmpty, reg.Slots[3].Status)
		assert.Equal(t, testNow, reg.Slots[3].LastChanged)
	})

	t.Run("more slots than total truncates", func(t *testing.T) {
		blob := []byte(`{"total": 1, "slots": [{"status": "empty", "type": "normal", "lastChanged": 1}, {"status": "occupied", "type": "vip", "lastChanged": 2}], "updatedAt": 1}`)

		reg, repaired := NormalizeRegistry(blob, testNow)

		assert.True(t, repaired)
		assert.Equal(t, 1, reg.Total)
		require.Len(t, reg.Slots, 1)
	})
}

func TestNormalizeRegistry_NonPositiveTotal(t *testing.T) {
	blob := []byte(`{"total": 0, "slots": [], "updatedAt": 1}`)

	reg, repaired := NormalizeRegistry(blob, testNow)

	assert.True(t, repaired)
	assert.Equal(t, DefaultTotalSlots, reg.Total)
	assert.Len(t, reg.Slots, DefaultTotalSlots)
}

func TestNormalizeSlotValue(t *testing.T) {
	t.Run("bare status string becomes a fresh slot", func(t *testing.T) {
		slot, repaired := NormalizeSlotValue(json.RawMessage(`"occupied"`), testNow)

		assert.True(t, repaired)
		assert.Equal(t, StatusOccupied, slot.Status)
		assert.Equal(t, TypeNormal, slot.Type)
		assert.Equal(t, testNow, slot.LastChanged)
		assert.Zero(t, slot.LastFreeDuration)
	})

	t.Run("unknown status becomes empty", func(t *testing.T) {
		slot, repaired := NormalizeSlotValue(json.RawMessage(`{"status": "parked", "type": "normal", "lastChanged": 100}`), testNow)

		assert.True(t, repaired)
		assert.Equal(t, StatusEmpty, slot.Status)
	})

	t.Run("unknown type becomes normal", func(t *testing.T) {
		slot, repaired := NormalizeSlotValue(json.RawMessage(`{"status": "empty", "type": "premium", "lastChanged": 100}`), testNow)

		assert.True(t, repaired)
		assert.Equal(t, TypeNormal, slot.Type)
	})

	t.Run("non-numeric timestamp replaced with now", func(t *testing.T) {
		slot, repaired := NormalizeSlotValue(json.RawMessage(`{"status": "empty", "type": "normal", "lastChanged": "yesterday"}`), testNow)

		assert.True(t, repaired)
		assert.Equal(t, testNow, slot.LastChanged)
	})

	t.Run("non-object entry becomes a fresh empty slot", func(t *testing.T) {
		slot, repaired := NormalizeSlotValue(json.RawMessage(`42`), testNow)

		assert.True(t, repaired)
		assert.Equal(t, StatusEmpty, slot.Status)
	})

	t.Run("session id kept only when string", func(t *testing.T) {
		slot, _ := NormalizeSlotValue(json.RawMessage(`{"status": "occupied", "type": "normal", "lastChanged": 100, "sessionId": 123}`), testNow)
		assert.Nil(t, slot.SessionID)

		slot, _ = NormalizeSlotValue(json.RawMessage(`{"status": "occupied", "type": "normal", "lastChanged": 100, "sessionId": "session-1"}`), testNow)
		require.NotNil(t, slot.SessionID)
		assert.Equal(t, "session-1", *slot.SessionID)
	})

	t.Run("session id survives regardless of status", func(t *testing.T) {
		slot, _ := NormalizeSlotValue(json.RawMessage(`{"status": "empty", "type": "normal", "lastChanged": 100, "sessionId": "session-stale"}`), testNow)

		require.NotNil(t, slot.SessionID)
		assert.Equal(t, "session-stale", *slot.SessionID)
	})
}
