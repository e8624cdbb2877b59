package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// testRegistry собирает реестр из пар (status, type) для читаемых сценариев
func testRegistry(slots ...[2]string) *domain.Registry {
	reg := &domain.Registry{Total: len(slots)}
	for _, s := range slots {
		reg.Slots = append(reg.Slots, domain.Slot{
			Status: domain.SlotStatus(s[0]),
			Type:   domain.SlotType(s[1]),
		})
	}
	return reg
}

func defaultTestRegistry() *domain.Registry {
	// Slot 1: occupied normal, Slot 2: empty vip, Slot 3: empty normal,
	// Slot 4: occupied vip, Slot 5: empty handicapped, Slot 6: occupied normal
	return testRegistry(
		[2]string{"occupied", "normal"},
		[2]string{"empty", "vip"},
		[2]string{"empty", "normal"},
		[2]string{"occupied", "vip"},
		[2]string{"empty", "handicapped"},
		[2]string{"occupied", "normal"},
	)
}

func TestResolve_EmptyQuery(t *testing.T) {
	result := Resolve("   ", defaultTestRegistry())

	assert.Empty(t, result.Indices)
	assert.Equal(t, DefaultMessage, result.Message)
}

func TestResolve_SlotNumber(t *testing.T) {
	reg := defaultTestRegistry()

	result := Resolve("Slot 3", reg)
	assert.Equal(t, []int{2}, result.Indices)
	assert.Equal(t, "Highlighted Slot 3.", result.Message)

	// регистр и пробелы не важны
	result = Resolve("  show me slot3 please ", reg)
	assert.Equal(t, []int{2}, result.Indices)
}

func TestResolve_SlotNumberOutOfRange(t *testing.T) {
	result := Resolve("Slot 25", defaultTestRegistry())

	assert.Empty(t, result.Indices)
	assert.Equal(t, "Slot 25 is outside the current range.", result.Message)

	result = Resolve("slot 0", defaultTestRegistry())
	assert.Empty(t, result.Indices)
	assert.Equal(t, "Slot 0 is outside the current range.", result.Message)
}

func TestResolve_EmptySlots(t *testing.T) {
	result := Resolve("empty slots", defaultTestRegistry())

	assert.Equal(t, []int{1, 2, 4}, result.Indices)
	assert.Equal(t, "Highlighted 3 empty slots.", result.Message)
}

func TestResolve_OccupiedSlots(t *testing.T) {
	result := Resolve("occupied slots", defaultTestRegistry())

	assert.Equal(t, []int{0, 3, 5}, result.Indices)
	assert.Equal(t, "Highlighted 3 occupied slots.", result.Message)
}

func TestResolve_TypeFilter(t *testing.T) {
	result := Resolve("vip slots", defaultTestRegistry())

	assert.Equal(t, []int{1, 3}, result.Indices)
	assert.Equal(t, "Highlighted 2 VIP slots.", result.Message)
}

func TestResolve_StatusAndTypeFilter(t *testing.T) {
	result := Resolve("free vip slots", defaultTestRegistry())

	assert.Equal(t, []int{1}, result.Indices)
	assert.Equal(t, "Highlighted 1 empty VIP slot.", result.Message)
}

func TestResolve_NearestEmpty(t *testing.T) {
	result := Resolve("nearest empty slot", defaultTestRegistry())

	assert.Equal(t, []int{1}, result.Indices)
	assert.Equal(t, "Nearest empty slot is Slot 2.", result.Message)
}

func TestResolve_NearestEmptyWithType(t *testing.T) {
	result := Resolve("nearest empty vip slot", defaultTestRegistry())

	assert.Equal(t, []int{1}, result.Indices)
	assert.Equal(t, "Nearest empty VIP slot is Slot 2.", result.Message)
}

func TestResolve_NearestEmptyNoneAvailable(t *testing.T) {
	reg := testRegistry(
		[2]string{"occupied", "normal"},
		[2]string{"occupied", "vip"},
	)

	result := Resolve("nearest empty slot", reg)
	assert.Empty(t, result.Indices)
	assert.Equal(t, "No empty slots available right now.", result.Message)

	result = Resolve("nearest empty vip slot", reg)
	assert.Empty(t, result.Indices)
	assert.Equal(t, "No empty vip slots available right now.", result.Message)
}

func TestResolve_NoFilterRecognized(t *testing.T) {
	result := Resolve("xyzzy", defaultTestRegistry())

	assert.Empty(t, result.Indices)
	assert.Equal(t, "No matches. Try “Slot 4” or “empty slots”.", result.Message)
}

func TestResolve_FilterWithoutMatches(t *testing.T) {
	reg := testRegistry(
		[2]string{"occupied", "normal"},
		[2]string{"occupied", "normal"},
	)

	result := Resolve("empty vip slots", reg)

	assert.Empty(t, result.Indices)
	assert.Equal(t, "No slots found for “empty vip slots”.", result.Message)
}

func TestFormatSlotList(t *testing.T) {
	assert.Equal(t, "", FormatSlotList(nil))
	assert.Equal(t, "Slot 1", FormatSlotList([]int{0}))
	assert.Equal(t, "Slot 1, Slot 3, Slot 5", FormatSlotList([]int{0, 2, 4}))
	assert.Equal(t, "4 slots", FormatSlotList([]int{0, 1, 2, 3}))
}
