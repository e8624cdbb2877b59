package registry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	store "github.com/m04kA/SMC-ParkingService/internal/infra/storage/registry"
)

const testNow = int64(1_700_000_000_000)

type fakeStore struct {
	mu        sync.Mutex
	blob      []byte
	saves     int
	published []string
	failSave  bool
	failPub   bool
}

func (f *fakeStore) LoadRaw(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blob == nil {
		return nil, store.ErrNotFound
	}
	return f.blob, nil
}

func (f *fakeStore) SaveRegistry(_ context.Context, reg *domain.Registry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("save failed")
	}
	blob, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	f.blob = blob
	f.saves++
	return nil
}

func (f *fakeStore) PublishChange(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPub {
		return errors.New("publish failed")
	}
	f.published = append(f.published, key)
	return nil
}

type fakeClock struct {
	ms int64
}

func (f *fakeClock) NowMs() int64 { return f.ms }

type fakeCounter struct {
	mu sync.Mutex
	n  int
}

func (f *fakeCounter) Inc() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
}

func (f *fakeCounter) Value() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(fs *fakeStore) (*Service, *fakeClock) {
	clock := &fakeClock{ms: testNow}
	svc := NewService(fs, noopLogger{}).WithTimeProvider(clock)
	return svc, clock
}

func mustSeed(t *testing.T, fs *fakeStore, reg *domain.Registry) {
	t.Helper()
	blob, err := json.Marshal(reg)
	require.NoError(t, err)
	fs.blob = blob
}

func TestLoad_MissingSnapshotSynthesizesDefault(t *testing.T) {
	fs := &fakeStore{}
	repairs := &fakeCounter{}
	svc, _ := newTestService(fs)
	svc.WithCounters(repairs, nil)

	reg, err := svc.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTotalSlots, reg.Total)
	assert.Len(t, reg.Slots, domain.DefaultTotalSlots)
	// отремонтированный snapshot пишется обратно
	assert.Equal(t, 1, fs.saves)
	assert.Equal(t, 1, repairs.Value())
}

func TestLoad_ValidSnapshotUntouched(t *testing.T) {
	fs := &fakeStore{}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow-1000))
	repairs := &fakeCounter{}
	svc, _ := newTestService(fs)
	svc.WithCounters(repairs, nil)

	reg, err := svc.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTotalSlots, reg.Total)
	assert.Equal(t, 0, fs.saves)
	assert.Equal(t, 0, repairs.Value())
}

func TestLoad_WriteBackFailureStillReturnsRegistry(t *testing.T) {
	fs := &fakeStore{failSave: true}
	svc, _ := newTestService(fs)

	reg, err := svc.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTotalSlots, reg.Total)
}

func TestGet(t *testing.T) {
	fs := &fakeStore{}
	seeded := domain.NewDefaultRegistry(testNow)
	seeded.Slots[3].Status = domain.StatusOccupied
	mustSeed(t, fs, seeded)
	svc, _ := newTestService(fs)

	slot, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOccupied, slot.Status)

	_, err = svc.Get(context.Background(), -1)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.Get(context.Background(), domain.DefaultTotalSlots)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestResize_ExtendAddsEmptySlots(t *testing.T) {
	fs := &fakeStore{}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow-1000))
	svc, _ := newTestService(fs)

	reg, err := svc.Resize(context.Background(), 25)

	require.NoError(t, err)
	assert.Equal(t, 25, reg.Total)
	require.Len(t, reg.Slots, 25)
	assert.Equal(t, domain.StatusEmpty, reg.Slots[24].Status)
	assert.Equal(t, testNow, reg.Slots[24].LastChanged)
	assert.Equal(t, testNow, reg.UpdatedAt)
}

func TestResize_ShrinkDropsTailSlots(t *testing.T) {
	fs := &fakeStore{}
	seeded := domain.NewDefaultRegistry(testNow - 1000)
	seeded.Slots[19].Status = domain.StatusOccupied
	mustSeed(t, fs, seeded)
	svc, _ := newTestService(fs)

	reg, err := svc.Resize(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 5, reg.Total)
	assert.Len(t, reg.Slots, 5)

	// хвост отброшен без архивации: повторное расширение даёт свежие слоты
	reg, err = svc.Resize(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmpty, reg.Slots[19].Status)
}

func TestResize_ClampsRequestedTotal(t *testing.T) {
	fs := &fakeStore{}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow))
	svc, _ := newTestService(fs)

	reg, err := svc.Resize(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxSlots, reg.Total)

	// отрицательная вместимость зажимается в нижнюю границу, не в дефолт
	reg, err = svc.Resize(context.Background(), -3)
	require.NoError(t, err)
	assert.Equal(t, domain.MinSlots, reg.Total)

	reg, err = svc.Resize(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTotalSlots, reg.Total)
}

func TestMutate_PersistsAndPublishes(t *testing.T) {
	fs := &fakeStore{}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow))
	published := &fakeCounter{}
	svc, _ := newTestService(fs)
	svc.WithCounters(nil, published)

	_, err := svc.Mutate(context.Background(), func(reg *domain.Registry, nowMs int64) error {
		reg.Slots[0].Status = domain.StatusOccupied
		reg.UpdatedAt = nowMs
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fs.saves)
	require.Len(t, fs.published, 1)
	assert.Equal(t, domain.RegistryKey, fs.published[0])
	assert.Equal(t, 1, published.Value())

	reg, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOccupied, reg.Slots[0].Status)
}

func TestMutate_FnErrorAbortsSave(t *testing.T) {
	fs := &fakeStore{}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow))
	svc, _ := newTestService(fs)

	sentinel := errors.New("mutation rejected")
	_, err := svc.Mutate(context.Background(), func(reg *domain.Registry, _ int64) error {
		reg.Slots[0].Status = domain.StatusOccupied
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, fs.saves)
	assert.Empty(t, fs.published)
}

func TestMutate_PublishFailureDoesNotFailMutation(t *testing.T) {
	fs := &fakeStore{failPub: true}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow))
	published := &fakeCounter{}
	svc, _ := newTestService(fs)
	svc.WithCounters(nil, published)

	_, err := svc.Mutate(context.Background(), func(reg *domain.Registry, nowMs int64) error {
		reg.UpdatedAt = nowMs
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fs.saves)
	assert.Equal(t, 0, published.Value())
}

func TestMutate_SaveFailureReturnsInternal(t *testing.T) {
	fs := &fakeStore{}
	mustSeed(t, fs, domain.NewDefaultRegistry(testNow))
	svc, _ := newTestService(fs)
	fs.failSave = true

	_, err := svc.Mutate(context.Background(), func(reg *domain.Registry, nowMs int64) error {
		reg.UpdatedAt = nowMs
		return nil
	})

	assert.ErrorIs(t, err, ErrInternal)
}
