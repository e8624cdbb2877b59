package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	store "github.com/m04kA/SMC-ParkingService/internal/infra/storage/registry"
)

// Service сервис реестра парковочных слотов.
// Единственный владелец персистентного snapshot'а: все мутации проходят
// через Mutate и сериализуются мьютексом (single logical writer).
type Service struct {
	store        SnapshotStore
	timeProvider TimeProvider
	repairs      Counter
	published    Counter
	logger       Logger

	mu sync.Mutex
}

// NewService создает новый экземпляр сервиса реестра
func NewService(store SnapshotStore, logger Logger) *Service {
	return &Service{
		store:        store,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithCounters подключает счётчики метрик (ремонты snapshot'а, уведомления)
func (s *Service) WithCounters(repairs, published Counter) *Service {
	s.repairs = repairs
	s.published = published
	return s
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Load читает snapshot реестра, при необходимости ремонтируя его.
// Отсутствующий или испорченный блоб тихо заменяется валидным состоянием
// и записывается обратно; наружу ошибка коррупции не отдается.
func (s *Service) Load(ctx context.Context) (*domain.Registry, error) {
	raw, err := s.store.LoadRaw(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("Load: storage error: %v", err)
		return nil, fmt.Errorf("%w: Load - storage error: %v", ErrInternal, err)
	}

	now := s.timeProvider.NowMs()
	reg, repaired := domain.NormalizeRegistry(raw, now)
	if repaired {
		if s.repairs != nil {
			s.repairs.Inc()
		}
		s.logger.Warn("Load: snapshot repaired (total=%d)", reg.Total)
		if err := s.store.SaveRegistry(ctx, reg); err != nil {
			// Отремонтированное состояние всё равно валидно для чтения
			s.logger.Error("Load: failed to write back repaired snapshot: %v", err)
		}
	}

	return reg, nil
}

// Get возвращает слот по позиционному индексу (0-based)
func (s *Service) Get(ctx context.Context, index int) (*domain.Slot, error) {
	reg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= reg.Total {
		return nil, ErrSlotNotFound
	}
	return &reg.Slots[index], nil
}

// Resize изменяет вместимость парковки.
// Значение зажимается в [MinSlots, MaxSlots]; при уменьшении хвостовые слоты
// отбрасываются без архивации, при увеличении добавляются пустые.
func (s *Service) Resize(ctx context.Context, newTotal int) (*domain.Registry, error) {
	sanitized := domain.ClampTotal(newTotal)
	if sanitized != newTotal {
		s.logger.Warn("Resize: requested total=%d clamped to %d", newTotal, sanitized)
	}

	return s.Mutate(ctx, func(reg *domain.Registry, nowMs int64) error {
		reg.Total = sanitized
		if len(reg.Slots) > sanitized {
			reg.Slots = reg.Slots[:sanitized]
		} else {
			for len(reg.Slots) < sanitized {
				reg.Slots = append(reg.Slots, domain.NewEmptySlot(nowMs))
			}
		}
		reg.UpdatedAt = nowMs
		return nil
	})
}

// Mutate выполняет мутацию реестра под блокировкой: load -> fn -> save -> notify.
// Ошибка fn отменяет запись (состояние остается прежним). Уведомление об
// изменении ключа отправляется best-effort после успешной записи.
func (s *Service) Mutate(ctx context.Context, fn func(reg *domain.Registry, nowMs int64) error) (*domain.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(reg, s.timeProvider.NowMs()); err != nil {
		return reg, err
	}

	if err := s.store.SaveRegistry(ctx, reg); err != nil {
		s.logger.Error("Mutate: failed to persist snapshot: %v", err)
		return nil, fmt.Errorf("%w: Mutate - persist snapshot: %v", ErrInternal, err)
	}

	if err := s.store.PublishChange(ctx, domain.RegistryKey); err != nil {
		s.logger.Warn("Mutate: change notification failed: %v", err)
	} else if s.published != nil {
		s.published.Inc()
	}

	return reg, nil
}
