package occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/sessionid"
)

// Таймаут для отложенных best-effort записей в журнал сессий
const detachedWriteTimeout = 5 * time.Second

// Service state machine занятости слотов: empty <-> occupied.
// Локальный snapshot авторитетен: он записывается до любых обращений к
// журналу сессий, а ошибки журнала никогда не откатывают локальный переход.
type Service struct {
	registry   RegistryMutator
	sessionLog SessionLog // nil = журнал отключен
	generateID func() string
	logger     Logger

	writeFailures   Counter
	togglesOccupied Counter
	togglesEmpty    Counter
}

// NewService создает новый экземпляр state machine занятости
func NewService(registry RegistryMutator, sessionLog SessionLog, logger Logger) *Service {
	return &Service{
		registry:   registry,
		sessionLog: sessionLog,
		generateID: sessionid.New,
		logger:     logger,
	}
}

// WithCounters подключает счётчики метрик переходов и сбоев записи
func (s *Service) WithCounters(togglesOccupied, togglesEmpty, writeFailures Counter) *Service {
	s.togglesOccupied = togglesOccupied
	s.togglesEmpty = togglesEmpty
	s.writeFailures = writeFailures
	return s
}

// WithIDGenerator подменяет генератор session id (для тестов)
func (s *Service) WithIDGenerator(fn func() string) *Service {
	s.generateID = fn
	return s
}

// sessionEvent отложенное событие для журнала сессий
type sessionEvent struct {
	start *domain.SessionRecord
	endID string
	endAt int64
}

// Toggle переключает слот между empty и occupied.
// Индекс вне реестра -> ErrSlotNotFound, состояние не меняется.
func (s *Service) Toggle(ctx context.Context, index int) (*domain.Registry, error) {
	var event sessionEvent

	reg, err := s.registry.Mutate(ctx, func(reg *domain.Registry, nowMs int64) error {
		if index < 0 || index >= len(reg.Slots) {
			return ErrSlotNotFound
		}
		slot := &reg.Slots[index]

		if slot.Status == domain.StatusEmpty {
			slot.LastFreeDuration = nowMs - slot.LastChanged
			slot.Status = domain.StatusOccupied
			if slot.SessionID == nil {
				id := s.generateID()
				slot.SessionID = &id
			}
			event.start = &domain.SessionRecord{
				SessionID:  *slot.SessionID,
				SlotIndex:  index,
				SlotNumber: index + 1,
				SlotType:   slot.Type,
				TimeIn:     nowMs,
				CreatedAt:  nowMs,
				UpdatedAt:  nowMs,
			}
		} else {
			slot.LastOccupiedDuration = nowMs - slot.LastChanged
			slot.Status = domain.StatusEmpty
			if slot.SessionID != nil {
				event.endID = *slot.SessionID
				event.endAt = nowMs
			}
			slot.SessionID = nil
		}

		slot.LastChanged = nowMs
		reg.UpdatedAt = nowMs
		return nil
	})
	if err != nil {
		return reg, err
	}

	// Локальное состояние уже записано; журнал сессий пишется best-effort
	if event.start != nil {
		if s.togglesOccupied != nil {
			s.togglesOccupied.Inc()
		}
		s.logger.Info("Toggle: slot %d occupied, session=%s", index+1, event.start.SessionID)
		s.emitSessionStart(event.start)
	}
	if event.endID != "" {
		if s.togglesEmpty != nil {
			s.togglesEmpty.Inc()
		}
		s.logger.Info("Toggle: slot %d freed, session=%s", index+1, event.endID)
		s.emitSessionEnd(event.endID, event.endAt)
	}

	return reg, nil
}

// SetType меняет категорию слота.
// Неизвестный тип -> no-op, возвращается текущее состояние без ошибки.
// Смена типа не влияет на учёт длительностей.
func (s *Service) SetType(ctx context.Context, index int, slotType domain.SlotType) (*domain.Registry, error) {
	if !domain.IsValidType(slotType) {
		s.logger.Warn("SetType: unknown type %q for slot %d, ignoring", slotType, index+1)
		return s.registry.Load(ctx)
	}

	reg, err := s.registry.Mutate(ctx, func(reg *domain.Registry, nowMs int64) error {
		if index < 0 || index >= len(reg.Slots) {
			return ErrSlotNotFound
		}
		reg.Slots[index].Type = slotType
		reg.UpdatedAt = nowMs
		return nil
	})
	if err != nil {
		return reg, err
	}

	s.logger.Info("SetType: slot %d type=%s", index+1, slotType)
	return reg, nil
}

// emitSessionStart отправляет событие открытия сессии отдельной горутиной.
// Сбой логируется и учитывается в метриках, но не влияет на результат Toggle.
func (s *Service) emitSessionStart(rec *domain.SessionRecord) {
	if s.sessionLog == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), detachedWriteTimeout)
		defer cancel()
		if err := s.sessionLog.RecordStart(ctx, rec); err != nil {
			if s.writeFailures != nil {
				s.writeFailures.Inc()
			}
			s.logger.Warn("emitSessionStart: failed to record time-in for session=%s: %v", rec.SessionID, err)
		}
	}()
}

// emitSessionEnd отправляет событие закрытия сессии отдельной горутиной
func (s *Service) emitSessionEnd(sessionID string, timeOutMs int64) {
	if s.sessionLog == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), detachedWriteTimeout)
		defer cancel()
		if err := s.sessionLog.RecordEnd(ctx, sessionID, timeOutMs); err != nil {
			if s.writeFailures != nil {
				s.writeFailures.Inc()
			}
			s.logger.Warn("emitSessionEnd: failed to record time-out for session=%s: %v", sessionID, err)
		}
	}()
}
