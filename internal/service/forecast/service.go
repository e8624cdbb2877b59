package forecast

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Service движок прогнозирования rush hours.
// Результат кэшируется по ключу totalSlots с фиксированным TTL; конкурентные
// запросы одной вместимости разделяют одно in-flight вычисление. Сбой
// вычисления очищает кэш и не кэшируется сам.
type Service struct {
	sessions     SessionSource // nil = прогноз отключен
	timeProvider TimeProvider
	lookbackDays int
	cacheTTL     time.Duration
	location     *time.Location
	logger       Logger

	cacheHits   Counter
	cacheMisses Counter
	errorsTotal Counter

	mu         sync.Mutex
	cached     *Summary
	cachedKey  int   // totalSlots, для которой считался кэш
	expiresAt  int64 // unix millis
	group      singleflight.Group
}

// NewService создает новый экземпляр движка прогнозирования
func NewService(sessions SessionSource, lookbackDays int, cacheTTL time.Duration, logger Logger) *Service {
	return &Service{
		sessions:     sessions,
		timeProvider: RealTimeProvider{},
		lookbackDays: lookbackDays,
		cacheTTL:     cacheTTL,
		location:     time.Local,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithLocation задает часовой пояс бакетирования (для тестов)
func (s *Service) WithLocation(loc *time.Location) *Service {
	s.location = loc
	return s
}

// WithCounters подключает счётчики метрик кэша и ошибок
func (s *Service) WithCounters(hits, misses, errorsTotal Counter) *Service {
	s.cacheHits = hits
	s.cacheMisses = misses
	s.errorsTotal = errorsTotal
	return s
}

// Forecast возвращает прогноз занятости для текущей вместимости парковки.
// Ошибки: ErrDisabled (журнал не подключен), ErrInsufficientData (истории
// недостаточно), ErrInternal (сбой запроса к журналу).
func (s *Service) Forecast(ctx context.Context, totalSlots int) (*Summary, error) {
	if s.sessions == nil {
		return nil, ErrDisabled
	}
	if totalSlots <= 0 {
		return nil, ErrInvalidCapacity
	}

	now := s.timeProvider.NowMs()

	s.mu.Lock()
	if s.cached != nil && s.cachedKey == totalSlots && s.expiresAt > now {
		cached := s.cached
		s.mu.Unlock()
		if s.cacheHits != nil {
			s.cacheHits.Inc()
		}
		return cached, nil
	}
	s.mu.Unlock()

	result, err, _ := s.group.Do(strconv.Itoa(totalSlots), func() (interface{}, error) {
		// Счётчик промахов считает вычисления, а не вызовы: конкурентные
		// запросы, разделившие один in-flight расчёт, дают один промах
		if s.cacheMisses != nil {
			s.cacheMisses.Inc()
		}
		return s.compute(ctx, totalSlots)
	})
	if err != nil {
		if s.errorsTotal != nil {
			s.errorsTotal.Inc()
		}
		s.mu.Lock()
		s.cached = nil
		s.mu.Unlock()
		return nil, err
	}

	summary := result.(*Summary)

	s.mu.Lock()
	s.cached = summary
	s.cachedKey = totalSlots
	s.expiresAt = s.timeProvider.NowMs() + s.cacheTTL.Milliseconds()
	s.mu.Unlock()

	return summary, nil
}

// Invalidate сбрасывает кэш (например, при смене вместимости)
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// compute выполняет полный расчёт прогноза за lookback-окно
func (s *Service) compute(ctx context.Context, totalSlots int) (*Summary, error) {
	now := s.timeProvider.NowMs()
	cutoff := now - int64(s.lookbackDays)*24*60*60*1000

	sessions, err := s.sessions.QuerySince(ctx, cutoff)
	if err != nil {
		s.logger.Error("compute: failed to load sessions: %v", err)
		return nil, fmt.Errorf("%w: compute - query sessions: %v", ErrInternal, err)
	}
	if len(sessions) == 0 {
		return nil, ErrInsufficientData
	}

	fs, err := calculateRushForecast(sessions, totalSlots, s.lookbackDays, now, s.location)
	if err != nil {
		return nil, err
	}

	s.logger.Info("compute: forecast ready (slots=%d, days=%d, samples=%d, busy=%d, empty=%d)",
		totalSlots, fs.DayCount, fs.SampleSize, fs.BusyHour, fs.EmptyHour)

	return newSummary(fs), nil
}
