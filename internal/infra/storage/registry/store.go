package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ChangeChannel канал pub/sub для уведомлений об изменении ключей
const ChangeChannel = "parking:events"

// Store key-value хранилище snapshot'а реестра и пользовательских настроек.
// Поверх Redis: get/set JSON-блоба + pub/sub уведомления об изменениях.
type Store struct {
	client *redis.Client
}

// NewStore создает новое хранилище поверх готового Redis-клиента
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// LoadRaw читает сырой JSON-блоб snapshot'а реестра.
// Отсутствующий ключ возвращается как ErrNotFound, испорченный блоб
// отдается как есть, ремонт выполняется на уровне сервиса.
func (s *Store) LoadRaw(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, domain.RegistryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: LoadRaw - get %s: %v", ErrStorage, domain.RegistryKey, err)
	}
	return raw, nil
}

// SaveRegistry сохраняет snapshot реестра как JSON-блоб
func (s *Store) SaveRegistry(ctx context.Context, reg *domain.Registry) error {
	blob, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("%w: SaveRegistry - marshal: %v", ErrEncode, err)
	}
	if err := s.client.Set(ctx, domain.RegistryKey, blob, 0).Err(); err != nil {
		return fmt.Errorf("%w: SaveRegistry - set %s: %v", ErrStorage, domain.RegistryKey, err)
	}
	return nil
}

// GetTheme читает сохраненную тему оформления.
// Отсутствующее или неизвестное значение нормализуется в light.
func (s *Store) GetTheme(ctx context.Context) (string, error) {
	saved, err := s.client.Get(ctx, domain.ThemeKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetTheme - get %s: %v", ErrStorage, domain.ThemeKey, err)
	}
	return domain.NormalizeTheme(saved), nil
}

// SetTheme сохраняет тему оформления и возвращает нормализованное значение
func (s *Store) SetTheme(ctx context.Context, theme string) (string, error) {
	normalized := domain.NormalizeTheme(theme)
	if err := s.client.Set(ctx, domain.ThemeKey, normalized, 0).Err(); err != nil {
		return "", fmt.Errorf("%w: SetTheme - set %s: %v", ErrStorage, domain.ThemeKey, err)
	}
	return normalized, nil
}

// PublishChange публикует уведомление об изменении ключа.
// Семантика latest-wins: порядок доставки при частых изменениях не гарантируется.
func (s *Store) PublishChange(ctx context.Context, key string) error {
	if err := s.client.Publish(ctx, ChangeChannel, key).Err(); err != nil {
		return fmt.Errorf("%w: PublishChange - publish %s: %v", ErrStorage, key, err)
	}
	return nil
}

// SubscribeChanges подписывается на уведомления об изменениях ключей.
// Возвращает канал имен изменившихся ключей; закрывается при отмене контекста.
func (s *Store) SubscribeChanges(ctx context.Context) <-chan string {
	sub := s.client.Subscribe(ctx, ChangeChannel)
	out := make(chan string)

	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
