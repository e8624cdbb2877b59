package query

import (
	"context"
	"fmt"
)

// Service query resolver поверх живого snapshot'а реестра.
// Владеет только транзиентными результатами запроса, состояние не мутирует.
type Service struct {
	registry RegistryLoader
	logger   Logger
}

// NewService создает новый экземпляр сервиса запросов
func NewService(registry RegistryLoader, logger Logger) *Service {
	return &Service{registry: registry, logger: logger}
}

// Search разрешает текстовый запрос в индексы слотов и текст ответа
func (s *Service) Search(ctx context.Context, rawQuery string) (*Result, error) {
	reg, err := s.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("Search - load registry: %w", err)
	}
	result := Resolve(rawQuery, reg)
	s.logger.Info("Search: query=%q matched %d slots", rawQuery, len(result.Indices))
	return &result, nil
}

// ChatResult ответ ассистента вместе с индексами для подсветки
type ChatResult struct {
	Text          string `json:"text"`
	FollowupQuery string `json:"followupQuery,omitempty"`
	Indices       []int  `json:"indices"`
}

// Chat строит ответ ассистента на свободный вопрос.
// Если ответ ссылается на конкретные слоты, его followup-запрос прогоняется
// через резолвер, чтобы подсветка совпала с текстом ответа.
func (s *Service) Chat(ctx context.Context, message string) (*ChatResult, error) {
	reg, err := s.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("Chat - load registry: %w", err)
	}

	reply := BuildChatReply(message, reg)
	result := &ChatResult{
		Text:          reply.Text,
		FollowupQuery: reply.FollowupQuery,
		Indices:       []int{},
	}
	if reply.FollowupQuery != "" {
		result.Indices = Resolve(reply.FollowupQuery, reg).Indices
	}

	s.logger.Info("Chat: message=%q followup=%q matched %d slots",
		message, reply.FollowupQuery, len(result.Indices))
	return result, nil
}
