package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Greeting приветствие ассистента для нового диалога
const Greeting = "Hi! I’m your parking assistant. Ask me to find empty slots, VIP spaces, counts, or the nearest spot."

const helpText = "I can answer things like “Show me empty slots”, “Which VIP slot is free?”, “How many cars are parked?”, or “Nearest empty slot?”. Try one of those!"

var (
	reCountQuestion   = regexp.MustCompile(`(how many|cars parked|vehicles parked|occupied)`)
	reVIP             = regexp.MustCompile(`vip`)
	reAvailability    = regexp.MustCompile(`(free|empty|available)`)
	reNearestQuestion = regexp.MustCompile(`nearest|closest`)
	reParkForMe       = regexp.MustCompile(`where should i park|park my car|need a spot`)
	reSlotKeyword     = regexp.MustCompile(`empty|free|occupied|slot`)
)

// ChatReply ответ ассистента. FollowupQuery содержит эквивалентную поисковую строку,
// которой вызывающая сторона синхронизирует подсветку с ответом.
type ChatReply struct {
	Text          string `json:"text"`
	FollowupQuery string `json:"followupQuery,omitempty"`
}

// chatRule одно правило классификации намерения: предикат + обработчик.
// Правила применяются в фиксированном порядке приоритета.
type chatRule struct {
	match func(normalized string) bool
	build func(trimmed, normalized string, reg *domain.Registry) ChatReply
}

var chatRules = []chatRule{
	{
		// Вопрос о количестве припаркованных машин
		match: func(n string) bool { return reCountQuestion.MatchString(n) },
		build: buildCountReply,
	},
	{
		// Доступность VIP-слотов
		match: func(n string) bool { return reVIP.MatchString(n) && reAvailability.MatchString(n) },
		build: buildVIPReply,
	},
	{
		// Ближайший свободный слот / "где припарковаться"
		match: func(n string) bool { return reNearestQuestion.MatchString(n) || reParkForMe.MatchString(n) },
		build: buildNearestReply,
	},
	{
		// Общий вопрос про слоты/статусы: делегируем резолверу как есть
		match: func(n string) bool { return reSlotKeyword.MatchString(n) },
		build: buildSearchReply,
	},
}

// BuildChatReply классифицирует свободный вопрос и строит ответ ассистента.
// Нераспознанный вопрос получает статическую подсказку с примерами.
func BuildChatReply(rawQuery string, reg *domain.Registry) ChatReply {
	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		return ChatReply{Text: "Please ask me about parking availability or slot status."}
	}
	normalized := strings.ToLower(trimmed)

	for _, rule := range chatRules {
		if rule.match(normalized) {
			return rule.build(trimmed, normalized, reg)
		}
	}

	return ChatReply{Text: helpText}
}

func buildCountReply(_, _ string, reg *domain.Registry) ChatReply {
	counts := reg.GetCounts()
	verb := "are"
	if counts.Occupied == 1 {
		verb = "is"
	}
	carWord := "cars"
	if counts.Occupied == 1 {
		carWord = "car"
	}
	slotWord := "slots"
	if counts.Empty == 1 {
		slotWord = "slot"
	}
	return ChatReply{
		Text: fmt.Sprintf("There %s %d %s parked and %d free %s out of %d.",
			verb, counts.Occupied, carWord, counts.Empty, slotWord, reg.Total),
	}
}

func buildVIPReply(_, _ string, reg *domain.Registry) ChatReply {
	result := Resolve("vip empty slots", reg)
	if len(result.Indices) > 0 {
		return ChatReply{
			Text:          fmt.Sprintf("VIP slots open: %s. I highlighted them for you.", FormatSlotList(result.Indices)),
			FollowupQuery: "VIP empty slots",
		}
	}
	return ChatReply{Text: "All VIP slots are occupied at the moment."}
}

func buildNearestReply(_, normalized string, reg *domain.Registry) ChatReply {
	wantsVIP := reVIP.MatchString(normalized)
	searchQuery := "nearest empty slot"
	if wantsVIP {
		searchQuery = "nearest empty vip slot"
	}
	result := Resolve(searchQuery, reg)
	if len(result.Indices) > 0 {
		prefix := ""
		if wantsVIP {
			prefix = "VIP "
		}
		return ChatReply{
			Text:          fmt.Sprintf("%sSlot %d is the closest empty spot.", prefix, result.Indices[0]+1),
			FollowupQuery: searchQuery,
		}
	}
	return ChatReply{
		Text: "I couldn’t find a free spot right now. I’ll keep highlighting new openings as they appear.",
	}
}

func buildSearchReply(trimmed, _ string, reg *domain.Registry) ChatReply {
	result := Resolve(trimmed, reg)
	text := result.Message
	if len(result.Indices) > 0 {
		if list := FormatSlotList(result.Indices); list != "" {
			text = fmt.Sprintf("%s (%s)", result.Message, list)
		}
	}
	return ChatReply{Text: text, FollowupQuery: trimmed}
}
