package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// DefaultMessage ответ на пустой запрос: показываем все слоты без подсветки
const DefaultMessage = "Showing all slots. Try “Slot 3”, “empty slots”, or “nearest empty slot”."

var (
	reSlotNumber = regexp.MustCompile(`slot\s*(\d+)`)
	reEmpty      = regexp.MustCompile(`(empty|free|available)`)
)

// Result результат разрешения текстового запроса: подсвечиваемые индексы
// (0-based, по возрастанию) и текст ответа
type Result struct {
	Indices []int  `json:"indices"`
	Message string `json:"message"`
}

// Resolve разрешает свободный текстовый запрос по текущему snapshot'у.
// Порядок правил фиксирован, выигрывает первое совпавшее:
// номер слота > nearest > фильтр по статусу/типу > fallback.
// Состояние не мутируется.
func Resolve(rawQuery string, reg *domain.Registry) Result {
	trimmed := strings.ToLower(strings.TrimSpace(rawQuery))
	if trimmed == "" {
		return Result{Indices: []int{}, Message: DefaultMessage}
	}

	// 1. Точный номер слота
	if m := reSlotNumber.FindStringSubmatch(trimmed); m != nil {
		requested, _ := strconv.Atoi(m[1])
		if requested >= 1 && requested <= len(reg.Slots) {
			return Result{
				Indices: []int{requested - 1},
				Message: fmt.Sprintf("Highlighted Slot %d.", requested),
			}
		}
		return Result{
			Indices: []int{},
			Message: fmt.Sprintf("Slot %d is outside the current range.", requested),
		}
	}

	wantsNearest := strings.Contains(trimmed, "nearest") || strings.Contains(trimmed, "closest")
	wantsEmpty := reEmpty.MatchString(trimmed)
	wantsOccupied := strings.Contains(trimmed, "occupied")
	typeKey := findTypeKey(trimmed)

	var statusFilter domain.SlotStatus
	if wantsEmpty {
		statusFilter = domain.StatusEmpty
	} else if wantsOccupied {
		statusFilter = domain.StatusOccupied
	}

	// 2. Ближайший свободный слот; без явного статуса nearest трактуется как empty
	if wantsNearest && (wantsEmpty || statusFilter == "") {
		for idx := range reg.Slots {
			slot := &reg.Slots[idx]
			if slot.Status != domain.StatusEmpty {
				continue
			}
			if typeKey != "" && slot.Type != typeKey {
				continue
			}
			label := ""
			if typeKey != "" {
				label = domain.TypeLabels[typeKey] + " "
			}
			return Result{
				Indices: []int{idx},
				Message: fmt.Sprintf("Nearest empty %sslot is Slot %d.", label, idx+1),
			}
		}
		label := ""
		if typeKey != "" {
			label = strings.ToLower(domain.TypeLabels[typeKey]) + " "
		}
		return Result{
			Indices: []int{},
			Message: fmt.Sprintf("No empty %sslots available right now.", label),
		}
	}

	// 4. Нет распознанного фильтра
	if statusFilter == "" && typeKey == "" {
		return Result{Indices: []int{}, Message: "No matches. Try “Slot 4” or “empty slots”."}
	}

	// 3. Фильтр по статусу и/или типу
	indices := make([]int, 0)
	for idx := range reg.Slots {
		slot := &reg.Slots[idx]
		if typeKey != "" && slot.Type != typeKey {
			continue
		}
		if statusFilter != "" && slot.Status != statusFilter {
			continue
		}
		indices = append(indices, idx)
	}

	if len(indices) > 0 {
		descriptor := ""
		if statusFilter == domain.StatusEmpty {
			descriptor += "empty "
		}
		if statusFilter == domain.StatusOccupied {
			descriptor += "occupied "
		}
		if typeKey != "" {
			descriptor += domain.TypeLabels[typeKey] + " "
		}
		descriptor = strings.TrimSpace(descriptor)
		if descriptor == "" {
			descriptor = "matching"
		}
		plural := "slot"
		if len(indices) > 1 {
			plural = "slots"
		}
		return Result{
			Indices: indices,
			Message: fmt.Sprintf("Highlighted %d %s %s.", len(indices), descriptor, plural),
		}
	}

	return Result{
		Indices: []int{},
		Message: fmt.Sprintf("No slots found for “%s”.", strings.TrimSpace(rawQuery)),
	}
}

// findTypeKey возвращает первый тип слота, упомянутый в запросе
func findTypeKey(normalized string) domain.SlotType {
	for _, key := range domain.TypeKeys {
		if strings.Contains(normalized, string(key)) {
			return key
		}
	}
	return ""
}

// FormatSlotList форматирует список индексов для ответа ассистента:
// до трёх слотов перечисляются поимённо, дальше только числом
func FormatSlotList(indices []int) string {
	if len(indices) == 0 {
		return ""
	}
	if len(indices) <= 3 {
		names := make([]string, len(indices))
		for i, idx := range indices {
			names[i] = fmt.Sprintf("Slot %d", idx+1)
		}
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%d slots", len(indices))
}
