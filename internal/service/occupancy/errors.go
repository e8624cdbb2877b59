package occupancy

import "errors"

var (
	// ErrSlotNotFound возвращается при переключении слота вне реестра
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("occupancy service: internal error")
)
