package registry

import "errors"

var (
	// ErrSlotNotFound возвращается при обращении к индексу вне реестра
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("registry service: internal error")
)
