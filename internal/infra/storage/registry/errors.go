package registry

import "errors"

var (
	// ErrNotFound возвращается, когда ключ отсутствует в хранилище
	ErrNotFound = errors.New("registry.store: key not found")

	// ErrStorage возвращается при ошибках работы с Redis
	ErrStorage = errors.New("registry.store: storage error")

	// ErrEncode возвращается при ошибке сериализации snapshot
	ErrEncode = errors.New("registry.store: failed to encode snapshot")
)
