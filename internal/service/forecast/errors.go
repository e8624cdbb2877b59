package forecast

import "errors"

var (
	// ErrDisabled возвращается, когда журнал сессий не подключен
	ErrDisabled = errors.New("forecast: session log disabled")

	// ErrInsufficientData возвращается, когда истории недостаточно для прогноза.
	// Нулевой прогноз никогда не выдается за уверенный результат.
	ErrInsufficientData = errors.New("forecast: insufficient historical data")

	// ErrInvalidCapacity возвращается при неположительной вместимости
	ErrInvalidCapacity = errors.New("forecast: invalid capacity")

	// ErrInternal возвращается при сбое запроса к журналу сессий
	ErrInternal = errors.New("forecast: internal error")
)
