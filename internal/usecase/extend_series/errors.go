package extend_series

import "errors"

var (
	// ErrSeriesNotFound возвращается, когда у серии нет активных повторений
	ErrSeriesNotFound = errors.New("extend_series: series not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не привилегирован
	ErrAccessDenied = errors.New("extend_series: access denied")

	// ErrExtensionConflict возвращается, когда хотя бы одну новую неделю нельзя разместить
	ErrExtensionConflict = errors.New("extend_series: extension has unresolved weeks")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("extend_series: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_series: internal error")
)
