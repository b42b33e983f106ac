package create_series

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_series: room not found")

	// ErrRoomInactive возвращается, когда комната выведена из эксплуатации
	ErrRoomInactive = errors.New("create_series: room is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_series: invalid input data")

	// ErrInvalidDate возвращается, когда первое повторение уже началось
	ErrInvalidDate = errors.New("create_series: series must start in the future")

	// ErrSeriesConflict возвращается, когда хотя бы одно повторение нельзя разместить
	ErrSeriesConflict = errors.New("create_series: series has unresolved occurrences")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_series: internal error")
)
