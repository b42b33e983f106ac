package plan_series

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("plan_series: room not found")

	// ErrRoomInactive возвращается, когда комната выведена из эксплуатации
	ErrRoomInactive = errors.New("plan_series: room is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("plan_series: invalid input data")

	// ErrInvalidDate возвращается, когда первое повторение уже началось
	ErrInvalidDate = errors.New("plan_series: series must start in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("plan_series: internal error")
)
