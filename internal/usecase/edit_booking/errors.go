package edit_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("edit_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не привилегирован
	ErrAccessDenied = errors.New("edit_booking: access denied")

	// ErrCannotEdit возвращается для отмененных, освобожденных или уже отмеченных бронирований
	ErrCannotEdit = errors.New("edit_booking: booking cannot be edited")

	// ErrSlotNotAvailable возвращается, когда новый интервал занят
	ErrSlotNotAvailable = errors.New("edit_booking: slot is not available")

	// ErrInvalidDate возвращается, когда новое время уже прошло
	ErrInvalidDate = errors.New("edit_booking: booking must start in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_booking: internal error")
)
