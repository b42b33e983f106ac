package check_in

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_in: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не привилегирован
	ErrAccessDenied = errors.New("check_in: access denied")

	// ErrBookingNotActive возвращается для отмененных и освобожденных бронирований
	ErrBookingNotActive = errors.New("check_in: booking is not active")

	// ErrAlreadyCheckedIn возвращается при повторной отметке
	ErrAlreadyCheckedIn = errors.New("check_in: already checked in")

	// ErrTooEarly возвращается до открытия окна отметки
	ErrTooEarly = errors.New("check_in: check-in window is not open yet")

	// ErrTooLate возвращается после окончания бронирования
	ErrTooLate = errors.New("check_in: check-in window is closed")

	// ErrCodeMismatch возвращается при неверном коде
	ErrCodeMismatch = errors.New("check_in: invalid booking code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)
