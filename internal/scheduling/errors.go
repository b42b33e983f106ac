package scheduling

import "errors"

var (
	// ErrInvalidSlot возвращается при некорректной дате, времени или длительности
	ErrInvalidSlot = errors.New("scheduling: invalid slot")

	// ErrUnresolvedOccurrence возвращается при попытке зафиксировать план с неразрешенным повторением
	ErrUnresolvedOccurrence = errors.New("scheduling: plan contains unresolved occurrence")

	// ErrEmptySeries возвращается, если у серии нет ни одного активного бронирования
	ErrEmptySeries = errors.New("scheduling: series has no active bookings")

	// ErrRoomUnknown возвращается, если комнаты нет в снимке каталога
	ErrRoomUnknown = errors.New("scheduling: room is not in catalog snapshot")

	// ErrBookingNotActive возвращается при попытке отметиться в неактивном бронировании
	ErrBookingNotActive = errors.New("scheduling: booking is not active")

	// ErrAlreadyCheckedIn возвращается при повторной отметке
	ErrAlreadyCheckedIn = errors.New("scheduling: booking is already checked in")

	// ErrCheckInTooEarly возвращается, если окно отметки еще не открылось
	ErrCheckInTooEarly = errors.New("scheduling: check-in window is not open yet")

	// ErrCheckInTooLate возвращается, если окно отметки уже закрылось
	ErrCheckInTooLate = errors.New("scheduling: check-in window is closed")

	// ErrCodeMismatch возвращается, если код не совпадает с кодом бронирования
	ErrCodeMismatch = errors.New("scheduling: booking code mismatch")
)
