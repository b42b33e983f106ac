package snapshot

import "errors"

var (
	// ErrLoadCatalog возвращается при ошибке чтения каталога
	ErrLoadCatalog = errors.New("snapshot: failed to load catalog")

	// ErrLoadBookings возвращается при ошибке чтения бронирований
	ErrLoadBookings = errors.New("snapshot: failed to load bookings")
)
