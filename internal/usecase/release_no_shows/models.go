package release_no_shows

import "time"

// Response результат очистки неявок
type Response struct {
	ReleasedIDs []int64   // ID освобожденных бронирований
	Released    int64     // Количество фактически освобожденных строк
	Skipped     bool      // Очистку выполняет другой экземпляр
	SweptAt     time.Time // Момент очистки
}
