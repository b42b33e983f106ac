package check_in

// Request модель запроса на отметку присутствия
type Request struct {
	UserID    int64  // ID пользователя, выполняющего отметку
	BookingID int64  // ID бронирования
	Code      string // Код бронирования, сверяется без учета регистра
}

// Результаты отметки для метрик
const (
	resultOK       = "ok"
	resultEarly    = "too_early"
	resultLate     = "too_late"
	resultMismatch = "code_mismatch"
	resultRejected = "rejected"
)
