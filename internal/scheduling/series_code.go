package scheduling

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// NewSeriesCode генерирует короткий код серии из случайного UUID
// Код вводится пользователем при отметке, поэтому он короткий и в верхнем регистре
func NewSeriesCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:domain.DefaultSeriesCodeLength])
}

// NormalizeSeriesCode приводит введенный код к виду, в котором он хранится
func NormalizeSeriesCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
