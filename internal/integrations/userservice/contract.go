package userservice

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider источник времени для срока жизни кэша ролей
type TimeProvider interface {
	Now() time.Time
}
