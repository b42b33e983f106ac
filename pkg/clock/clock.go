package clock

import "time"

// Real реальный провайдер времени для production
type Real struct{}

// Now возвращает текущее время
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed провайдер с фиксированным временем (для тестов)
type Fixed struct {
	At time.Time
}

// Now возвращает зафиксированное время
func (f *Fixed) Now() time.Time {
	return f.At
}

// Advance сдвигает зафиксированное время
func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}
