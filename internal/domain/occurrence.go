package domain

import "time"

// OccurrenceStatus результат планирования одного повторения серии
type OccurrenceStatus string

const (
	OccurrenceOK          OccurrenceStatus = "ok"          // свободна исходная комната
	OccurrenceAlternative OccurrenceStatus = "alternative" // найдена замена
	OccurrenceConflict    OccurrenceStatus = "conflict"    // замены нет
)

// Occurrence запланированное повторение серии
type Occurrence struct {
	Date   time.Time
	Room   *Room // nil при OccurrenceConflict
	Status OccurrenceStatus
}

// IsResolved возвращает true, если повторению назначена комната
func (o *Occurrence) IsResolved() bool {
	return o.Status != OccurrenceConflict && o.Room != nil
}
