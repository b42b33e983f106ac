package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StatusGuards(t *testing.T) {
	tests := []struct {
		name           string
		status         BookingStatus
		checkedIn      bool
		wantTerminal   bool
		wantCancel     bool
		wantReschedule bool
	}{
		{name: "активное", status: StatusActive, wantCancel: true, wantReschedule: true},
		{name: "активное с отметкой", status: StatusActive, checkedIn: true, wantCancel: true},
		{name: "отмененное", status: StatusCancelled, wantTerminal: true},
		{name: "освобожденное", status: StatusReleased, wantTerminal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, IsCheckedIn: tt.checkedIn}

			assert.Equal(t, tt.wantTerminal, b.IsTerminal())
			assert.Equal(t, !tt.wantTerminal, b.IsActive())
			assert.Equal(t, tt.wantCancel, b.CanBeCancelled())
			assert.Equal(t, tt.wantReschedule, b.CanBeUpdated())
		})
	}
}
