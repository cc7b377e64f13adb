package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeatsLeft(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		booked   int
		want     int
	}{
		{"Empty", 10, 0, 10},
		{"Partly Booked", 10, 3, 7},
		{"Full", 10, 10, 0},
		{"Overbooked Floors At Zero", 10, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{Capacity: tt.capacity, BookedCount: tt.booked}
			assert.Equal(t, tt.want, c.SeatsLeft())
		})
	}
}

func TestTruncateDate(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("UTC+8", 8*3600))
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), TruncateDate(in))
}
