package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSlotValid(t *testing.T) {
	assert.True(t, NewSlot(day(2026, 9, 1), "14:00", 60).Valid())

	assert.False(t, NewSlot(day(2026, 9, 1), "14:00", 0).Valid())
	assert.False(t, NewSlot(day(2026, 9, 1), "14:00", -30).Valid())
	assert.False(t, NewSlot(day(2026, 9, 1), "25:00", 60).Valid())
	assert.False(t, NewSlot(day(2026, 9, 1), "", 60).Valid())
}

func TestSlotStartMinute(t *testing.T) {
	assert.Equal(t, 0, NewSlot(day(2026, 9, 1), "00:00", 30).StartMinute())
	assert.Equal(t, 870, NewSlot(day(2026, 9, 1), "14:30", 30).StartMinute())
	assert.Equal(t, 900, NewSlot(day(2026, 9, 1), "14:30", 30).EndMinute())
}

func TestOverlapsSemiOpen(t *testing.T) {
	d := day(2026, 9, 1)

	a := NewSlot(d, "14:00", 60)

	// encostados não conflitam: [14:00,15:00) e [15:00,16:00)
	assert.False(t, Overlaps(a, NewSlot(d, "15:00", 60)))
	assert.False(t, Overlaps(NewSlot(d, "13:00", 60), a))

	// um minuto de interseção já conflita
	assert.True(t, Overlaps(a, NewSlot(d, "14:59", 30)))
	assert.True(t, Overlaps(a, NewSlot(d, "13:30", 31)))

	// contido e contendo
	assert.True(t, Overlaps(a, NewSlot(d, "14:15", 15)))
	assert.True(t, Overlaps(a, NewSlot(d, "13:00", 240)))
}

func TestOverlapsIsSymmetric(t *testing.T) {
	d := day(2026, 9, 1)
	a := NewSlot(d, "09:00", 45)
	b := NewSlot(d, "09:30", 45)

	assert.Equal(t, Overlaps(a, b), Overlaps(b, a))
	assert.True(t, Overlaps(a, b))
}

func TestOverlapsSelf(t *testing.T) {
	a := NewSlot(day(2026, 9, 1), "10:00", 30)
	assert.True(t, Overlaps(a, a))
}

func TestOverlapsDifferentDates(t *testing.T) {
	a := NewSlot(day(2026, 9, 1), "14:00", 60)
	b := NewSlot(day(2026, 9, 2), "14:00", 60)
	assert.False(t, Overlaps(a, b))
}

func TestOverlapsInvalidSlotNeverConflicts(t *testing.T) {
	d := day(2026, 9, 1)
	valid := NewSlot(d, "14:00", 60)
	zero := NewSlot(d, "14:00", 0)

	assert.False(t, Overlaps(valid, zero))
	assert.False(t, Overlaps(zero, valid))
	assert.False(t, Overlaps(zero, zero))
}
