package schedule

import "time"

// ======================================================
// Slot de agenda
// ======================================================

// Slot é o valor canônico de um intervalo reservado: data do
// calendário (meia-noite no fuso da organização), hora "15:04"
// e duração em minutos.
type Slot struct {
	Date        time.Time
	Time        string
	DurationMin int
}

func NewSlot(date time.Time, hm string, durationMin int) Slot {
	return Slot{
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Time:        hm,
		DurationMin: durationMin,
	}
}

// Valid exige duração positiva e hora "15:04" parseável.
// Slot degenerado nunca conflita com nada; os callers tratam
// como entrada inválida antes de chegar aqui.
func (s Slot) Valid() bool {
	if s.DurationMin <= 0 {
		return false
	}
	_, err := time.Parse("15:04", s.Time)
	return err == nil
}

// StartMinute devolve o minuto do dia (0..1439) do início do slot.
func (s Slot) StartMinute() int {
	t, err := time.Parse("15:04", s.Time)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

func (s Slot) EndMinute() int {
	return s.StartMinute() + s.DurationMin
}

func (s Slot) Start() time.Time {
	t, _ := time.Parse("15:04", s.Time)
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		s.Date.Location(),
	)
}

func (s Slot) End() time.Time {
	return s.Start().Add(time.Duration(s.DurationMin) * time.Minute)
}

func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Overlaps testa interseção dos intervalos semiabertos
// [início, início+duração) no mesmo dia.
func Overlaps(a, b Slot) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	if !SameDate(a.Date, b.Date) {
		return false
	}
	return a.StartMinute() < b.EndMinute() && b.StartMinute() < a.EndMinute()
}
