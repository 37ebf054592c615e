package schedule

import (
	"sort"
	"time"
)

// ======================================================
// Disponibilidade
// ======================================================

type BookingKind string

const (
	KindFollowUp BookingKind = "follow_up"
	KindTeamMeet BookingKind = "team_meet"
)

// Booking é a projeção comum de um compromisso ativo de uma pessoa
// (follow-up em scheduled ou team meet em pending/confirmed).
type Booking struct {
	Kind BookingKind
	ID   uint
	Slot Slot
}

type Conflict struct {
	Kind BookingKind `json:"kind"`
	ID   uint        `json:"id"`
	Date time.Time   `json:"date"`
	At   string      `json:"at"`
}

// Exclude ignora o próprio compromisso durante um reagendamento.
type Exclude struct {
	Kind BookingKind
	ID   uint
}

// FirstConflict devolve o conflito de início mais cedo contra o
// candidato, ou nil. A ordenação por início garante resposta
// determinística chamada após chamada sobre os mesmos dados.
func FirstConflict(candidate Slot, bookings []Booking, exclude *Exclude) *Conflict {
	if !candidate.Valid() {
		return nil
	}

	sorted := make([]Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Slot.StartMinute() < sorted[j].Slot.StartMinute()
	})

	for _, b := range sorted {
		if exclude != nil && b.Kind == exclude.Kind && b.ID == exclude.ID {
			continue
		}
		if Overlaps(candidate, b.Slot) {
			return &Conflict{
				Kind: b.Kind,
				ID:   b.ID,
				Date: b.Slot.Date,
				At:   b.Slot.Time,
			}
		}
	}

	return nil
}
