package schedule

import (
	"sort"
	"time"

	"github.com/nexconsult/crm-scheduler/internal/models"
)

// ======================================================
// Overview de agenda (leitura pura)
// ======================================================

type ItemKind string

const (
	ItemFollowUp ItemKind = "follow_up"
	ItemTeamMeet ItemKind = "team_meet"
)

// Item é a variante comum de FollowUp e TeamMeet para a timeline.
// Entidades heterogêneas, projeção {date, time, duration} comum.
type Item struct {
	Kind        ItemKind  `json:"kind"`
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	DurationMin int       `json:"duration_min"`
	MeetingType string    `json:"meeting_type"`
	Status      string    `json:"status"`

	// FollowUp
	LeadID   uint   `json:"lead_id,omitempty"`
	LeadName string `json:"lead_name,omitempty"`

	// TeamMeet
	Subject       string `json:"subject,omitempty"`
	RequestedByID uint   `json:"requested_by_id,omitempty"`
	RequestedToID uint   `json:"requested_to_id,omitempty"`
	WithName      string `json:"with_name,omitempty"`
}

type PendingResponse struct {
	// Reuniões esperando a SUA resposta (você é o destinatário):
	// prioridade sobre as que aguardam resposta do outro lado.
	NeedsYourResponse []Item `json:"needs_your_response"`
	AwaitingResponse  []Item `json:"awaiting_response"`
}

type Overview struct {
	Today           []Item          `json:"today"`
	Missed          []Item          `json:"missed"`
	Tomorrow        []Item          `json:"tomorrow"`
	PendingResponse PendingResponse `json:"pending_response"`
	NeedsReschedule []Item          `json:"needs_reschedule"`
}

func followUpItem(f models.FollowUp) Item {
	return Item{
		Kind:        ItemFollowUp,
		ID:          f.ID,
		Date:        f.ScheduledDate,
		Time:        f.ScheduledTime,
		DurationMin: f.DurationMin,
		MeetingType: f.MeetingType,
		Status:      f.Status,
		LeadID:      f.LeadID,
		LeadName:    f.Lead.Name,
	}
}

func teamMeetItem(tm models.TeamMeet, personID uint) Item {
	withName := tm.RequestedTo.Name
	if tm.RequestedToID == personID {
		withName = tm.RequestedBy.Name
	}

	return Item{
		Kind:          ItemTeamMeet,
		ID:            tm.ID,
		Date:          tm.ScheduledDate,
		Time:          tm.ScheduledTime,
		DurationMin:   tm.DurationMin,
		MeetingType:   tm.MeetingType,
		Status:        tm.Status,
		Subject:       tm.Subject,
		RequestedByID: tm.RequestedByID,
		RequestedToID: tm.RequestedToID,
		WithName:      withName,
	}
}

func sortByTimeAsc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})
}

// missed: data mais recente primeiro; dentro do dia, por hora.
func sortMissed(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !SameDate(items[i].Date, items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].Time < items[j].Time
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildOverview particiona follow-ups e team meets da pessoa nos
// buckets de apresentação. Não muta nada e não consulta
// disponibilidade; pode ser reexecutado a qualquer momento.
func BuildOverview(
	personID uint,
	followUps []models.FollowUp,
	teamMeets []models.TeamMeet,
	now time.Time,
) Overview {

	today := dateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)

	ov := Overview{
		Today:           []Item{},
		Missed:          []Item{},
		Tomorrow:        []Item{},
		NeedsReschedule: []Item{},
		PendingResponse: PendingResponse{
			NeedsYourResponse: []Item{},
			AwaitingResponse:  []Item{},
		},
	}

	bucket := func(it Item) {
		d := dateOnly(it.Date)
		switch {
		case d.Equal(today):
			ov.Today = append(ov.Today, it)
		case d.Before(today):
			ov.Missed = append(ov.Missed, it)
		case d.Equal(tomorrow):
			ov.Tomorrow = append(ov.Tomorrow, it)
		}
		// mais adiante que amanhã: fora do overview
	}

	for _, f := range followUps {
		if f.Status != "scheduled" {
			continue
		}
		bucket(followUpItem(f))
	}

	for _, tm := range teamMeets {
		it := teamMeetItem(tm, personID)

		switch tm.Status {
		case "pending_confirmation":
			bucket(it)
			if tm.RequestedToID == personID {
				ov.PendingResponse.NeedsYourResponse = append(ov.PendingResponse.NeedsYourResponse, it)
			} else if tm.RequestedByID == personID {
				ov.PendingResponse.AwaitingResponse = append(ov.PendingResponse.AwaitingResponse, it)
			}

		case "confirmed":
			bucket(it)

		case "rejected":
			// só quem pediu a reunião precisa reagendar
			if tm.RequestedByID == personID {
				ov.NeedsReschedule = append(ov.NeedsReschedule, it)
			}
		}
	}

	sortByTimeAsc(ov.Today)
	sortByTimeAsc(ov.Tomorrow)
	sortByTimeAsc(ov.PendingResponse.NeedsYourResponse)
	sortByTimeAsc(ov.PendingResponse.AwaitingResponse)
	sortMissed(ov.Missed)
	sortMissed(ov.NeedsReschedule)

	return ov
}
