package models

import "time"

type FollowUp struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LeadID uint `gorm:"index" json:"lead_id"`
	Lead   Lead `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"lead"`

	CounselorID uint `gorm:"index" json:"counselor_id"`
	Counselor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"counselor"`

	// Slot agendado: data (meia-noite no fuso da organização),
	// hora "15:04" e duração em minutos. StartMinute é derivado
	// da hora e mantido na linha para a constraint de exclusão.
	ScheduledDate time.Time `json:"scheduled_date"`
	ScheduledTime string    `gorm:"size:5" json:"scheduled_time"`
	DurationMin   int       `json:"duration_min"`
	StartMinute   int       `json:"-"`

	MeetingType string `gorm:"size:20;default:'online'" json:"meeting_type"`
	Status      string `gorm:"size:30;default:'scheduled'" json:"status"`

	// Snapshot do estágio do lead no momento da criação (imutável)
	// e estágio para o qual o lead deve migrar na resolução.
	StageAtFollowUp string `gorm:"size:30" json:"stage_at_follow_up"`
	StageChangedTo  string `gorm:"size:30" json:"stage_changed_to"`

	// Sequência 1..N dentro do histórico do lead.
	FollowUpNumber int `json:"follow_up_number"`

	Notes          string `gorm:"size:1000" json:"notes"`
	ZohoMeetingURL string `gorm:"size:255" json:"zoho_meeting_url"`

	CreatedByID uint  `json:"created_by_id"`
	UpdatedByID *uint `json:"updated_by_id"`

	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
