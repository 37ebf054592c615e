package models

import "time"

type TeamMeet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RequestedByID uint `gorm:"index" json:"requested_by_id"`
	RequestedBy   User `gorm:"foreignKey:RequestedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"requested_by"`

	RequestedToID uint `gorm:"index" json:"requested_to_id"`
	RequestedTo   User `gorm:"foreignKey:RequestedToID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"requested_to"`

	Subject     string `gorm:"size:150;not null" json:"subject"`
	Description string `gorm:"size:1000" json:"description"`

	ScheduledDate time.Time `json:"scheduled_date"`
	ScheduledTime string    `gorm:"size:5" json:"scheduled_time"`
	DurationMin   int       `json:"duration_min"`
	StartMinute   int       `json:"-"`

	MeetingType string `gorm:"size:20;default:'online'" json:"meeting_type"`
	Status      string `gorm:"size:30;default:'pending_confirmation'" json:"status"`

	// Obrigatório quando o status vira rejected.
	RejectionMessage string `gorm:"size:500" json:"rejection_message"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
