package models

import "time"

// Lead do funil comercial. O CRUD completo vive fora deste serviço;
// aqui guardamos o mínimo que o agendamento precisa.
type Lead struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CounselorID uint `json:"counselor_id"`
	Counselor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"counselor"`

	Stage              string `gorm:"size:30;default:'new'" json:"stage"`
	ConversionApproved bool   `json:"conversion_approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
