package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	requestID string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		RequestID: requestID,
		Metadata:  metaJSON,
	}

	return l.db.Create(&log).Error
}
