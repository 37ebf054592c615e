package teammeet

// ======================================================
// Status do TeamMeet
// ======================================================

type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusRejected            Status = "rejected"
	StatusCancelled           Status = "cancelled"
	StatusCompleted           Status = "completed"
)

func InitialStatus() Status {
	return StatusPendingConfirmation
}
