package httperr

import "errors"

// ======================================================
// Códigos de negócio do agendamento
// ======================================================

const (
	CodeActiveFollowUpExists   = "active_follow_up_exists"
	CodeFollowUpLocked         = "follow_up_locked"
	CodeInvalidTransition      = "invalid_transition"
	CodeNotAuthorized          = "not_authorized"
	CodeSlotUnavailable        = "slot_unavailable"
	CodeMissingRejectionReason = "missing_rejection_reason"
	CodePersonNotFound         = "person_not_found"
	CodeLeadNotFound           = "lead_not_found"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessMsg carrega a mensagem acionável que o front exibe
// (ex.: horário do conflito).
func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
