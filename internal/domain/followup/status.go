package followup

import "github.com/nexconsult/crm-scheduler/internal/httperr"

// ======================================================
// Status do FollowUp
// ======================================================

type Status string

const StatusScheduled Status = "scheduled"

// Desfechos, agrupados como o comercial reporta.
const (
	// problema na ligação
	StatusCallNotAnswered  Status = "call_not_answered"
	StatusCallBusy         Status = "call_busy"
	StatusCallDisconnected Status = "call_disconnected"
	StatusInvalidNumber    Status = "invalid_number"
	StatusSwitchedOff      Status = "switched_off"

	// pediu outro horário
	StatusAskedToCallLater  Status = "asked_to_call_later"
	StatusAskedToReschedule Status = "asked_to_reschedule"
	StatusFollowUpPostponed Status = "follow_up_postponed"

	// interessado
	StatusInterestedInProgram Status = "interested_in_program"
	StatusWantsMoreDetails    Status = "wants_more_details"
	StatusDocumentsRequested  Status = "documents_requested"
	StatusVisitPlanned        Status = "visit_planned"

	// perdido
	StatusNotInterested      Status = "not_interested"
	StatusWrongEnquiry       Status = "wrong_enquiry"
	StatusBudgetMismatch     Status = "budget_mismatch"
	StatusJoinedElsewhere    Status = "joined_elsewhere"
	StatusUnresponsiveClosed Status = "unresponsive_closed"

	// convertido
	StatusConvertedToStudent   Status = "converted_to_student"
	StatusConvertedPendingDocs Status = "converted_pending_docs"
)

type OutcomeGroup string

const (
	GroupCallIssue         OutcomeGroup = "call_issue"
	GroupRescheduleRequest OutcomeGroup = "reschedule_request"
	GroupInterested        OutcomeGroup = "interested"
	GroupClosedLost        OutcomeGroup = "closed_lost"
	GroupConverted         OutcomeGroup = "converted"
)

var outcomeGroups = map[Status]OutcomeGroup{
	StatusCallNotAnswered:  GroupCallIssue,
	StatusCallBusy:         GroupCallIssue,
	StatusCallDisconnected: GroupCallIssue,
	StatusInvalidNumber:    GroupCallIssue,
	StatusSwitchedOff:      GroupCallIssue,

	StatusAskedToCallLater:  GroupRescheduleRequest,
	StatusAskedToReschedule: GroupRescheduleRequest,
	StatusFollowUpPostponed: GroupRescheduleRequest,

	StatusInterestedInProgram: GroupInterested,
	StatusWantsMoreDetails:    GroupInterested,
	StatusDocumentsRequested:  GroupInterested,
	StatusVisitPlanned:        GroupInterested,

	StatusNotInterested:      GroupClosedLost,
	StatusWrongEnquiry:       GroupClosedLost,
	StatusBudgetMismatch:     GroupClosedLost,
	StatusJoinedElsewhere:    GroupClosedLost,
	StatusUnresponsiveClosed: GroupClosedLost,

	StatusConvertedToStudent:   GroupConverted,
	StatusConvertedPendingDocs: GroupConverted,
}

// IsOutcome diz se o status é um desfecho válido de resolução.
func IsOutcome(s Status) bool {
	_, ok := outcomeGroups[s]
	return ok
}

func GroupOf(s Status) (OutcomeGroup, bool) {
	g, ok := outcomeGroups[s]
	return g, ok
}

// CanResolve valida o status alvo de um resolve. Voltar para
// scheduled nunca é legal: um novo slot só nasce via encadeamento.
func CanResolve(target Status) error {
	if target == StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	if !IsOutcome(target) {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
