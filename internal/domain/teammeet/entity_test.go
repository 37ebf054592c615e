package teammeet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

const (
	requester = uint(10)
	recipient = uint(20)
	stranger  = uint(99)
)

func pending() *models.TeamMeet {
	return &models.TeamMeet{
		ID:            1,
		RequestedByID: requester,
		RequestedToID: recipient,
		Status:        "pending_confirmation",
		ScheduledDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "14:00",
		DurationMin:   60,
		StartMinute:   840,
		Subject:       "Revisão do pipeline",
	}
}

func withStatus(status Status) *models.TeamMeet {
	tm := pending()
	tm.Status = string(status)
	return tm
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, code, be.Code)
}

// ======================================================
// ACCEPT
// ======================================================

func TestAccept(t *testing.T) {
	tm := pending()
	assert.NoError(t, Accept(tm, recipient))
	assert.Equal(t, "confirmed", tm.Status)
}

func TestAcceptOnlyRecipient(t *testing.T) {
	assertCode(t, Accept(pending(), requester), httperr.CodeNotAuthorized)
	assertCode(t, Accept(pending(), stranger), httperr.CodeNotAuthorized)
}

func TestAcceptRequiresPending(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted} {
		assertCode(t, Accept(withStatus(s), recipient), httperr.CodeInvalidTransition)
	}
}

// ======================================================
// REJECT
// ======================================================

func TestReject(t *testing.T) {
	tm := pending()
	assert.NoError(t, Reject(tm, recipient, "  conflito com plantão  "))
	assert.Equal(t, "rejected", tm.Status)
	assert.Equal(t, "conflito com plantão", tm.RejectionMessage)
}

func TestRejectRequiresMessage(t *testing.T) {
	assertCode(t, Reject(pending(), recipient, ""), httperr.CodeMissingRejectionReason)
	assertCode(t, Reject(pending(), recipient, "   "), httperr.CodeMissingRejectionReason)
}

func TestRejectOnlyRecipient(t *testing.T) {
	assertCode(t, Reject(pending(), requester, "motivo"), httperr.CodeNotAuthorized)
}

func TestRejectRequiresPending(t *testing.T) {
	assertCode(t, Reject(withStatus(StatusConfirmed), recipient, "motivo"), httperr.CodeInvalidTransition)
}

// ======================================================
// CANCEL
// ======================================================

func TestCancel(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	tm := pending()
	assert.NoError(t, Cancel(tm, requester, now))
	assert.Equal(t, "cancelled", tm.Status)
	assert.Equal(t, now, *tm.CancelledAt)
}

func TestCancelOnlyRequester(t *testing.T) {
	assertCode(t, Cancel(pending(), recipient, time.Now()), httperr.CodeNotAuthorized)
}

func TestCancelRequiresPending(t *testing.T) {
	// confirmada não cancela mais; o caminho é concluir
	assertCode(t, Cancel(withStatus(StatusConfirmed), requester, time.Now()), httperr.CodeInvalidTransition)
	assertCode(t, Cancel(withStatus(StatusRejected), requester, time.Now()), httperr.CodeInvalidTransition)
}

// ======================================================
// RESCHEDULE
// ======================================================

func TestRescheduleFromRejected(t *testing.T) {
	tm := withStatus(StatusRejected)
	tm.RejectionMessage = "conflito com plantão"

	newDate := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	err := Reschedule(tm, requester, RescheduleInput{
		Date:        newDate,
		Time:        "16:00",
		DurationMin: 30,
		StartMinute: 960,
	})

	assert.NoError(t, err)
	assert.Equal(t, "pending_confirmation", tm.Status)
	assert.Equal(t, newDate, tm.ScheduledDate)
	assert.Equal(t, "16:00", tm.ScheduledTime)
	assert.Equal(t, 30, tm.DurationMin)
	assert.Equal(t, 960, tm.StartMinute)

	// motivo da recusa anterior não sobrevive à nova proposta
	assert.Equal(t, "", tm.RejectionMessage)

	// mesma identidade, mesmas partes
	assert.Equal(t, uint(1), tm.ID)
	assert.Equal(t, requester, tm.RequestedByID)
	assert.Equal(t, recipient, tm.RequestedToID)
}

func TestRescheduleKeepsSubjectWhenBlank(t *testing.T) {
	tm := withStatus(StatusRejected)

	assert.NoError(t, Reschedule(tm, requester, RescheduleInput{
		Date:        time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Time:        "16:00",
		DurationMin: 30,
	}))
	assert.Equal(t, "Revisão do pipeline", tm.Subject)

	tm = withStatus(StatusRejected)
	assert.NoError(t, Reschedule(tm, requester, RescheduleInput{
		Date:        time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Time:        "16:00",
		DurationMin: 30,
		Subject:     "Revisão do pipeline Q4",
	}))
	assert.Equal(t, "Revisão do pipeline Q4", tm.Subject)
}

func TestRescheduleOnlyRequesterFromRejected(t *testing.T) {
	assertCode(t, Reschedule(withStatus(StatusRejected), recipient, RescheduleInput{}), httperr.CodeNotAuthorized)
	assertCode(t, Reschedule(pending(), requester, RescheduleInput{}), httperr.CodeInvalidTransition)
	assertCode(t, Reschedule(withStatus(StatusCancelled), requester, RescheduleInput{}), httperr.CodeInvalidTransition)
}

// ======================================================
// COMPLETE
// ======================================================

func TestCompleteByEitherParty(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	tm := withStatus(StatusConfirmed)
	assert.NoError(t, Complete(tm, requester, "alinhado o repasse", now))
	assert.Equal(t, "completed", tm.Status)
	assert.Equal(t, "alinhado o repasse", tm.Description)
	assert.Equal(t, now, *tm.CompletedAt)

	tm = withStatus(StatusConfirmed)
	assert.NoError(t, Complete(tm, recipient, "", now))
	assert.Equal(t, "completed", tm.Status)
}

func TestCompleteOnlyParties(t *testing.T) {
	assertCode(t, Complete(withStatus(StatusConfirmed), stranger, "", time.Now()), httperr.CodeNotAuthorized)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	assertCode(t, Complete(pending(), requester, "", time.Now()), httperr.CodeInvalidTransition)
	assertCode(t, Complete(withStatus(StatusRejected), requester, "", time.Now()), httperr.CodeInvalidTransition)
	assertCode(t, Complete(withStatus(StatusCompleted), requester, "", time.Now()), httperr.CodeInvalidTransition)
}
