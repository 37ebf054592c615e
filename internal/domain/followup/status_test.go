package followup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
)

func TestCanResolveRejectsScheduled(t *testing.T) {
	err := CanResolve(StatusScheduled)
	assert.Error(t, err)

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeInvalidTransition, be.Code)
}

func TestCanResolveRejectsUnknownStatus(t *testing.T) {
	err := CanResolve(Status("on_vacation"))
	assert.Error(t, err)

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeInvalidTransition, be.Code)
}

func TestCanResolveAcceptsEveryOutcome(t *testing.T) {
	for status := range outcomeGroups {
		assert.NoError(t, CanResolve(status), "outcome %s", status)
	}
}

func TestGroupOf(t *testing.T) {
	cases := map[Status]OutcomeGroup{
		StatusCallBusy:             GroupCallIssue,
		StatusAskedToReschedule:    GroupRescheduleRequest,
		StatusWantsMoreDetails:     GroupInterested,
		StatusNotInterested:        GroupClosedLost,
		StatusConvertedToStudent:   GroupConverted,
		StatusConvertedPendingDocs: GroupConverted,
	}

	for status, want := range cases {
		got, ok := GroupOf(status)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := GroupOf(StatusScheduled)
	assert.False(t, ok)
}
