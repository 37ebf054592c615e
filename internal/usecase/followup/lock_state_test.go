package followup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexconsult/crm-scheduler/internal/models"
)

func TestGetLockStateLatestIsEditable(t *testing.T) {
	repo := new(MockFollowUpRepository)

	f := scheduledFollowUp(6, 2)
	history := []models.FollowUp{*scheduledFollowUp(5, 1), *f}

	repo.On("GetFollowUpByID", mock.Anything, uint(6)).Return(f, nil)
	repo.On("ListFollowUpsForLead", mock.Anything, uint(1)).Return(history, nil)

	state, err := NewGetLockState(repo).Execute(context.Background(), 6)

	assert.NoError(t, err)
	assert.True(t, state.Editable)
	assert.Nil(t, state.NextFollowUp)
}

func TestGetLockStateOldPointsToSuccessor(t *testing.T) {
	repo := new(MockFollowUpRepository)

	old := scheduledFollowUp(5, 1)
	old.Status = "asked_to_reschedule"
	latest := scheduledFollowUp(6, 2)

	repo.On("GetFollowUpByID", mock.Anything, uint(5)).Return(old, nil)
	repo.On("ListFollowUpsForLead", mock.Anything, uint(1)).Return([]models.FollowUp{*old, *latest}, nil)

	state, err := NewGetLockState(repo).Execute(context.Background(), 5)

	assert.NoError(t, err)
	assert.False(t, state.Editable)

	// o bloqueado aponta para quem o bloqueou
	assert.NotNil(t, state.NextFollowUp)
	assert.Equal(t, uint(6), state.NextFollowUp.ID)
	assert.Equal(t, 2, state.NextFollowUp.FollowUpNumber)
}

func TestListByLeadMarksOnlyLatestEditable(t *testing.T) {
	repo := new(MockFollowUpRepository)

	history := []models.FollowUp{
		*scheduledFollowUp(5, 1),
		*scheduledFollowUp(6, 2),
		*scheduledFollowUp(7, 3),
	}

	repo.On("ListFollowUpsForLead", mock.Anything, uint(1)).Return(history, nil)

	out, err := NewListByLead(repo).Execute(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, out, 3)
	assert.False(t, out[0].Editable)
	assert.False(t, out[1].Editable)
	assert.True(t, out[2].Editable)
}
