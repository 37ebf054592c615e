package followup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
	ucschedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
)

func newResolveUC(repo *MockFollowUpRepository, sched *MockScheduleRepository) *ResolveFollowUp {
	return NewResolveFollowUp(repo, ucschedule.NewCheckAvailability(sched), nil, nil)
}

func scheduledFollowUp(id uint, number int) *models.FollowUp {
	return &models.FollowUp{
		ID:             id,
		LeadID:         1,
		CounselorID:    7,
		ScheduledDate:  testDate(),
		ScheduledTime:  "14:00",
		DurationMin:    60,
		StartMinute:    840,
		Status:         "scheduled",
		FollowUpNumber: number,
	}
}

func TestResolveFollowUpSuccess(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	f := scheduledFollowUp(5, 2)
	lead := &models.Lead{ID: 1, CounselorID: 7, Stage: "interested"}

	repo.On("GetFollowUpByID", mock.Anything, uint(5)).Return(f, nil)
	repo.On("MaxFollowUpNumber", mock.Anything, uint(1)).Return(2, nil)
	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	repo.On("ResolveFollowUp", mock.Anything, f, "negotiating", (*models.FollowUp)(nil)).Return(nil)

	out, err := newResolveUC(repo, sched).Execute(context.Background(), ResolveFollowUpInput{
		FollowUpID:     5,
		Status:         "wants_more_details",
		Notes:          "pediu proposta",
		StageChangedTo: "negotiating",
		ActorID:        7,
	})

	assert.NoError(t, err)
	assert.Equal(t, "wants_more_details", out.Status)
	assert.NotNil(t, out.CompletedAt)

	repo.AssertExpectations(t)
}

func TestResolveFollowUpLockedWhenNotLatest(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	// follow-up #1 de um lead que já está no #2
	f := scheduledFollowUp(5, 1)

	repo.On("GetFollowUpByID", mock.Anything, uint(5)).Return(f, nil)
	repo.On("MaxFollowUpNumber", mock.Anything, uint(1)).Return(2, nil)

	_, err := newResolveUC(repo, sched).Execute(context.Background(), ResolveFollowUpInput{
		FollowUpID: 5,
		Status:     "not_interested",
		ActorID:    7,
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeFollowUpLocked, be.Code)

	repo.AssertNotCalled(t, "ResolveFollowUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFollowUpWithChainedNext(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	f := scheduledFollowUp(5, 1)
	lead := &models.Lead{ID: 1, CounselorID: 7, Stage: "interested"}

	// a agenda do consultor contém o próprio follow-up sendo
	// resolvido; o sucessor pode reusar exatamente esse horário
	ownBooking := schedule.Booking{
		Kind: schedule.KindFollowUp,
		ID:   5,
		Slot: schedule.NewSlot(testDate(), "14:00", 60),
	}

	repo.On("GetFollowUpByID", mock.Anything, uint(5)).Return(f, nil)
	repo.On("MaxFollowUpNumber", mock.Anything, uint(1)).Return(1, nil)
	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	sched.On("ListActiveBookings", mock.Anything, uint(7), testDate()).Return([]schedule.Booking{ownBooking}, nil)
	repo.On("ResolveFollowUp", mock.Anything, f, "negotiating", mock.AnythingOfType("*models.FollowUp")).Return(nil)

	_, err := newResolveUC(repo, sched).Execute(context.Background(), ResolveFollowUpInput{
		FollowUpID:     5,
		Status:         "asked_to_reschedule",
		StageChangedTo: "negotiating",
		ActorID:        7,
		Next: &NextFollowUpInput{
			Date:        testDate(),
			Time:        "14:00",
			DurationMin: 60,
			MeetingType: "online",
		},
	})

	assert.NoError(t, err)

	// o sucessor herda lead/consultor e nasce agendado, com o
	// snapshot de estágio já migrado
	next := repo.Calls[len(repo.Calls)-1].Arguments.Get(3).(*models.FollowUp)
	assert.Equal(t, uint(1), next.LeadID)
	assert.Equal(t, uint(7), next.CounselorID)
	assert.Equal(t, "scheduled", next.Status)
	assert.Equal(t, "negotiating", next.StageAtFollowUp)

	repo.AssertExpectations(t)
	sched.AssertExpectations(t)
}

func TestResolveFollowUpNextSlotConflict(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	f := scheduledFollowUp(5, 1)
	lead := &models.Lead{ID: 1, CounselorID: 7, Stage: "interested"}

	other := schedule.Booking{
		Kind: schedule.KindTeamMeet,
		ID:   9,
		Slot: schedule.NewSlot(testDate(), "16:00", 60),
	}

	repo.On("GetFollowUpByID", mock.Anything, uint(5)).Return(f, nil)
	repo.On("MaxFollowUpNumber", mock.Anything, uint(1)).Return(1, nil)
	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	sched.On("ListActiveBookings", mock.Anything, uint(7), testDate()).Return([]schedule.Booking{other}, nil)

	_, err := newResolveUC(repo, sched).Execute(context.Background(), ResolveFollowUpInput{
		FollowUpID: 5,
		Status:     "asked_to_reschedule",
		ActorID:    7,
		Next: &NextFollowUpInput{
			Date:        testDate(),
			Time:        "16:30",
			DurationMin: 60,
		},
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeSlotUnavailable, be.Code)

	// nada persistido: ou tudo, ou nada
	repo.AssertNotCalled(t, "ResolveFollowUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFollowUpStageLockedForcesConverted(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	f := scheduledFollowUp(5, 1)
	lead := &models.Lead{ID: 1, CounselorID: 7, Stage: "converted", ConversionApproved: true}

	repo.On("GetFollowUpByID", mock.Anything, uint(5)).Return(f, nil)
	repo.On("MaxFollowUpNumber", mock.Anything, uint(1)).Return(1, nil)
	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	repo.On("ResolveFollowUp", mock.Anything, f, "", (*models.FollowUp)(nil)).Return(nil)

	out, err := newResolveUC(repo, sched).Execute(context.Background(), ResolveFollowUpInput{
		FollowUpID:     5,
		Status:         "not_interested",
		StageChangedTo: "new",
		ActorID:        7,
	})

	assert.NoError(t, err)
	assert.Equal(t, "converted_to_student", out.Status)
	assert.Equal(t, "", out.StageChangedTo)

	repo.AssertExpectations(t)
}

func TestResolveFollowUpNotFound(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	repo.On("GetFollowUpByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := newResolveUC(repo, sched).Execute(context.Background(), ResolveFollowUpInput{
		FollowUpID: 404,
		Status:     "not_interested",
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, "follow_up_not_found", be.Code)
}
