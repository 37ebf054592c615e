package followup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
	ucschedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
)

// MockFollowUpRepository
type MockFollowUpRepository struct {
	mock.Mock
}

func (m *MockFollowUpRepository) GetLeadByID(ctx context.Context, id uint) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockFollowUpRepository) GetFollowUpByID(ctx context.Context, id uint) (*models.FollowUp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FollowUp), args.Error(1)
}

func (m *MockFollowUpRepository) ListFollowUpsForLead(ctx context.Context, leadID uint) ([]models.FollowUp, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FollowUp), args.Error(1)
}

func (m *MockFollowUpRepository) MaxFollowUpNumber(ctx context.Context, leadID uint) (int, error) {
	args := m.Called(ctx, leadID)
	return args.Int(0), args.Error(1)
}

func (m *MockFollowUpRepository) HasScheduledFollowUp(ctx context.Context, leadID uint) (bool, error) {
	args := m.Called(ctx, leadID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowUpRepository) CreateFollowUp(ctx context.Context, f *models.FollowUp) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFollowUpRepository) ResolveFollowUp(ctx context.Context, f *models.FollowUp, newLeadStage string, next *models.FollowUp) error {
	args := m.Called(ctx, f, newLeadStage, next)
	return args.Error(0)
}

// MockScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockScheduleRepository) ListActiveBookings(ctx context.Context, personID uint, date time.Time) ([]schedule.Booking, error) {
	args := m.Called(ctx, personID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Booking), args.Error(1)
}

func (m *MockScheduleRepository) ListScheduledFollowUps(ctx context.Context, counselorID uint) ([]models.FollowUp, error) {
	args := m.Called(ctx, counselorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FollowUp), args.Error(1)
}

func (m *MockScheduleRepository) ListTeamMeetsForOverview(ctx context.Context, personID uint) ([]models.TeamMeet, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamMeet), args.Error(1)
}

// ======================================================
// CREATE
// ======================================================

func testDate() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func newCreateUC(repo *MockFollowUpRepository, sched *MockScheduleRepository) *CreateFollowUp {
	return NewCreateFollowUp(repo, ucschedule.NewCheckAvailability(sched), nil, nil)
}

func TestCreateFollowUpSuccess(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	lead := &models.Lead{ID: 1, CounselorID: 7, Stage: "interested"}

	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	repo.On("HasScheduledFollowUp", mock.Anything, uint(1)).Return(false, nil)
	sched.On("ListActiveBookings", mock.Anything, uint(7), testDate()).Return([]schedule.Booking{}, nil)
	repo.On("CreateFollowUp", mock.Anything, mock.AnythingOfType("*models.FollowUp")).Return(nil)

	f, err := newCreateUC(repo, sched).Execute(context.Background(), CreateFollowUpInput{
		LeadID:      1,
		Date:        testDate(),
		Time:        "14:00",
		DurationMin: 60,
		MeetingType: "online",
		ActorID:     7,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(7), f.CounselorID)
	assert.Equal(t, "scheduled", f.Status)
	assert.Equal(t, 840, f.StartMinute)

	// snapshot do estágio no momento da criação
	assert.Equal(t, "interested", f.StageAtFollowUp)

	repo.AssertExpectations(t)
	sched.AssertExpectations(t)
}

func TestCreateFollowUpLeadRuleBeforeSlotRule(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	lead := &models.Lead{ID: 1, CounselorID: 7}

	// o lead já tem follow-up ativo E o slot conflita: a regra
	// do lead responde primeiro, sem nem consultar a agenda
	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	repo.On("HasScheduledFollowUp", mock.Anything, uint(1)).Return(true, nil)

	_, err := newCreateUC(repo, sched).Execute(context.Background(), CreateFollowUpInput{
		LeadID:      1,
		Date:        testDate(),
		Time:        "14:00",
		DurationMin: 60,
		ActorID:     7,
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeActiveFollowUpExists, be.Code)

	sched.AssertNotCalled(t, "ListActiveBookings", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateFollowUp", mock.Anything, mock.Anything)
}

func TestCreateFollowUpSlotConflict(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	lead := &models.Lead{ID: 1, CounselorID: 7}
	busy := schedule.Booking{
		Kind: schedule.KindTeamMeet,
		ID:   3,
		Slot: schedule.NewSlot(testDate(), "14:30", 60),
	}

	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(lead, nil)
	repo.On("HasScheduledFollowUp", mock.Anything, uint(1)).Return(false, nil)
	sched.On("ListActiveBookings", mock.Anything, uint(7), testDate()).Return([]schedule.Booking{busy}, nil)

	_, err := newCreateUC(repo, sched).Execute(context.Background(), CreateFollowUpInput{
		LeadID:      1,
		Date:        testDate(),
		Time:        "14:00",
		DurationMin: 60,
		ActorID:     7,
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeSlotUnavailable, be.Code)

	// a mensagem diz a que horas está o conflito
	assert.Contains(t, be.Message, "14:30")

	repo.AssertNotCalled(t, "CreateFollowUp", mock.Anything, mock.Anything)
}

func TestCreateFollowUpLeadNotFound(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	repo.On("GetLeadByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := newCreateUC(repo, sched).Execute(context.Background(), CreateFollowUpInput{
		LeadID:      99,
		Date:        testDate(),
		Time:        "14:00",
		DurationMin: 60,
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeLeadNotFound, be.Code)
}

func TestCreateFollowUpInvalidSlot(t *testing.T) {
	repo := new(MockFollowUpRepository)
	sched := new(MockScheduleRepository)

	repo.On("GetLeadByID", mock.Anything, uint(1)).Return(&models.Lead{ID: 1, CounselorID: 7}, nil)

	_, err := newCreateUC(repo, sched).Execute(context.Background(), CreateFollowUpInput{
		LeadID:      1,
		Date:        testDate(),
		Time:        "14:00",
		DurationMin: 0,
	})

	be, ok := httperr.AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid_slot", be.Code)
}
