package usecase

import (
	"testing"

	"fanvault/pkg/logger"
	"fanvault/services/admin/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockModerationRepository struct {
	mock.Mock
}

func (m *MockModerationRepository) GetByID(id string) (*entity.ModeratedPost, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ModeratedPost), args.Error(1)
}

func (m *MockModerationRepository) ListByStatus(status entity.PostStatus, limit, offset int) ([]*entity.ModeratedPost, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ModeratedPost), args.Error(1)
}

func (m *MockModerationRepository) Resolve(id string, status entity.PostStatus, rejectReason string) (bool, error) {
	args := m.Called(id, status, rejectReason)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) Remove(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) CountByStatus(status entity.PostStatus) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) GetFeePercent() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockSettingRepository) SetFeePercent(percent int) error {
	args := m.Called(percent)
	return args.Error(0)
}

func newAdminUseCase() (AdminUseCase, *MockModerationRepository, *MockSettingRepository) {
	moderationRepo := new(MockModerationRepository)
	settingRepo := new(MockSettingRepository)
	uc := NewAdminUseCase(moderationRepo, settingRepo, nil, logger.New())
	return uc, moderationRepo, settingRepo
}

func TestApprovePost(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("Resolve", "post-1", entity.StatusApproved, "").Return(true, nil)

	assert.NoError(t, uc.ApprovePost("post-1", "mod-1"))
	moderationRepo.AssertExpectations(t)
}

func TestApprovePost_AlreadyRejected(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("Resolve", "post-1", entity.StatusApproved, "").Return(false, nil)
	moderationRepo.On("GetByID", "post-1").Return(&entity.ModeratedPost{
		ID: "post-1", Status: entity.StatusRejected,
	}, nil)

	assert.ErrorIs(t, uc.ApprovePost("post-1", "mod-1"), entity.ErrAlreadyResolved)
}

func TestApprovePost_SameDecisionConverges(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("Resolve", "post-1", entity.StatusApproved, "").Return(false, nil)
	moderationRepo.On("GetByID", "post-1").Return(&entity.ModeratedPost{
		ID: "post-1", Status: entity.StatusApproved,
	}, nil)

	assert.NoError(t, uc.ApprovePost("post-1", "mod-1"))
}

func TestRejectPost_RequiresReason(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	assert.Error(t, uc.RejectPost("post-1", "mod-1", ""))
	assert.Error(t, uc.RejectPost("post-1", "mod-1", "   "))
	moderationRepo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectPost(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("Resolve", "post-1", entity.StatusRejected, "contains prohibited content").Return(true, nil)

	assert.NoError(t, uc.RejectPost("post-1", "mod-1", "contains prohibited content"))
	moderationRepo.AssertExpectations(t)
}

func TestRemovePost(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("Remove", "post-1").Return(true, nil)
	assert.NoError(t, uc.RemovePost("post-1", "mod-1"))

	moderationRepo.On("Remove", "post-2").Return(false, nil)
	moderationRepo.On("GetByID", "post-2").Return(&entity.ModeratedPost{
		ID: "post-2", Status: entity.StatusPending,
	}, nil)
	assert.ErrorIs(t, uc.RemovePost("post-2", "mod-1"), entity.ErrAlreadyResolved)
}

func TestSetPlatformFee_Bounds(t *testing.T) {
	uc, _, settingRepo := newAdminUseCase()

	assert.ErrorIs(t, uc.SetPlatformFee(-1), entity.ErrInvalidFee)
	assert.ErrorIs(t, uc.SetPlatformFee(101), entity.ErrInvalidFee)
	settingRepo.AssertNotCalled(t, "SetFeePercent", mock.Anything)

	settingRepo.On("SetFeePercent", 0).Return(nil)
	settingRepo.On("SetFeePercent", 100).Return(nil)
	settingRepo.On("SetFeePercent", 20).Return(nil)
	assert.NoError(t, uc.SetPlatformFee(0))
	assert.NoError(t, uc.SetPlatformFee(100))
	assert.NoError(t, uc.SetPlatformFee(20))
}

func TestGetStats(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("CountByStatus", entity.StatusPending).Return(int64(3), nil)
	moderationRepo.On("CountByStatus", entity.StatusApproved).Return(int64(40), nil)
	moderationRepo.On("CountByStatus", entity.StatusRejected).Return(int64(5), nil)
	moderationRepo.On("CountByStatus", entity.StatusRemoved).Return(int64(1), nil)

	stats, err := uc.GetStats()

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(40), stats.Approved)
	assert.Equal(t, int64(5), stats.Rejected)
	assert.Equal(t, int64(1), stats.Removed)
}

func TestListPending_ClampsLimit(t *testing.T) {
	uc, moderationRepo, _ := newAdminUseCase()

	moderationRepo.On("ListByStatus", entity.StatusPending, 20, 0).Return([]*entity.ModeratedPost{}, nil)

	_, err := uc.ListPending(0, 0)
	assert.NoError(t, err)
	moderationRepo.AssertCalled(t, "ListByStatus", entity.StatusPending, 20, 0)
}
