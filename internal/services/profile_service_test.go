package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	cacheSvc *MockCacheService
	service  ProfileService
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.userRepo = &MockUserRepository{}
	suite.cacheSvc = &MockCacheService{}
	suite.service = NewProfileService(suite.userRepo, suite.cacheSvc, zerolog.Nop())

	suite.userRepo.Test(suite.T())
	suite.cacheSvc.Test(suite.T())
}

func (suite *ProfileServiceTestSuite) TearDownTest() {
	suite.userRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func (suite *ProfileServiceTestSuite) TestGetProfileByUID_CacheHit() {
	ctx := context.Background()
	cached := &models.UserProfile{ID: uuid.New(), ExternalUID: "uid-1", Role: models.RoleAgent}

	suite.cacheSvc.On("GetProfile", ctx, "uid-1").Return(cached, nil)

	profile, err := suite.service.GetProfileByUID(ctx, "uid-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, profile)
	suite.userRepo.AssertNotCalled(suite.T(), "GetByExternalUID", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestGetProfileByUID_MissingIsNilNil() {
	ctx := context.Background()

	suite.cacheSvc.On("GetProfile", ctx, "uid-2").Return(nil, errors.New("cache miss"))
	suite.userRepo.On("GetByExternalUID", ctx, "uid-2").Return(nil, repositories.ErrNotFound)

	profile, err := suite.service.GetProfileByUID(ctx, "uid-2")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), profile)
}

func (suite *ProfileServiceTestSuite) TestGetProfileByUID_RepoErrorPropagates() {
	ctx := context.Background()

	suite.cacheSvc.On("GetProfile", ctx, "uid-3").Return(nil, errors.New("cache miss"))
	suite.userRepo.On("GetByExternalUID", ctx, "uid-3").Return(nil, errors.New("connection reset"))

	profile, err := suite.service.GetProfileByUID(ctx, "uid-3")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), profile)
}

func (suite *ProfileServiceTestSuite) TestGetProfileByUID_CachesOnMiss() {
	ctx := context.Background()
	stored := &models.UserProfile{ID: uuid.New(), ExternalUID: "uid-4", Role: models.RoleTenant}

	suite.cacheSvc.On("GetProfile", ctx, "uid-4").Return(nil, errors.New("cache miss"))
	suite.userRepo.On("GetByExternalUID", ctx, "uid-4").Return(stored, nil)
	suite.cacheSvc.On("SetProfile", ctx, stored, profileCacheTTL).Return(nil)

	profile, err := suite.service.GetProfileByUID(ctx, "uid-4")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, profile)
}

func (suite *ProfileServiceTestSuite) TestUpdateRole_InvalidatesCache() {
	ctx := context.Background()
	id := uuid.New()
	profile := &models.UserProfile{ID: id, ExternalUID: "uid-5", Role: models.RoleViewer}

	suite.userRepo.On("GetByID", ctx, id).Return(profile, nil)
	suite.userRepo.On("Update", ctx, mock.AnythingOfType("*models.UserProfile")).Return(nil)
	suite.cacheSvc.On("DeleteProfile", ctx, "uid-5").Return(nil)

	err := suite.service.UpdateRole(ctx, id, models.RoleAgent)
	assert.NoError(suite.T(), err)
}

func (suite *ProfileServiceTestSuite) TestUpdateRole_RejectsUnknownRole() {
	err := suite.service.UpdateRole(context.Background(), uuid.New(), "superuser")
	assert.Error(suite.T(), err)
}

func (suite *ProfileServiceTestSuite) TestCreate_RejectsInvalidRole() {
	_, err := suite.service.Create(context.Background(), &CreateProfileRequest{
		ExternalUID: "uid-6",
		Email:       "someone@example.com",
		Role:        "owner",
	})
	assert.Error(suite.T(), err)
}
