package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/core/services"
	"github.com/superhostingvip/portal_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "u1", Username: "alice", PasswordHash: hash, Role: domain.RoleAdmin}

	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	result, err := suite.service.Authenticate(ctx, "alice", "s3cret")

	suite.Require().NoError(err)
	suite.Equal(user, result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "u1", Username: "alice", PasswordHash: hash}

	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	result, err := suite.service.Authenticate(ctx, "alice", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(result)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUserLooksLikeBadPassword() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
}

func (suite *UserServiceTestSuite) TestAuthenticate_MissingCredentials() {
	ctx := context.Background()

	_, err := suite.service.Authenticate(ctx, "", "s3cret")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Authenticate(ctx, "alice", "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPasswordAndParsesRole() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "bob" &&
			u.Role == domain.RoleAdmin &&
			u.PasswordHash != "s3cretpass" &&
			utils.CheckPasswordHash("s3cretpass", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, "bob", "s3cretpass", "Bob", "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, user.Role)
	suite.NotEmpty(user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRoleDefaultsToUser() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleUser
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, "carol", "s3cretpass", "Carol", "operator")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleUser, user.Role)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, "bob", "s3cretpass", "Bob", "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
