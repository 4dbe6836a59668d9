package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"userboard/internal/domain"
	"userboard/internal/pkg/password"
	"userboard/internal/pkg/token"
)

// Mock user store implementing the interface
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, username, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) SetRefreshToken(ctx context.Context, id int64, tok *string) error {
	args := m.Called(ctx, id, tok)
	return args.Error(0)
}

func testService(store UserStore) *Service {
	tokens := token.New("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(store, tokens)
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		Username:        "alice",
		Email:           "alice@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	store := new(mockUserStore)
	store.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@x.com", int64(0)).Return(false, nil)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := testService(store).Register(context.Background(), registerReq())
	require.NoError(t, err)

	// Self-registration can never grant admin, and the password must be
	// stored hashed.
	created := store.Calls[1].Arguments.Get(1).(*domain.User)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.True(t, password.Check(created.PasswordHash, "secret1"))
	store.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	store := new(mockUserStore)

	req := registerReq()
	req.Email = ""
	err := testService(store).Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrMissingFields)
	store.AssertNotCalled(t, "Create")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	store := new(mockUserStore)

	req := registerReq()
	req.ConfirmPassword = "other12"
	err := testService(store).Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	store := new(mockUserStore)

	req := registerReq()
	req.Password = "abc"
	req.ConfirmPassword = "abc"
	err := testService(store).Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicatePreCheck(t *testing.T) {
	store := new(mockUserStore)
	store.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@x.com", int64(0)).Return(true, nil)

	err := testService(store).Register(context.Background(), registerReq())

	assert.ErrorIs(t, err, ErrUserExists)
	store.AssertNotCalled(t, "Create")
}

func TestRegister_DuplicateAtStorageLayer(t *testing.T) {
	// A concurrent registration slips past the advisory check; the
	// unique index rejects it and the caller sees the same conflict.
	store := new(mockUserStore)
	store.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@x.com", int64(0)).Return(false, nil)
	store.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	err := testService(store).Register(context.Background(), registerReq())

	assert.ErrorIs(t, err, ErrUserExists)
}

func storedUser(t *testing.T, plain string) *domain.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
}

func TestLogin_Success_PersistsRefreshToken(t *testing.T) {
	store := new(mockUserStore)
	store.On("GetByEmail", mock.Anything, "alice@x.com").Return(storedUser(t, "secret1"), nil)
	store.On("SetRefreshToken", mock.Anything, int64(1), mock.Anything).Return(nil)

	svc := testService(store)
	result, err := svc.Login(context.Background(), LoginRequest{Email: "alice@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, result.AccessToken, result.RefreshToken)

	// The stored value is exactly the issued refresh token.
	stored := store.Calls[1].Arguments.Get(2).(*string)
	assert.Equal(t, result.RefreshToken, *stored)
	store.AssertExpectations(t)
}

func TestLogin_UniformErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	store := new(mockUserStore)
	store.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)
	store.On("GetByEmail", mock.Anything, "alice@x.com").Return(storedUser(t, "secret1"), nil)

	svc := testService(store)

	_, errUnknown := svc.Login(context.Background(), LoginRequest{Email: "ghost@x.com", Password: "whatever"})
	_, errWrongPw := svc.Login(context.Background(), LoginRequest{Email: "alice@x.com", Password: "wrong-password"})

	// Enumeration resistance: identical error either way.
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	store.AssertNotCalled(t, "SetRefreshToken")
}

func TestRefresh_SucceedsOnlyWhenStoredValueMatches(t *testing.T) {
	tokens := token.New("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	refresh, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	user := storedUser(t, "secret1")
	user.RefreshToken = &refresh

	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, int64(1)).Return(user, nil)

	svc := NewService(store, tokens)
	access, err := svc.Refresh(context.Background(), refresh)

	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefresh_RejectsSupersededToken(t *testing.T) {
	// Cryptographically valid but overwritten by a later login.
	tokens := token.New("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	oldRefresh, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	newer := "newer-refresh-token"
	user := storedUser(t, "secret1")
	user.RefreshToken = &newer

	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, int64(1)).Return(user, nil)

	svc := NewService(store, tokens)
	_, err = svc.Refresh(context.Background(), oldRefresh)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_RejectsWhenNoStoredToken(t *testing.T) {
	tokens := token.New("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	refresh, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, int64(1)).Return(storedUser(t, "secret1"), nil)

	svc := NewService(store, tokens)
	_, err = svc.Refresh(context.Background(), refresh)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	store := new(mockUserStore)

	_, err := testService(store).Refresh(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	store.AssertNotCalled(t, "GetByID")
}

func TestRefresh_RejectsDeletedUser(t *testing.T) {
	tokens := token.New("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	refresh, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(store, tokens)
	_, err = svc.Refresh(context.Background(), refresh)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_ClearsStoredToken(t *testing.T) {
	tokens := token.New("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	refresh, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	store := new(mockUserStore)
	store.On("SetRefreshToken", mock.Anything, int64(1), (*string)(nil)).Return(nil)

	svc := NewService(store, tokens)
	require.NoError(t, svc.Logout(context.Background(), refresh))
	store.AssertExpectations(t)
}

func TestLogout_BestEffortOnInvalidToken(t *testing.T) {
	store := new(mockUserStore)

	// Verification failure is not an error; cookies are cleared by the
	// handler regardless.
	err := testService(store).Logout(context.Background(), "garbage")

	assert.NoError(t, err)
	store.AssertNotCalled(t, "SetRefreshToken")
}
