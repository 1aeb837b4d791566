package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ecommerce/internal/domain"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	f.nextID++
	clone := *user
	clone.ID = f.nextID
	f.users[f.nextID] = &clone
	return f.nextID, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func newUserFixture() (UserService, *fakeUserRepo) {
	repo := &fakeUserRepo{users: map[int64]*domain.User{}}
	return NewUserService(repo, zap.NewNop()), repo
}

func registerRequest() *RegisterUserRequest {
	return &RegisterUserRequest{
		Name:        "Jin",
		Email:       "jin@example.com",
		Password:    "s3cret-pass",
		PhoneNumber: "010-1234-5678",
		Role:        "CUSTOMER",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	service, repo := newUserFixture()

	userID, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	stored := repo.users[userID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _ := newUserFixture()

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	service, _ := newUserFixture()

	req := registerRequest()
	req.Email = ""
	_, err := service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidUser)

	req = registerRequest()
	req.Password = ""
	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestGetUser(t *testing.T) {
	service, _ := newUserFixture()

	userID, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	res, err := service.GetUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "jin@example.com", res.Email)
	assert.Equal(t, "CUSTOMER", res.Role)

	_, err = service.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
