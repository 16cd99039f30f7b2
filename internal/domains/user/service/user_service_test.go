package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"writerdesk-backend/internal/domains/user"
	"writerdesk-backend/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	email := strings.ToLower(u.Email)
	if _, ok := f.byEmail[email]; ok {
		return nil, user.ErrEmailAlreadyExists
	}

	created := *u
	created.ID = uuid.New()
	created.Email = email
	created.IsActive = true
	created.CreatedAt = time.Now()

	f.byEmail[email] = &created
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func newTestService() (user.Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewUserService(repo, tokens, time.Hour), repo
}

func registerRequest() *user.RegisterRequest {
	return &user.RegisterRequest{
		Email:     "writer@example.com",
		Username:  "writer",
		Password:  "correct horse battery",
		FirstName: "Alex",
		LastName:  "Writer",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	stored := repo.byEmail["writer@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.PasswordHash), []byte("correct horse battery")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Username = "other"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	req := registerRequest()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "writer@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "writer@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Email:    "writer@example.com",
		Password: "not the password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	repo.byEmail["writer@example.com"].IsActive = false

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Email:    "writer@example.com",
		Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "writer", profile.Username)
}
