package service

import (
	"context"
	"testing"

	"gitscout-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana Developer",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", reg.Email)

	// Stored hash never equals the raw password.
	assert.NotEqual(t, "hunter2hunter2", uow.users.byEmail["dana@example.com"].PasswordHash)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, reg.Id, login.User.Id)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana Developer",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Other Dana",
		Email:    "dana@example.com",
		Password: "different-password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana Developer",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidLogin)
}
