package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/security"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60, 60*24)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	admin := &domain.User{ID: 1, Email: "admin@example.com", PasswordHash: string(hash), Role: "admin"}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "admin@example.com").Return(admin, nil)

		access, refresh, user, err := svc.Login(ctx, "admin@example.com", "correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, int64(1), user.ID)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "admin@example.com").Return(admin, nil)

		_, _, _, err := svc.Login(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.NotFoundError("user"))

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60, 60*24)
	admin := &domain.User{ID: 1, Email: "admin@example.com", Role: "admin"}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		refresh, err := tokens.GenerateRefreshToken(1, "admin@example.com")
		assert.NoError(t, err)

		userRepo.On("GetByID", ctx, int64(1)).Return(admin, nil)

		access, newRefresh, err := svc.Refresh(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		access, err := tokens.GenerateAccessToken(1, "admin@example.com", "admin")
		assert.NoError(t, err)

		_, _, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("DeletedAccount", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		refresh, err := tokens.GenerateRefreshToken(2, "gone@example.com")
		assert.NoError(t, err)

		userRepo.On("GetByID", ctx, int64(2)).Return(nil, domain.NotFoundError("user"))

		_, _, err = svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
