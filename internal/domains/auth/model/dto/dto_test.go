package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ComfortN/restaurent-cms/infras/jwt"
	"github.com/ComfortN/restaurent-cms/internal/domains/auth/model/dto"
	"github.com/ComfortN/restaurent-cms/shared/constant"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "plaintext",
		FCMToken: "device-token",
	}

	user := req.ToUserModel("hashed-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, req.Name, user.Name)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, constant.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.True(t, user.FCMToken.Valid)
	assert.Equal(t, "device-token", user.FCMToken.String)
	assert.Equal(t, user.ID, user.CreatedBy)
}

func TestRegisterRequest_ToUserModelWithoutFCMToken(t *testing.T) {
	req := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "plaintext",
	}

	user := req.ToUserModel("hashed-password")

	assert.False(t, user.FCMToken.Valid)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}
