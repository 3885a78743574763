package service

import (
	"context"
	"testing"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJWTRoundTrip(t *testing.T) {
	svc := NewUserAuthService(config.JWTConfig{SecretKey: "identity-secret", Issuer: "bazaar-identity"}, nil)

	token, expiresAt, err := svc.GenerateUserJWT(&models.User{ID: 11, Email: "buyer@example.com"}, 1)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.ParseUserJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(11), claims.UserID)
	assert.Equal(t, constants.UserRoleBuyer, claims.Role)

	other := NewUserAuthService(config.JWTConfig{SecretKey: "other-secret", Issuer: "bazaar-identity"}, nil)
	_, err = other.ParseUserJWT(token)
	assert.Error(t, err)

	wrongIssuer := NewUserAuthService(config.JWTConfig{SecretKey: "identity-secret", Issuer: "someone-else"}, nil)
	_, err = wrongIssuer.ParseUserJWT(token)
	assert.Error(t, err)
}

func TestResolveAuthStateMirrorsUser(t *testing.T) {
	env := setupServiceTest(t)
	users := repository.NewUserRepository(env.db)
	svc := NewUserAuthService(config.JWTConfig{SecretKey: "identity-secret"}, users)

	state, err := svc.ResolveAuthState(context.Background(), &UserJWTClaims{UserID: 21, Email: "New@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, constants.UserRoleBuyer, state.Role)
	assert.Equal(t, constants.UserStatusActive, state.Status)

	mirrored, err := users.GetByID(21)
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, "new@example.com", mirrored.Email)

	// 本地角色优先于令牌声明
	require.NoError(t, users.UpdateRole(21, constants.UserRoleSupplier))
	state, err = svc.ResolveAuthState(context.Background(), &UserJWTClaims{UserID: 21, Role: constants.UserRoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, constants.UserRoleSupplier, state.Role)

	_, err = svc.ResolveAuthState(context.Background(), &UserJWTClaims{})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCaptchaSceneSwitches(t *testing.T) {
	disabled := NewCaptchaService(config.CaptchaConfig{})
	assert.NoError(t, disabled.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{}))
	_, err := disabled.GenerateImageChallenge()
	assert.ErrorIs(t, err, ErrCaptchaConfigInvalid)

	svc := NewCaptchaService(config.CaptchaConfig{
		Enabled: true,
		Scenes:  config.CaptchaSceneConfig{GuestEnquiry: true},
	})
	assert.True(t, svc.IsSceneEnabled(constants.CaptchaSceneGuestEnquiry))
	assert.False(t, svc.IsSceneEnabled(constants.CaptchaSceneSupplierApply))
	assert.NoError(t, svc.Verify(constants.CaptchaSceneSupplierApply, CaptchaVerifyPayload{}))
	assert.ErrorIs(t, svc.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{}), ErrCaptchaRequired)

	challenge, err := svc.GenerateImageChallenge()
	require.NoError(t, err)
	require.NotEmpty(t, challenge.CaptchaID)
	assert.NotEmpty(t, challenge.ImageBase64)

	assert.ErrorIs(t, svc.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{
		CaptchaID:   challenge.CaptchaID,
		CaptchaCode: "0000",
	}), ErrCaptchaInvalid)

	// 校验失败同样会消耗验证码，重新生成一个
	challenge, err = svc.GenerateImageChallenge()
	require.NoError(t, err)
	answer := svc.imageStore().Get(challenge.CaptchaID, false)
	require.NotEmpty(t, answer)
	assert.NoError(t, svc.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{
		CaptchaID:   challenge.CaptchaID,
		CaptchaCode: answer,
	}))
	assert.ErrorIs(t, svc.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{
		CaptchaID:   challenge.CaptchaID,
		CaptchaCode: answer,
	}), ErrCaptchaInvalid)
}
