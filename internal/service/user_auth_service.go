package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/cache"
	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid 令牌无效
var ErrTokenInvalid = errors.New("token invalid")

// UserJWTClaims 身份服务签发的用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserAuthService 校验外部签发的用户令牌并维护本地用户镜像
type UserAuthService struct {
	cfg      config.JWTConfig
	userRepo repository.UserRepository
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg config.JWTConfig, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo}
}

// GenerateUserJWT 签发用户令牌，供种子数据与测试使用
func (s *UserAuthService) GenerateUserJWT(user *models.User, expireHours int) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, ErrInvalidRequest
	}
	if expireHours <= 0 {
		expireHours = s.cfg.ExpireHours
	}
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	role := strings.TrimSpace(user.Role)
	if role == "" {
		role = constants.UserRoleBuyer
	}
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析并校验 HS256 用户令牌
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer := strings.TrimSpace(s.cfg.Issuer); issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ResolveAuthState 根据令牌声明获取鉴权快照
// 本地镜像存在时以镜像角色为准，首次访问按声明写入镜像
func (s *UserAuthService) ResolveAuthState(ctx context.Context, claims *UserJWTClaims) (*cache.UserAuthState, error) {
	if claims == nil || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	if state, hit, err := cache.GetUserAuthState(ctx, claims.UserID); err == nil && hit && state != nil {
		return state, nil
	} else if err != nil {
		logger.Warnw("user_auth_state_cache_read_failed", "user_id", claims.UserID, "error", err)
	}

	role := strings.TrimSpace(claims.Role)
	if role == "" {
		role = constants.UserRoleBuyer
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		email = fmt.Sprintf("user-%d@identity.invalid", claims.UserID)
	}
	user, err := s.userRepo.EnsureMirror(&models.User{
		ID:     claims.UserID,
		Email:  email,
		Role:   role,
		Status: constants.UserStatusActive,
	})
	if err != nil {
		return nil, err
	}
	state := cache.BuildUserAuthState(user)
	if err := cache.SetUserAuthState(ctx, state); err != nil {
		logger.Warnw("user_auth_state_cache_write_failed", "user_id", claims.UserID, "error", err)
	}
	return state, nil
}
