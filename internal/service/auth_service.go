package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"singular-attend/backend/config"
	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/jwt"
	"singular-attend/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
	ErrAdminNotFound      = errors.New("管理员不存在")
	ErrWrongOldPassword   = errors.New("原密码错误")
)

// AuthService 管理端认证业务接口
// 员工门户不走认证，保持与原始系统一致的开放门户模型
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将当前 access token 的 JTI 加入黑名单直至过期；Redis 不可用时降级为无操作
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, adminID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.repo.Admin.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(admin.AdminID, admin.Username)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单查询失败，放行刷新", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	// 确认管理员仍然存在
	admin, err := s.repo.Admin.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	// 旧 refresh token 作废，防止重放
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("旧 refresh token 拉黑失败", zap.Error(err))
		}
	}

	return s.issueTokens(admin.AdminID, admin.Username)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，登出未拉黑 token")
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) ChangePassword(ctx context.Context, adminID string, req *dto.ChangePasswordRequest) error {
	admin, err := s.repo.Admin.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	admin.PasswordHash = string(hash)
	if err := s.repo.Admin.Update(ctx, admin); err != nil {
		s.logger.Error("更新管理员密码失败", zap.Error(err))
		return err
	}

	return nil
}

func (s *authService) issueTokens(adminID, username string) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(adminID, username)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(adminID, username)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Admin: dto.AdminResponse{
			ID:       adminID,
			Username: username,
		},
	}, nil
}
