/*
 * @Description: 管理员登录与令牌签发
 * @Author: 安知鱼
 * @Date: 2025-05-20 09:12:30
 * @LastEditTime: 2025-08-25 11:08:56
 * @LastEditors: 安知鱼
 */
package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/anzhiyu-c/soloblog/internal/pkg/auth"
	"github.com/anzhiyu-c/soloblog/internal/pkg/security"
	"github.com/anzhiyu-c/soloblog/pkg/config"
	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// TokenService 处理管理员登录与 JWT 签发。
// 单作者站点没有用户表，管理员账号来自配置。
type TokenService struct {
	username     string
	passwordHash string
	secret       []byte
	expiry       time.Duration
}

// NewTokenService 是 TokenService 的构造函数。
// 没有配置密码哈希时用默认密码 admin 兜底并打印告警，方便首次启动。
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	secret := cfg.GetString(config.KeyJWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("JWT Secret 未配置")
	}

	username := cfg.GetString(config.KeyAdminUsername)
	if username == "" {
		username = "admin"
	}

	passwordHash := cfg.GetString(config.KeyAdminPasswordHash)
	if passwordHash == "" {
		hash, err := security.HashPassword("admin")
		if err != nil {
			return nil, fmt.Errorf("生成默认密码哈希失败: %w", err)
		}
		passwordHash = hash
		log.Println("⚠️  警告: 未配置管理员密码哈希，当前使用默认密码 'admin'，请尽快修改配置。")
	}

	expireHours := cfg.GetInt(config.KeyJWTExpireHours)
	if expireHours <= 0 {
		expireHours = 24
	}

	return &TokenService{
		username:     username,
		passwordHash: passwordHash,
		secret:       []byte(secret),
		expiry:       time.Duration(expireHours) * time.Hour,
	}, nil
}

// Login 校验管理员凭证并签发访问令牌。
// 用户名不存在和密码错误返回同一个错误，不给枚举留口子。
func (s *TokenService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Username != s.username || !security.CheckPasswordHash(req.Password, s.passwordHash) {
		return nil, constant.ErrUnauthorized
	}

	token, err := auth.GenerateToken(s.username, auth.RoleAdmin, s.secret, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.expiry.Seconds()),
		Username:    s.username,
		Role:        auth.RoleAdmin,
	}, nil
}

// Secret 返回签名密钥，供认证中间件解析令牌。
func (s *TokenService) Secret() []byte {
	return s.secret
}
