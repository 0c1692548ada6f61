/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-11 18:38:27
 * @LastEditTime: 2025-08-11 18:38:34
 * @LastEditors: 安知鱼
 */
package auth

import "github.com/golang-jwt/jwt/v5"

// ClaimsKey 是用于在 gin.Context 中存储和检索管理员信息的键。
const ClaimsKey = "admin_claims"

// RoleAdmin 是唯一作者站点中管理员的角色名。
const RoleAdmin = "admin"

// CustomClaims 定义了 JWT 的自定义 Claims 结构体
type CustomClaims struct {
	Username string `json:"username"` // 管理员用户名
	Role     string `json:"role"`     // 角色，目前只有 admin
	jwt.RegisteredClaims
}
