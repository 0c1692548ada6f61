/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-16 14:40:55
 * @LastEditTime: 2025-07-30 15:48:19
 * @LastEditors: 安知鱼
 */
package model

// LoginRequest 定义了管理员登录的请求体
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 定义了登录成功后的响应结构
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}
