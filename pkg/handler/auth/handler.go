/*
 * @Description: 管理员登录的 HTTP 处理器
 * @Author: 安知鱼
 * @Date: 2025-05-21 11:40:27
 * @LastEditTime: 2025-08-03 10:12:55
 * @LastEditors: 安知鱼
 */
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/response"
	auth_service "github.com/anzhiyu-c/soloblog/pkg/service/auth"
)

// Handler 封装了登录相关的 HTTP 处理器。
type Handler struct {
	svc *auth_service.TokenService
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *auth_service.TokenService) *Handler {
	return &Handler{svc: svc}
}

// Login
// @Summary      管理员登录
// @Description  校验用户名密码，签发 Bearer 访问令牌
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "登录凭证"
// @Success      200 {object} response.Response{data=model.LoginResponse} "成功响应"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	resp, err := h.svc.Login(&req)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, resp, "登录成功")
}
