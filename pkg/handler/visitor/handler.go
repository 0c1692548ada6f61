/*
 * @Description: 访客计数的 HTTP 处理器
 * @Author: 安知鱼
 * @Date: 2025-05-21 11:52:08
 * @LastEditTime: 2025-07-30 17:20:41
 * @LastEditors: 安知鱼
 */
package visitor

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/pkg/response"
	visitor_service "github.com/anzhiyu-c/soloblog/pkg/service/visitor"
)

// Handler 封装了访客计数相关的 HTTP 处理器。
type Handler struct {
	svc *visitor_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *visitor_service.Service) *Handler {
	return &Handler{svc: svc}
}

// Increment
// @Summary      访客计数加一并返回最新值
// @Tags         统计
// @Produce      json
// @Success      200 {object} response.Response{data=model.VisitorCountResponse} "成功响应"
// @Router       /visitors [post]
func (h *Handler) Increment(c *gin.Context) {
	count, err := h.svc.IncrementAndGet(c.Request.Context())
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, count, "计数成功")
}

// Get
// @Summary      获取当前访客计数
// @Tags         统计
// @Produce      json
// @Success      200 {object} response.Response{data=model.VisitorCountResponse} "成功响应"
// @Router       /visitors [get]
func (h *Handler) Get(c *gin.Context) {
	count, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, count, "获取成功")
}
