/*
 * @Description: 文章分类相关的 HTTP 处理器
 * @Author: 安知鱼
 * @Date: 2025-05-21 10:15:40
 * @LastEditTime: 2025-08-02 17:33:26
 * @LastEditors: 安知鱼
 */
package category

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/pkg/response"
	taxonomy_service "github.com/anzhiyu-c/soloblog/pkg/service/taxonomy"
)

// Handler 封装了文章分类相关的 HTTP 处理器。
type Handler struct {
	svc *taxonomy_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *taxonomy_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List
// @Summary      获取分类列表
// @Description  返回所有分类及各自已发布文章的数量
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.CategoryResponse} "成功响应"
// @Router       /categories [get]
func (h *Handler) List(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, categories, "获取列表成功")
}

// GetBySlug
// @Summary      按 slug 获取分类详情
// @Tags         分类
// @Produce      json
// @Param        slug path string true "分类slug"
// @Success      200 {object} response.Response{data=model.CategoryResponse} "成功响应"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	cat, err := h.svc.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, cat, "获取成功")
}
