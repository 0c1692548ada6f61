/*
 * @Description: 文章标签相关的 HTTP 处理器
 * @Author: 安知鱼
 * @Date: 2025-05-21 10:22:17
 * @LastEditTime: 2025-08-25 15:01:33
 * @LastEditors: 安知鱼
 */
package tag

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/pkg/response"
	taxonomy_service "github.com/anzhiyu-c/soloblog/pkg/service/taxonomy"
)

// Handler 封装了文章标签相关的 HTTP 处理器。
type Handler struct {
	svc *taxonomy_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *taxonomy_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List
// @Summary      获取标签列表
// @Description  返回所有标签及各自已发布文章的数量
// @Tags         标签
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.TagResponse} "成功响应"
// @Router       /tags [get]
func (h *Handler) List(c *gin.Context) {
	tags, err := h.svc.ListTags(c.Request.Context())
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, tags, "获取列表成功")
}

// GetBySlug
// @Summary      按 slug 获取标签详情
// @Tags         标签
// @Produce      json
// @Param        slug path string true "标签slug"
// @Success      200 {object} response.Response{data=model.TagResponse} "成功响应"
// @Failure      404 {object} response.Response "标签不存在"
// @Router       /tags/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	tag, err := h.svc.GetTagBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, tag, "获取成功")
}

// ListPosts
// @Summary      获取引用指定标签的文章ID列表
// @Tags         标签
// @Security     BearerAuth
// @Param        id path string true "标签ID"
// @Success      200 {object} response.Response{data=[]string} "成功响应"
// @Router       /admin/tags/{id}/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	postIDs, err := h.svc.ListPostIDsByTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, postIDs, "获取成功")
}

// AddToPost
// @Summary      给文章追加标签
// @Tags         标签
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Param        tagId path string true "标签ID"
// @Success      200 {object} response.Response "成功响应"
// @Router       /admin/posts/{id}/tags/{tagId} [post]
func (h *Handler) AddToPost(c *gin.Context) {
	postID := c.Param("id")
	tagID := c.Param("tagId")
	if postID == "" || tagID == "" {
		response.Fail(c, http.StatusBadRequest, "文章ID和标签ID不能为空")
		return
	}

	if err := h.svc.AddTagToPost(c.Request.Context(), postID, tagID); err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, nil, "添加成功")
}

// RemoveFromPost
// @Summary      解除文章与标签的关联
// @Tags         标签
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Param        tagId path string true "标签ID"
// @Success      200 {object} response.Response "成功响应"
// @Router       /admin/posts/{id}/tags/{tagId} [delete]
func (h *Handler) RemoveFromPost(c *gin.Context) {
	postID := c.Param("id")
	tagID := c.Param("tagId")
	if postID == "" || tagID == "" {
		response.Fail(c, http.StatusBadRequest, "文章ID和标签ID不能为空")
		return
	}

	if err := h.svc.RemoveTagFromPost(c.Request.Context(), postID, tagID); err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, nil, "移除成功")
}
