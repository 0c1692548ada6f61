/*
 * @Description: 文章相关的 HTTP 处理器
 * @Author: 安知鱼
 * @Date: 2025-05-21 09:30:18
 * @LastEditTime: 2025-08-25 14:22:51
 * @LastEditors: 安知鱼
 */
package post

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/response"
	post_service "github.com/anzhiyu-c/soloblog/pkg/service/post"
)

// Handler 封装了所有与文章相关的 HTTP 处理器。
type Handler struct {
	svc *post_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *post_service.Service) *Handler {
	return &Handler{svc: svc}
}

// Create
// @Summary      创建新文章
// @Description  创建文章，slug/摘要/阅读时长未提供时自动派生
// @Tags         文章
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        post body model.CreatePostRequest true "创建文章的请求体"
// @Success      201 {object} response.Response{data=model.PostResponse} "成功响应"
// @Failure      400 {object} response.Response "请求参数错误"
// @Failure      409 {object} response.Response "标题已存在"
// @Router       /admin/posts [post]
func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	post, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, post, "创建成功")
}

// Update
// @Summary      更新文章
// @Description  部分更新，只改动请求体里出现的字段
// @Tags         文章
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "文章ID"
// @Param        post body model.UpdatePostRequest true "更新文章的请求体"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, "文章ID不能为空")
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	post, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, post, "更新成功")
}

// Delete
// @Summary      删除文章
// @Tags         文章
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response "成功响应"
// @Router       /admin/posts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, nil, "删除成功")
}

// Get
// @Summary      获取文章详情（后台）
// @Tags         文章
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	post, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, post, "获取成功")
}

// GetBySlug
// @Summary      按 slug 获取已发布文章（前台）
// @Description  草稿与已归档文章表现为未找到
// @Tags         文章
// @Param        slug path string true "文章slug"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /posts/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.svc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, post, "获取成功")
}

// PreviewBySlug
// @Summary      按 slug 获取文章详情（后台预览，不区分发布状态）
// @Tags         文章
// @Security     BearerAuth
// @Param        slug path string true "文章slug"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/slug/{slug} [get]
func (h *Handler) PreviewBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, post, "获取成功")
}

// List
// @Summary      获取已发布文章列表（前台）
// @Tags         文章
// @Param        page query int false "页码，从1开始"
// @Param        pageSize query int false "单页条数，最大50"
// @Param        category query string false "按分类slug过滤"
// @Param        tag query string false "按标签slug过滤"
// @Success      200 {object} response.Response{data=model.PostListResponse} "成功响应"
// @Router       /posts [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	list, err := h.svc.ListPublished(c.Request.Context(), page, pageSize,
		c.Query("category"), c.Query("tag"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, list, "获取列表成功")
}

// ListArchived
// @Summary      获取归档文章列表
// @Tags         文章
// @Param        page query int false "页码"
// @Param        pageSize query int false "单页条数"
// @Success      200 {object} response.Response{data=model.PostListResponse} "成功响应"
// @Router       /posts/archive [get]
func (h *Handler) ListArchived(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	list, err := h.svc.ListArchived(c.Request.Context(), page, pageSize)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, list, "获取列表成功")
}

// ListAll
// @Summary      获取全部文章列表（后台，含草稿）
// @Tags         文章
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        pageSize query int false "单页条数"
// @Success      200 {object} response.Response{data=model.PostListResponse} "成功响应"
// @Router       /admin/posts [get]
func (h *Handler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	list, err := h.svc.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, list, "获取列表成功")
}

// Search
// @Summary      搜索已发布文章
// @Tags         文章
// @Param        q query string true "关键字，匹配标题与正文"
// @Param        page query int false "页码"
// @Param        pageSize query int false "单页条数"
// @Success      200 {object} response.Response{data=model.PostListResponse} "成功响应"
// @Router       /posts/search [get]
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Fail(c, http.StatusBadRequest, "搜索关键字不能为空")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	list, err := h.svc.Search(c.Request.Context(), query, page, pageSize)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, list, "搜索成功")
}

// Recent
// @Summary      获取最近更新的已发布文章
// @Tags         文章
// @Param        limit query int false "条数，最大20"
// @Success      200 {object} response.Response{data=[]model.PostSummaryResponse} "成功响应"
// @Router       /posts/recent [get]
func (h *Handler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	list, err := h.svc.RecentlyUpdated(c.Request.Context(), limit)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, list, "获取成功")
}

// Publish
// @Summary      发布文章
// @Tags         文章
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/{id}/publish [post]
func (h *Handler) Publish(c *gin.Context) {
	h.setFlag(c, h.svc.Publish, "发布成功")
}

// Unpublish
// @Summary      撤回发布
// @Tags         文章
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/{id}/unpublish [post]
func (h *Handler) Unpublish(c *gin.Context) {
	h.setFlag(c, h.svc.Unpublish, "撤回成功")
}

// Archive
// @Summary      归档文章
// @Tags         文章
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/{id}/archive [post]
func (h *Handler) Archive(c *gin.Context) {
	h.setFlag(c, h.svc.Archive, "归档成功")
}

// Unarchive
// @Summary      取消归档
// @Tags         文章
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.PostResponse} "成功响应"
// @Router       /admin/posts/{id}/unarchive [post]
func (h *Handler) Unarchive(c *gin.Context) {
	h.setFlag(c, h.svc.Unarchive, "取消归档成功")
}

type flagFunc func(ctx context.Context, publicID string) (*model.PostResponse, error)

func (h *Handler) setFlag(c *gin.Context, fn flagFunc, okMessage string) {
	post, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, post, okMessage)
}
