/*
 * @Description: 图片相关的 HTTP 处理器（上传、直传授权、归属、删除）
 * @Author: 安知鱼
 * @Date: 2025-05-21 11:08:52
 * @LastEditTime: 2025-08-25 15:40:10
 * @LastEditors: 安知鱼
 */
package image

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/response"
	image_service "github.com/anzhiyu-c/soloblog/pkg/service/image"
)

// maxUploadSize 是表单上传允许的最大文件体积（20MB）。
const maxUploadSize = 20 << 20

// Handler 封装了图片相关的 HTTP 处理器。
type Handler struct {
	svc *image_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *image_service.Service) *Handler {
	return &Handler{svc: svc}
}

// Upload
// @Summary      上传图片
// @Description  multipart 表单上传，kind 取 cover 或 content，默认 content
// @Tags         图片
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "图片文件"
// @Param        kind formData string false "图片用途: cover | content"
// @Success      201 {object} response.Response{data=model.ImageResponse} "成功响应"
// @Failure      400 {object} response.Response "文件为空或参数错误"
// @Router       /admin/images [post]
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "缺少上传文件: "+err.Error())
		return
	}

	kind := model.ImageKind(c.DefaultPostForm("kind", string(model.ImageKindContent)))

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "打开上传文件失败: "+err.Error())
		return
	}
	defer file.Close()

	img, err := h.svc.Upload(c.Request.Context(), file, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), kind)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, img, "上传成功")
}

// CreatePresignedUploadURL
// @Summary      生成客户端直传的预签名URL（S3 后端）
// @Tags         图片
// @Security     BearerAuth
// @Param        fileName query string true "原始文件名"
// @Param        kind query string false "图片用途: cover | content"
// @Success      200 {object} response.Response{data=storage.PresignedUploadResult} "成功响应"
// @Failure      400 {object} response.Response "当前存储后端不支持"
// @Router       /admin/images/presign [get]
func (h *Handler) CreatePresignedUploadURL(c *gin.Context) {
	fileName := c.Query("fileName")
	if fileName == "" {
		response.Fail(c, http.StatusBadRequest, "fileName 不能为空")
		return
	}
	kind := model.ImageKind(c.DefaultQuery("kind", string(model.ImageKindContent)))

	result, err := h.svc.CreatePresignedUploadURL(c.Request.Context(), fileName, kind)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, result, "生成成功")
}

// CreateUploadAuth
// @Summary      生成 CDN 直传授权签名（ImageKit 后端）
// @Description  返回 token/expire/signature 三元组，字段格式与线上客户端约定一致
// @Tags         图片
// @Param        expire query int false "期望的过期时间（Unix秒），缺省为30分钟后"
// @Success      200 {object} response.Response{data=model.UploadAuth} "成功响应"
// @Failure      400 {object} response.Response "当前存储后端不支持"
// @Router       /upload-auth [get]
func (h *Handler) CreateUploadAuth(c *gin.Context) {
	expire, _ := strconv.ParseInt(c.DefaultQuery("expire", "0"), 10, 64)

	auth, err := h.svc.CreateUploadAuth(expire)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, auth, "生成成功")
}

// List
// @Summary      获取图片列表（后台）
// @Tags         图片
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]model.ImageResponse} "成功响应"
// @Router       /admin/images [get]
func (h *Handler) List(c *gin.Context) {
	images, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, images, "获取列表成功")
}

// Get
// @Summary      获取图片元数据
// @Tags         图片
// @Security     BearerAuth
// @Param        id path string true "图片ID"
// @Success      200 {object} response.Response{data=model.ImageResponse} "成功响应"
// @Router       /admin/images/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	img, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, img, "获取成功")
}

// GetByKey
// @Summary      按存储对象 key 获取图片元数据
// @Tags         图片
// @Security     BearerAuth
// @Param        key path string true "存储对象key，含目录前缀"
// @Success      200 {object} response.Response{data=model.ImageResponse} "成功响应"
// @Router       /admin/images/key/{key} [get]
func (h *Handler) GetByKey(c *gin.Context) {
	// key 形如 post_images/xxx.png，路由上是通配段，去掉前导斜杠
	key := strings.TrimPrefix(c.Param("key"), "/")
	img, err := h.svc.GetByKey(c.Request.Context(), key)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, img, "获取成功")
}

// GetDownloadURL
// @Summary      获取图片的限时下载链接
// @Tags         图片
// @Security     BearerAuth
// @Param        id path string true "图片ID"
// @Param        expiresIn query int false "有效时长（秒）"
// @Success      200 {object} response.Response{data=string} "成功响应"
// @Router       /admin/images/{id}/url [get]
func (h *Handler) GetDownloadURL(c *gin.Context) {
	expiresIn, _ := strconv.ParseInt(c.DefaultQuery("expiresIn", "0"), 10, 64)

	url, err := h.svc.GetDownloadURL(c.Request.Context(), c.Param("id"), expiresIn)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, url, "获取成功")
}

// Delete
// @Summary      删除图片（物理文件与元数据）
// @Tags         图片
// @Security     BearerAuth
// @Param        id path string true "图片ID"
// @Success      200 {object} response.Response "成功响应"
// @Router       /admin/images/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, nil, "删除成功")
}

// LinkToPost
// @Summary      把图片归属到指定文章
// @Tags         图片
// @Security     BearerAuth
// @Param        id path string true "图片ID"
// @Param        postId path string true "文章ID"
// @Success      200 {object} response.Response{data=model.ImageResponse} "成功响应"
// @Router       /admin/images/{id}/post/{postId} [put]
func (h *Handler) LinkToPost(c *gin.Context) {
	img, err := h.svc.LinkToPost(c.Request.Context(), c.Param("id"), c.Param("postId"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, img, "关联成功")
}
