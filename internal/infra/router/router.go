/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2025-08-26 10:08:19
 * @LastEditors: 安知鱼
 */
// soloblog/internal/infra/router/router.go
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/internal/app/middleware"
	auth_handler "github.com/anzhiyu-c/soloblog/pkg/handler/auth"
	category_handler "github.com/anzhiyu-c/soloblog/pkg/handler/category"
	image_handler "github.com/anzhiyu-c/soloblog/pkg/handler/image"
	post_handler "github.com/anzhiyu-c/soloblog/pkg/handler/post"
	tag_handler "github.com/anzhiyu-c/soloblog/pkg/handler/tag"
	visitor_handler "github.com/anzhiyu-c/soloblog/pkg/handler/visitor"
)

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	mw             *middleware.Middleware
	authHandler    *auth_handler.Handler
	postHandler    *post_handler.Handler
	categoryHandler *category_handler.Handler
	tagHandler     *tag_handler.Handler
	imageHandler   *image_handler.Handler
	visitorHandler *visitor_handler.Handler
}

// NewRouter 是 Router 的构造函数。
func NewRouter(
	mw *middleware.Middleware,
	authHandler *auth_handler.Handler,
	postHandler *post_handler.Handler,
	categoryHandler *category_handler.Handler,
	tagHandler *tag_handler.Handler,
	imageHandler *image_handler.Handler,
	visitorHandler *visitor_handler.Handler,
) *Router {
	return &Router{
		mw:              mw,
		authHandler:     authHandler,
		postHandler:     postHandler,
		categoryHandler: categoryHandler,
		tagHandler:      tagHandler,
		imageHandler:    imageHandler,
		visitorHandler:  visitorHandler,
	}
}

// SetupRoutes 注册全部路由。前台接口无需认证，/api/admin 下的接口
// 需要携带管理员 Bearer Token。
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(middleware.Cors())

	api := engine.Group("/api")
	{
		// 认证
		api.POST("/auth/login", r.authHandler.Login)

		// 前台文章
		api.GET("/posts", r.postHandler.List)
		api.GET("/posts/search", r.postHandler.Search)
		api.GET("/posts/recent", r.postHandler.Recent)
		api.GET("/posts/archive", r.postHandler.ListArchived)
		api.GET("/posts/:slug", r.postHandler.GetBySlug)

		// 分类与标签
		api.GET("/categories", r.categoryHandler.List)
		api.GET("/categories/:slug", r.categoryHandler.GetBySlug)
		api.GET("/tags", r.tagHandler.List)
		api.GET("/tags/:slug", r.tagHandler.GetBySlug)

		// CDN 直传授权（线上客户端直接调用，不需要登录）
		api.GET("/upload-auth", r.imageHandler.CreateUploadAuth)

		// 访客计数，限制每个IP每分钟60次，避免刷计数
		visitors := api.Group("/visitors").Use(middleware.CustomRateLimit(60, 10))
		{
			visitors.POST("", r.visitorHandler.Increment)
			visitors.GET("", r.visitorHandler.Get)
		}
	}

	admin := api.Group("/admin").Use(r.mw.JWTAuth())
	{
		// 文章管理
		admin.GET("/posts", r.postHandler.ListAll)
		admin.POST("/posts", r.postHandler.Create)
		admin.GET("/posts/slug/:slug", r.postHandler.PreviewBySlug)
		admin.GET("/posts/:id", r.postHandler.Get)
		admin.PUT("/posts/:id", r.postHandler.Update)
		admin.DELETE("/posts/:id", r.postHandler.Delete)
		admin.POST("/posts/:id/publish", r.postHandler.Publish)
		admin.POST("/posts/:id/unpublish", r.postHandler.Unpublish)
		admin.POST("/posts/:id/archive", r.postHandler.Archive)
		admin.POST("/posts/:id/unarchive", r.postHandler.Unarchive)
		admin.POST("/posts/:id/tags/:tagId", r.tagHandler.AddToPost)
		admin.DELETE("/posts/:id/tags/:tagId", r.tagHandler.RemoveFromPost)

		// 标签管理
		admin.GET("/tags/:id/posts", r.tagHandler.ListPosts)

		// 图片管理
		admin.GET("/images", r.imageHandler.List)
		admin.POST("/images", r.imageHandler.Upload)
		admin.GET("/images/presign", r.imageHandler.CreatePresignedUploadURL)
		admin.GET("/images/key/*key", r.imageHandler.GetByKey)
		admin.GET("/images/:id", r.imageHandler.Get)
		admin.GET("/images/:id/url", r.imageHandler.GetDownloadURL)
		admin.DELETE("/images/:id", r.imageHandler.Delete)
		admin.PUT("/images/:id/post/:postId", r.imageHandler.LinkToPost)
	}
}
