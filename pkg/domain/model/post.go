/*
 * @Description: 文章的核心领域模型与 API 数据传输对象
 * @Author: 安知鱼
 * @Date: 2025-05-15 09:12:40
 * @LastEditTime: 2025-08-21 11:37:29
 * @LastEditors: 安知鱼
 */
package model

import "time"

// --- 核心领域对象 (Domain Object) ---

// Post 是文章的核心领域模型。ID 为对外暴露的公共 ID。
type Post struct {
	ID            string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Title         string
	Content       string
	Excerpt       string
	Author        string
	Slug          string
	CoverImageURL string
	ReadTime      int
	Published     bool
	Archived      bool
	Category      *Category
	Tags          []*Tag
}

// SavePostParams 是仓储层创建/覆盖文章时使用的参数集合。
// 分类与标签已由上层解析为数据库 ID。
type SavePostParams struct {
	Title         string
	Content       string
	Excerpt       string
	Author        string
	Slug          string
	CoverImageURL string
	ReadTime      int
	Published     bool
	Archived      bool
	CategoryDBID  *uint
	TagDBIDs      []uint
}

// UpdatePostColumns 是仓储层部分更新文章时使用的参数集合。
// 指针为 nil 表示该列保持不变；SetCategory/SetTags 为 true 时才改写关联。
type UpdatePostColumns struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Author        *string
	Slug          *string
	CoverImageURL *string
	ReadTime      *int
	Published     *bool
	Archived      *bool
	SetCategory   bool
	CategoryDBID  *uint
	SetTags       bool
	TagDBIDs      []uint
}

// ListPostsOptions 组合文章列表的过滤、排序与分页条件。
type ListPostsOptions struct {
	Page          int
	PageSize      int
	PublishedOnly bool
	ArchivedOnly  bool
	TagSlug       string
	CategorySlug  string
	Query         string
	SortByUpdated bool
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CreatePostRequest 定义了创建文章的请求体
type CreatePostRequest struct {
	Title         string    `json:"title" binding:"required,min=3,max=200"`
	Content       string    `json:"content" binding:"required"`
	Excerpt       *string   `json:"excerpt" binding:"omitempty,max=500"`
	Author        string    `json:"author"`
	Slug          string    `json:"slug"`
	CoverImageURL string    `json:"coverImageUrl"`
	Published     *bool     `json:"published"`
	Archived      *bool     `json:"archived"`
	CategoryName  *string   `json:"categoryName"`
	Tags          *[]string `json:"tags"`
}

// UpdatePostRequest 定义了部分更新文章的请求体。
// 所有字段均为指针：nil 表示“保持不变”，显式空值表示“清空”。
type UpdatePostRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt" binding:"omitempty,max=500"`
	Author        *string   `json:"author"`
	Slug          *string   `json:"slug"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Published     *bool     `json:"published"`
	Archived      *bool     `json:"archived"`
	CategoryName  *string   `json:"categoryName"`
	Tags          *[]string `json:"tags"`
}

// PostResponse 定义了文章详情的标准 API 响应结构
type PostResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Content       string             `json:"content"`
	Excerpt       string             `json:"excerpt"`
	Author        string             `json:"author"`
	CoverImageURL string             `json:"coverImageUrl"`
	ReadTime      int                `json:"readTime"`
	Published     bool               `json:"published"`
	Archived      bool               `json:"archived"`
	Category      *CategoryResponse  `json:"category"`
	Tags          []*TagResponse     `json:"tags"`
	Images        []*ImageResponse   `json:"images"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// PostSummaryResponse 定义了文章列表项的 API 响应结构，不携带正文。
type PostSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Author        string    `json:"author"`
	CoverImageURL string    `json:"coverImageUrl"`
	ReadTime      int       `json:"readTime"`
	Archived      bool      `json:"archived"`
	CategoryName  string    `json:"categoryName,omitempty"`
	CategorySlug  string    `json:"categorySlug,omitempty"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PostListResponse 是分页列表的外层结构
type PostListResponse struct {
	List     []*PostSummaryResponse `json:"list"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}
