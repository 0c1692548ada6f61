/*
 * @Description: 文章的业务逻辑（创建、派生字段、部分更新、状态流转、列表）
 * @Author: 安知鱼
 * @Date: 2025-05-19 14:05:33
 * @LastEditTime: 2025-08-25 09:42:18
 * @LastEditors: 安知鱼
 */
package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anzhiyu-c/soloblog/internal/pkg/derive"
	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
	"github.com/anzhiyu-c/soloblog/pkg/service/taxonomy"
)

const (
	// maxListPageSize 是公开列表允许的最大单页条数
	maxListPageSize = 50
	// defaultListPageSize 是公开列表的默认单页条数
	defaultListPageSize = 10
	// maxRecentLimit 是"最近更新"列表允许的最大条数
	maxRecentLimit = 20
)

// Service 封装了文章的业务逻辑。
type Service struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	taxonomy  *taxonomy.Service
}

// NewService 是 Post Service 的构造函数。
func NewService(
	postRepo repository.PostRepository,
	imageRepo repository.ImageRepository,
	taxonomySvc *taxonomy.Service,
) *Service {
	return &Service{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		taxonomy:  taxonomySvc,
	}
}

// Create 处理创建文章的业务逻辑：标题查重、派生字段计算、分类标签解析。
func (s *Service) Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error) {
	exists, err := s.postRepo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("检查文章标题失败: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("文章标题 '%s' 已存在: %w", req.Title, constant.ErrConflict)
	}

	params := &model.SavePostParams{
		Title:         req.Title,
		Content:       req.Content,
		Author:        req.Author,
		CoverImageURL: req.CoverImageURL,
		Slug:          derive.Slug(req.Title, req.Slug),
		ReadTime:      derive.ReadTime(req.Content),
	}

	// 摘要：调用方给了非空值就用，否则从正文派生
	if req.Excerpt != nil && strings.TrimSpace(*req.Excerpt) != "" {
		params.Excerpt = *req.Excerpt
	} else {
		params.Excerpt = derive.Excerpt(req.Content, derive.ExcerptMaxLen)
	}

	if req.Published != nil {
		params.Published = *req.Published
	}
	if req.Archived != nil {
		params.Archived = *req.Archived
	}

	if req.CategoryName != nil {
		catID, err := s.taxonomy.ResolveCategory(ctx, *req.CategoryName)
		if err != nil {
			return nil, err
		}
		params.CategoryDBID = catID
	}
	if req.Tags != nil {
		tagIDs, err := s.taxonomy.ResolveTags(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		params.TagDBIDs = tagIDs
	}

	created, err := s.postRepo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(ctx, created)
}

// Update 处理部分更新：只改动请求里出现的字段。
// 正文变了且调用方没显式给摘要时，摘要跟着正文重新派生；阅读时长总是跟着正文走。
func (s *Service) Update(ctx context.Context, publicID string, req *model.UpdatePostRequest) (*model.PostResponse, error) {
	current, err := s.postRepo.FindByID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	cols := &model.UpdatePostColumns{
		Author:        req.Author,
		CoverImageURL: req.CoverImageURL,
		Published:     req.Published,
		Archived:      req.Archived,
	}

	if req.Title != nil && *req.Title != current.Title {
		exists, err := s.postRepo.ExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, fmt.Errorf("检查文章标题失败: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("文章标题 '%s' 已存在: %w", *req.Title, constant.ErrConflict)
		}
		cols.Title = req.Title
	}

	if req.Content != nil && *req.Content != current.Content {
		cols.Content = req.Content
		readTime := derive.ReadTime(*req.Content)
		cols.ReadTime = &readTime
		if req.Excerpt == nil {
			excerpt := derive.Excerpt(*req.Content, derive.ExcerptMaxLen)
			cols.Excerpt = &excerpt
		}
	}
	if req.Excerpt != nil {
		cols.Excerpt = req.Excerpt
	}

	if req.Slug != nil {
		title := current.Title
		if cols.Title != nil {
			title = *cols.Title
		}
		slug := derive.Slug(title, *req.Slug)
		cols.Slug = &slug
	}

	if req.CategoryName != nil {
		cols.SetCategory = true
		if strings.TrimSpace(*req.CategoryName) != "" {
			catID, err := s.taxonomy.ResolveCategory(ctx, *req.CategoryName)
			if err != nil {
				return nil, err
			}
			cols.CategoryDBID = catID
		}
	}
	if req.Tags != nil {
		cols.SetTags = true
		tagIDs, err := s.taxonomy.ResolveTags(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		cols.TagDBIDs = tagIDs
	}

	updated, err := s.postRepo.Update(ctx, publicID, cols)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(ctx, updated)
}

// Delete 删除文章。标签关联与图片归属由仓储在同一事务里清理。
func (s *Service) Delete(ctx context.Context, publicID string) error {
	return s.postRepo.Delete(ctx, publicID)
}

// Get 按公共 ID 返回文章详情。
func (s *Service) Get(ctx context.Context, publicID string) (*model.PostResponse, error) {
	p, err := s.postRepo.FindByID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(ctx, p)
}

// GetBySlug 按 slug 返回文章详情，不区分发布状态，供后台预览使用。
func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.PostResponse, error) {
	p, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(ctx, p)
}

// GetPublishedBySlug 与 GetBySlug 相同，但对未发布或已归档的文章返回未找到，
// 不向未认证访客泄露草稿的存在。
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*model.PostResponse, error) {
	p, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published || p.Archived {
		return nil, constant.ErrNotFound
	}
	return s.toAPIResponse(ctx, p)
}

// Publish / Unpublish / Archive / Unarchive 是幂等的状态流转，
// 目标状态与当前一致时也照常落库，让 updatedAt 前进。
func (s *Service) Publish(ctx context.Context, publicID string) (*model.PostResponse, error) {
	return s.setFlag(ctx, publicID, "published", true)
}

func (s *Service) Unpublish(ctx context.Context, publicID string) (*model.PostResponse, error) {
	return s.setFlag(ctx, publicID, "published", false)
}

func (s *Service) Archive(ctx context.Context, publicID string) (*model.PostResponse, error) {
	return s.setFlag(ctx, publicID, "archived", true)
}

func (s *Service) Unarchive(ctx context.Context, publicID string) (*model.PostResponse, error) {
	return s.setFlag(ctx, publicID, "archived", false)
}

func (s *Service) setFlag(ctx context.Context, publicID, flag string, value bool) (*model.PostResponse, error) {
	cols := &model.UpdatePostColumns{}
	switch flag {
	case "published":
		cols.Published = &value
	case "archived":
		cols.Archived = &value
	}
	updated, err := s.postRepo.Update(ctx, publicID, cols)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(ctx, updated)
}

// ListPublished 返回已发布且未归档的文章分页，支持分类/标签过滤。
func (s *Service) ListPublished(ctx context.Context, page, pageSize int, categorySlug, tagSlug string) (*model.PostListResponse, error) {
	opts := &model.ListPostsOptions{
		Page:          page,
		PageSize:      clampPageSize(pageSize),
		PublishedOnly: true,
		CategorySlug:  categorySlug,
		TagSlug:       tagSlug,
	}
	return s.list(ctx, opts)
}

// ListArchived 返回已归档的文章分页。
func (s *Service) ListArchived(ctx context.Context, page, pageSize int) (*model.PostListResponse, error) {
	opts := &model.ListPostsOptions{
		Page:         page,
		PageSize:     clampPageSize(pageSize),
		ArchivedOnly: true,
	}
	return s.list(ctx, opts)
}

// ListAll 返回全部文章（含草稿），供管理后台使用。
func (s *Service) ListAll(ctx context.Context, page, pageSize int) (*model.PostListResponse, error) {
	opts := &model.ListPostsOptions{
		Page:     page,
		PageSize: clampPageSize(pageSize),
	}
	return s.list(ctx, opts)
}

// Search 在已发布文章的标题和正文中做子串匹配。
func (s *Service) Search(ctx context.Context, query string, page, pageSize int) (*model.PostListResponse, error) {
	opts := &model.ListPostsOptions{
		Page:          page,
		PageSize:      clampPageSize(pageSize),
		PublishedOnly: true,
		Query:         query,
	}
	return s.list(ctx, opts)
}

// RecentlyUpdated 按最近更新时间返回已发布文章，最多 20 条。
func (s *Service) RecentlyUpdated(ctx context.Context, limit int) ([]*model.PostSummaryResponse, error) {
	if limit < 1 {
		limit = 5
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	opts := &model.ListPostsOptions{
		Page:          1,
		PageSize:      limit,
		PublishedOnly: true,
		SortByUpdated: true,
	}
	posts, _, err := s.postRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]*model.PostSummaryResponse, len(posts))
	for i, p := range posts {
		summaries[i] = toSummaryResponse(p)
	}
	return summaries, nil
}

func (s *Service) list(ctx context.Context, opts *model.ListPostsOptions) (*model.PostListResponse, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	posts, total, err := s.postRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.PostSummaryResponse, len(posts))
	for i, p := range posts {
		summaries[i] = toSummaryResponse(p)
	}
	return &model.PostListResponse{
		List:     summaries,
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}, nil
}

func clampPageSize(pageSize int) int {
	if pageSize < 1 {
		return defaultListPageSize
	}
	if pageSize > maxListPageSize {
		return maxListPageSize
	}
	return pageSize
}

// toAPIResponse 把领域模型转换为详情 DTO，附带归属该文章的图片。
func (s *Service) toAPIResponse(ctx context.Context, p *model.Post) (*model.PostResponse, error) {
	resp := &model.PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		CoverImageURL: p.CoverImageURL,
		ReadTime:      p.ReadTime,
		Published:     p.Published,
		Archived:      p.Archived,
		Tags:          make([]*model.TagResponse, 0, len(p.Tags)),
		Images:        make([]*model.ImageResponse, 0),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if p.Category != nil {
		resp.Category = &model.CategoryResponse{
			ID:          p.Category.ID,
			Name:        p.Category.Name,
			Slug:        p.Category.Slug,
			Description: p.Category.Description,
		}
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, &model.TagResponse{
			ID:   t.ID,
			Name: t.Name,
			Slug: t.Slug,
		})
	}

	dbID, err := idgen.DecodeTypedID(p.ID, idgen.EntityTypePost)
	if err != nil {
		return nil, fmt.Errorf("解码文章公共ID失败: %w", err)
	}
	images, err := s.imageRepo.ListByPost(ctx, dbID)
	if err != nil && !errors.Is(err, constant.ErrNotFound) {
		return nil, fmt.Errorf("查询文章图片失败: %w", err)
	}
	for _, img := range images {
		resp.Images = append(resp.Images, &model.ImageResponse{
			ID:           img.ID,
			Key:          img.Key,
			OriginalName: img.OriginalName,
			URL:          img.URL,
			UploadedAt:   img.UploadedAt,
			PostID:       img.PostID,
		})
	}
	return resp, nil
}

func toSummaryResponse(p *model.Post) *model.PostSummaryResponse {
	summary := &model.PostSummaryResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		CoverImageURL: p.CoverImageURL,
		ReadTime:      p.ReadTime,
		Archived:      p.Archived,
		Tags:          make([]string, 0, len(p.Tags)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		summary.CategoryName = p.Category.Name
		summary.CategorySlug = p.Category.Slug
	}
	for _, t := range p.Tags {
		summary.Tags = append(summary.Tags, t.Name)
	}
	return summary
}
