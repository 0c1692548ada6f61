/*
 * @Description: 分类与标签的业务逻辑（find-or-create、文章关联维护）
 * @Author: 安知鱼
 * @Date: 2025-05-19 10:22:41
 * @LastEditTime: 2025-08-24 11:30:27
 * @LastEditors: 安知鱼
 */
package taxonomy

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
)

// Service 封装了分类与标签的业务逻辑。
type Service struct {
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	postRepo     repository.PostRepository
}

// NewService 是 Taxonomy Service 的构造函数。
func NewService(
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	postRepo repository.PostRepository,
) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		postRepo:     postRepo,
	}
}

// ResolveCategory 按名称查找分类，不存在则创建，返回数据库 ID。
// 并发场景下两个写入方同名创建，后到者会撞上唯一约束，
// 此时直接把冲突报给调用方，由客户端重试，绝不静默吞掉。
func (s *Service) ResolveCategory(ctx context.Context, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	cat, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if !errors.Is(err, constant.ErrNotFound) {
			return nil, fmt.Errorf("查找分类失败: %w", err)
		}
		cat, err = s.categoryRepo.Create(ctx, name, derive.Slugify(name), "")
		if err != nil {
			return nil, err
		}
	}

	dbID, err := idgen.DecodeTypedID(cat.ID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("解码分类公共ID失败: %w", err)
	}
	return &dbID, nil
}

// ResolveTags 按名称批量解析标签：去掉首尾空白、跳过空名、去重，
// 逐个 find-or-create，返回数据库 ID 列表。
func (s *Service) ResolveTags(ctx context.Context, names []string) ([]uint, error) {
	seen := make(map[string]struct{}, len(names))
	dbIDs := make([]uint, 0, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tagRepo.FindByName(ctx, name)
		if err != nil {
			if !errors.Is(err, constant.ErrNotFound) {
				return nil, fmt.Errorf("查找标签失败: %w", err)
			}
			tag, err = s.tagRepo.Create(ctx, name, derive.Slugify(name))
			if err != nil {
				return nil, err
			}
		}

		dbID, err := idgen.DecodeTypedID(tag.ID, idgen.EntityTypeTag)
		if err != nil {
			return nil, fmt.Errorf("解码标签公共ID失败: %w", err)
		}
		dbIDs = append(dbIDs, dbID)
	}
	return dbIDs, nil
}

// AddTagToPost 给文章追加一个已有标签。
func (s *Service) AddTagToPost(ctx context.Context, postPublicID, tagPublicID string) error {
	tagDBID, err := idgen.DecodeTypedID(tagPublicID, idgen.EntityTypeTag)
	if err != nil {
		return constant.ErrNotFound
	}
	// 先确认标签存在，再写关系表，避免插入悬挂引用
	if _, err := s.tagRepo.ListPostIDs(ctx, tagPublicID); err != nil {
		return err
	}
	return s.postRepo.AttachTag(ctx, postPublicID, tagDBID)
}

// RemoveTagFromPost 解除文章与标签的关联。
func (s *Service) RemoveTagFromPost(ctx context.Context, postPublicID, tagPublicID string) error {
	tagDBID, err := idgen.DecodeTypedID(tagPublicID, idgen.EntityTypeTag)
	if err != nil {
		return constant.ErrNotFound
	}
	return s.postRepo.DetachTag(ctx, postPublicID, tagDBID)
}

// ListCategories 返回所有分类，附带各自已发布文章的数量。
func (s *Service) ListCategories(ctx context.Context) ([]*model.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.CategoryResponse, len(categories))
	for i, cat := range categories {
		dbID, err := idgen.DecodeTypedID(cat.ID, idgen.EntityTypeCategory)
		if err != nil {
			return nil, fmt.Errorf("解码分类公共ID失败: %w", err)
		}
		count, err := s.postRepo.CountPublishedByCategory(ctx, dbID)
		if err != nil {
			return nil, fmt.Errorf("统计分类文章数失败: %w", err)
		}
		responses[i] = toCategoryResponse(cat, count)
	}
	return responses, nil
}

// ListTags 返回所有标签，附带各自已发布文章的数量。
func (s *Service) ListTags(ctx context.Context) ([]*model.TagResponse, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.TagResponse, len(tags))
	for i, tag := range tags {
		dbID, err := idgen.DecodeTypedID(tag.ID, idgen.EntityTypeTag)
		if err != nil {
			return nil, fmt.Errorf("解码标签公共ID失败: %w", err)
		}
		count, err := s.postRepo.CountPublishedByTag(ctx, dbID)
		if err != nil {
			return nil, fmt.Errorf("统计标签文章数失败: %w", err)
		}
		responses[i] = toTagResponse(tag, count)
	}
	return responses, nil
}

// GetCategoryBySlug 按 slug 返回单个分类及其已发布文章数。
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*model.CategoryResponse, error) {
	cat, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	dbID, err := idgen.DecodeTypedID(cat.ID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("解码分类公共ID失败: %w", err)
	}
	count, err := s.postRepo.CountPublishedByCategory(ctx, dbID)
	if err != nil {
		return nil, fmt.Errorf("统计分类文章数失败: %w", err)
	}
	return toCategoryResponse(cat, count), nil
}

// GetTagBySlug 按 slug 返回单个标签及其已发布文章数。
func (s *Service) GetTagBySlug(ctx context.Context, slug string) (*model.TagResponse, error) {
	tag, err := s.tagRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	dbID, err := idgen.DecodeTypedID(tag.ID, idgen.EntityTypeTag)
	if err != nil {
		return nil, fmt.Errorf("解码标签公共ID失败: %w", err)
	}
	count, err := s.postRepo.CountPublishedByTag(ctx, dbID)
	if err != nil {
		return nil, fmt.Errorf("统计标签文章数失败: %w", err)
	}
	return toTagResponse(tag, count), nil
}

// ListPostIDsByTag 从标签侧遍历，返回引用该标签的文章公共 ID。
func (s *Service) ListPostIDsByTag(ctx context.Context, tagPublicID string) ([]string, error) {
	return s.tagRepo.ListPostIDs(ctx, tagPublicID)
}

func toCategoryResponse(c *model.Category, postCount int) *model.CategoryResponse {
	if c == nil {
		return nil
	}
	return &model.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		PostCount:   postCount,
	}
}

func toTagResponse(t *model.Tag, postCount int) *model.TagResponse {
	if t == nil {
		return nil
	}
	return &model.TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		PostCount: postCount,
	}
}
