/*
 * @Description: 文章仓储的 GORM 实现
 * @Author: 安知鱼
 * @Date: 2025-05-15 11:20:33
 * @LastEditTime: 2025-08-23 15:48:02
 * @LastEditors: 安知鱼
 */
package gormimpl

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
)

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓储的 GORM 实现。
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, params *model.SavePostParams) (*model.Post, error) {
	entity := &Post{
		Title:         params.Title,
		Content:       params.Content,
		Excerpt:       params.Excerpt,
		Author:        params.Author,
		Slug:          params.Slug,
		CoverImageURL: params.CoverImageURL,
		ReadTime:      params.ReadTime,
		Published:     params.Published,
		Archived:      params.Archived,
		CategoryID:    params.CategoryDBID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entity).Error; err != nil {
			return err
		}
		if len(params.TagDBIDs) > 0 {
			tags := make([]*Tag, len(params.TagDBIDs))
			for i, id := range params.TagDBIDs {
				tags[i] = &Tag{ID: id}
			}
			if err := tx.Model(entity).Association("Tags").Append(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	return r.findByDBID(ctx, entity.ID)
}

func (r *postRepo) Update(ctx context.Context, publicID string, cols *model.UpdatePostColumns) (*model.Post, error) {
	dbID, err := idgen.DecodeTypedID(publicID, idgen.EntityTypePost)
	if err != nil {
		return nil, constant.ErrNotFound
	}

	updates := map[string]interface{}{}
	if cols.Title != nil {
		updates["title"] = *cols.Title
	}
	if cols.Content != nil {
		updates["content"] = *cols.Content
	}
	if cols.Excerpt != nil {
		updates["excerpt"] = *cols.Excerpt
	}
	if cols.Author != nil {
		updates["author"] = *cols.Author
	}
	if cols.Slug != nil {
		updates["slug"] = *cols.Slug
	}
	if cols.CoverImageURL != nil {
		updates["cover_image_url"] = *cols.CoverImageURL
	}
	if cols.ReadTime != nil {
		updates["read_time"] = *cols.ReadTime
	}
	if cols.Published != nil {
		updates["published"] = *cols.Published
	}
	if cols.Archived != nil {
		updates["archived"] = *cols.Archived
	}
	if cols.SetCategory {
		updates["category_id"] = cols.CategoryDBID
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity Post
		if err := tx.First(&entity, dbID).Error; err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&entity).Updates(updates).Error; err != nil {
				return err
			}
		}

		if cols.SetTags {
			tags := make([]*Tag, len(cols.TagDBIDs))
			for i, id := range cols.TagDBIDs {
				tags[i] = &Tag{ID: id}
			}
			if err := tx.Model(&entity).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	return r.findByDBID(ctx, dbID)
}

func (r *postRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := idgen.DecodeTypedID(publicID, idgen.EntityTypePost)
	if err != nil {
		return constant.ErrNotFound
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity Post
		if err := tx.First(&entity, dbID).Error; err != nil {
			return err
		}
		// 先清空标签关联，再删除文章行，不留悬挂的关系记录
		if err := tx.Model(&entity).Association("Tags").Clear(); err != nil {
			return err
		}
		// 图片元数据保留，只解除归属
		if err := tx.Model(&Image{}).Where("post_id = ?", dbID).
			Update("post_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity).Error
	})
	return translateError(err)
}

func (r *postRepo) FindByID(ctx context.Context, publicID string) (*model.Post, error) {
	dbID, err := idgen.DecodeTypedID(publicID, idgen.EntityTypePost)
	if err != nil {
		return nil, constant.ErrNotFound
	}
	return r.findByDBID(ctx, dbID)
}

func (r *postRepo) findByDBID(ctx context.Context, dbID uint) (*model.Post, error) {
	var entity Post
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		First(&entity, dbID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainPost(&entity)
}

func (r *postRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var entity Post
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		Where("slug = ?", slug).
		First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainPost(&entity)
}

func (r *postRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Post{}).
		Where("title = ?", title).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *postRepo) List(ctx context.Context, opts *model.ListPostsOptions) ([]*model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&Post{})

	if opts.PublishedOnly {
		query = query.Where("posts.published = ?", true).Where("posts.archived = ?", false)
	}
	if opts.ArchivedOnly {
		query = query.Where("posts.archived = ?", true)
	}
	if opts.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", opts.CategorySlug)
	}
	if opts.TagSlug != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", opts.TagSlug)
	}
	if opts.Query != "" {
		like := "%" + opts.Query + "%"
		query = query.Where("posts.title LIKE ? OR posts.content LIKE ?", like, like)
	}

	var total int64
	if err := query.Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	if opts.SortByUpdated {
		query = query.Order("posts.updated_at DESC")
	} else {
		query = query.Order("posts.created_at DESC")
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var entities []*Post
	err := query.Distinct().
		Preload("Category").Preload("Tags").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entities).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	posts := make([]*model.Post, 0, len(entities))
	for _, e := range entities {
		p, err := toDomainPost(e)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, nil
}

func (r *postRepo) AttachTag(ctx context.Context, postPublicID string, tagDBID uint) error {
	dbID, err := idgen.DecodeTypedID(postPublicID, idgen.EntityTypePost)
	if err != nil {
		return constant.ErrNotFound
	}
	var entity Post
	if err := r.db.WithContext(ctx).First(&entity, dbID).Error; err != nil {
		return translateError(err)
	}
	err = r.db.WithContext(ctx).Model(&entity).
		Association("Tags").Append(&Tag{ID: tagDBID})
	return translateError(err)
}

func (r *postRepo) DetachTag(ctx context.Context, postPublicID string, tagDBID uint) error {
	dbID, err := idgen.DecodeTypedID(postPublicID, idgen.EntityTypePost)
	if err != nil {
		return constant.ErrNotFound
	}
	var entity Post
	if err := r.db.WithContext(ctx).First(&entity, dbID).Error; err != nil {
		return translateError(err)
	}
	err = r.db.WithContext(ctx).Model(&entity).
		Association("Tags").Delete(&Tag{ID: tagDBID})
	return translateError(err)
}

func (r *postRepo) CountPublishedByCategory(ctx context.Context, categoryDBID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Post{}).
		Where("category_id = ? AND published = ? AND archived = ?", categoryDBID, true, false).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return int(count), nil
}

func (r *postRepo) CountPublishedByTag(ctx context.Context, tagDBID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ? AND posts.published = ? AND posts.archived = ?", tagDBID, true, false).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return int(count), nil
}

// toDomainPost 把数据库实体转换为领域模型，同时编码公共 ID。
func toDomainPost(e *Post) (*model.Post, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypePost)
	if err != nil {
		return nil, fmt.Errorf("生成文章公共ID失败: %w", err)
	}

	post := &model.Post{
		ID:            publicID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Title:         e.Title,
		Content:       e.Content,
		Excerpt:       e.Excerpt,
		Author:        e.Author,
		Slug:          e.Slug,
		CoverImageURL: e.CoverImageURL,
		ReadTime:      e.ReadTime,
		Published:     e.Published,
		Archived:      e.Archived,
	}

	if e.Category != nil {
		cat, err := toDomainCategory(e.Category)
		if err != nil {
			return nil, err
		}
		post.Category = cat
	}
	for _, t := range e.Tags {
		tag, err := toDomainTag(t)
		if err != nil {
			return nil, err
		}
		post.Tags = append(post.Tags, tag)
	}
	return post, nil
}
