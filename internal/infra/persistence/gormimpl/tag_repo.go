/*
 * @Description: 标签仓储的 GORM 实现
 * @Author: 安知鱼
 * @Date: 2025-05-15 11:50:46
 * @LastEditTime: 2025-08-22 11:11:31
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

type tagRepo struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓储的 GORM 实现。
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, name, slug string) (*model.Tag, error) {
	entity := &Tag{Name: name, Slug: slug}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainTag(entity)
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var entity Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainTag(&entity)
}

func (r *tagRepo) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var entity Tag
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainTag(&entity)
}

func (r *tagRepo) List(ctx context.Context) ([]*model.Tag, error) {
	var entities []*Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, translateError(err)
	}
	tags := make([]*model.Tag, 0, len(entities))
	for _, e := range entities {
		t, err := toDomainTag(e)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (r *tagRepo) ListPostIDs(ctx context.Context, tagPublicID string) ([]string, error) {
	dbID, err := idgen.DecodeTypedID(tagPublicID, idgen.EntityTypeTag)
	if err != nil {
		return nil, constant.ErrNotFound
	}

	var entity Tag
	if err := r.db.WithContext(ctx).Preload("Posts").First(&entity, dbID).Error; err != nil {
		return nil, translateError(err)
	}

	ids := make([]string, 0, len(entity.Posts))
	for _, p := range entity.Posts {
		publicID, err := idgen.GeneratePublicID(p.ID, idgen.EntityTypePost)
		if err != nil {
			return nil, fmt.Errorf("生成文章公共ID失败: %w", err)
		}
		ids = append(ids, publicID)
	}
	return ids, nil
}

func toDomainTag(e *Tag) (*model.Tag, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeTag)
	if err != nil {
		return nil, fmt.Errorf("生成标签公共ID失败: %w", err)
	}
	return &model.Tag{
		ID:        publicID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Name:      e.Name,
		Slug:      e.Slug,
	}, nil
}
