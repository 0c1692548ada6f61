/*
 * @Description: 分类仓储的 GORM 实现
 * @Author: 安知鱼
 * @Date: 2025-05-15 11:42:17
 * @LastEditTime: 2025-08-22 11:05:09
 * @LastEditors: 安知鱼
 */
package gormimpl

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
)

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储的 GORM 实现。
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, name, slug, description string) (*model.Category, error) {
	entity := &Category{Name: name, Slug: slug, Description: description}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainCategory(entity)
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var entity Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainCategory(&entity)
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var entity Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainCategory(&entity)
}

func (r *categoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	var entities []*Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, translateError(err)
	}
	categories := make([]*model.Category, 0, len(entities))
	for _, e := range entities {
		c, err := toDomainCategory(e)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func toDomainCategory(e *Category) (*model.Category, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("生成分类公共ID失败: %w", err)
	}
	return &model.Category{
		ID:          publicID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
	}, nil
}
