/*
 * @Description: 图片元数据仓储的 GORM 实现
 * @Author: 安知鱼
 * @Date: 2025-05-16 15:22:40
 * @LastEditTime: 2025-08-23 10:55:18
 * @LastEditors: 安知鱼
 */
package gormimpl

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
)

type imageRepo struct {
	db *gorm.DB
}

// NewImageRepository 创建图片仓储的 GORM 实现。
func NewImageRepository(db *gorm.DB) repository.ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, params *model.CreateImageParams) (*model.Image, error) {
	entity := &Image{
		Key:          params.Key,
		ProviderFile: params.ProviderFile,
		OriginalName: params.OriginalName,
		ContentType:  params.ContentType,
		Size:         params.Size,
		URL:          params.URL,
		UploadedAt:   time.Now(),
		PostID:       params.PostDBID,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainImage(entity)
}

func (r *imageRepo) FindByID(ctx context.Context, publicID string) (*model.Image, error) {
	dbID, err := idgen.DecodeTypedID(publicID, idgen.EntityTypeImage)
	if err != nil {
		return nil, constant.ErrNotFound
	}
	var entity Image
	if err := r.db.WithContext(ctx).First(&entity, dbID).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainImage(&entity)
}

func (r *imageRepo) FindByKey(ctx context.Context, key string) (*model.Image, error) {
	var entity Image
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainImage(&entity)
}

func (r *imageRepo) List(ctx context.Context) ([]*model.Image, error) {
	var entities []*Image
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&entities).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainImages(entities)
}

func (r *imageRepo) ListByPost(ctx context.Context, postDBID uint) ([]*model.Image, error) {
	var entities []*Image
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postDBID).
		Order("uploaded_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainImages(entities)
}

func (r *imageRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := idgen.DecodeTypedID(publicID, idgen.EntityTypeImage)
	if err != nil {
		return constant.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&Image{}, dbID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return constant.ErrNotFound
	}
	return nil
}

func (r *imageRepo) LinkToPost(ctx context.Context, imagePublicID string, postDBID uint) (*model.Image, error) {
	dbID, err := idgen.DecodeTypedID(imagePublicID, idgen.EntityTypeImage)
	if err != nil {
		return nil, constant.ErrNotFound
	}

	var entity Image
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entity, dbID).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity).Update("post_id", postDBID).Error; err != nil {
			return err
		}
		return tx.First(&entity, dbID).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainImage(&entity)
}

func (r *imageRepo) ListUnlinkedBefore(ctx context.Context, cutoff time.Time) ([]*model.Image, error) {
	var entities []*Image
	err := r.db.WithContext(ctx).
		Where("post_id IS NULL AND uploaded_at < ?", cutoff).
		Find(&entities).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainImages(entities)
}

func toDomainImage(e *Image) (*model.Image, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeImage)
	if err != nil {
		return nil, fmt.Errorf("生成图片公共ID失败: %w", err)
	}

	img := &model.Image{
		ID:           publicID,
		Key:          e.Key,
		ProviderFile: e.ProviderFile,
		OriginalName: e.OriginalName,
		ContentType:  e.ContentType,
		Size:         e.Size,
		URL:          e.URL,
		UploadedAt:   e.UploadedAt,
	}
	if e.PostID != nil {
		postPublicID, err := idgen.GeneratePublicID(*e.PostID, idgen.EntityTypePost)
		if err != nil {
			return nil, fmt.Errorf("生成文章公共ID失败: %w", err)
		}
		img.PostID = postPublicID
	}
	return img, nil
}

func toDomainImages(entities []*Image) ([]*model.Image, error) {
	images := make([]*model.Image, 0, len(entities))
	for _, e := range entities {
		img, err := toDomainImage(e)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
