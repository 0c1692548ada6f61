/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-16 14:50:02
 * @LastEditTime: 2025-08-23 10:40:17
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"
	"time"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// ImageRepository 定义了图片元数据的持久化操作。
type ImageRepository interface {
	Create(ctx context.Context, params *model.CreateImageParams) (*model.Image, error)
	FindByID(ctx context.Context, publicID string) (*model.Image, error)
	FindByKey(ctx context.Context, key string) (*model.Image, error)
	List(ctx context.Context) ([]*model.Image, error)
	ListByPost(ctx context.Context, postDBID uint) ([]*model.Image, error)
	Delete(ctx context.Context, publicID string) error

	// LinkToPost 把一张未关联的图片归属到指定文章。
	LinkToPost(ctx context.Context, imagePublicID string, postDBID uint) (*model.Image, error)

	// ListUnlinkedBefore 返回在 cutoff 之前上传且至今未关联文章的图片，
	// 供定时清理任务使用。
	ListUnlinkedBefore(ctx context.Context, cutoff time.Time) ([]*model.Image, error)
}
