/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-15 10:05:19
 * @LastEditTime: 2025-07-30 16:01:13
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// CategoryRepository 定义了文章分类的持久化操作。
// 名称上有唯一约束，Create 撞库时返回 constant.ErrConflict。
type CategoryRepository interface {
	Create(ctx context.Context, name, slug, description string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
}
