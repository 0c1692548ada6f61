/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-15 10:06:40
 * @LastEditTime: 2025-07-30 16:02:31
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// TagRepository 定义了文章标签的持久化操作。
// 名称上有唯一约束，Create 撞库时返回 constant.ErrConflict。
type TagRepository interface {
	Create(ctx context.Context, name, slug string) (*model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)

	// ListPostIDs 从标签侧遍历关系，返回引用该标签的文章公共 ID。
	ListPostIDs(ctx context.Context, tagPublicID string) ([]string, error)
}
