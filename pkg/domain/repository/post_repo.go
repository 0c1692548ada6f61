/*
 * @Description: 文章仓储接口
 * @Author: 安知鱼
 * @Date: 2025-05-15 10:02:36
 * @LastEditTime: 2025-08-21 12:10:44
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// PostRepository 定义了文章实体的持久化操作。
// 实现方负责把底层的"记录不存在"/"唯一约束冲突"翻译为
// constant.ErrNotFound / constant.ErrConflict。
type PostRepository interface {
	Create(ctx context.Context, params *model.SavePostParams) (*model.Post, error)

	// Update 按列部分更新，同一事务内改写分类与标签关联，
	// 避免同一次更新调用内部出现读后写竞争。
	Update(ctx context.Context, publicID string, cols *model.UpdatePostColumns) (*model.Post, error)

	// Delete 先解除标签关联再删除文章行，防止关系表残留悬挂引用。
	Delete(ctx context.Context, publicID string) error

	FindByID(ctx context.Context, publicID string) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)

	// ExistsByTitle 按标题精确匹配（区分大小写）。
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// List 按选项过滤并分页，返回当前页数据与总数。
	List(ctx context.Context, opts *model.ListPostsOptions) ([]*model.Post, int64, error)

	// AttachTag / DetachTag 维护文章与标签的双向关系，
	// 关系行的增删对两个遍历方向同时生效。
	AttachTag(ctx context.Context, postPublicID string, tagDBID uint) error
	DetachTag(ctx context.Context, postPublicID string, tagDBID uint) error

	// CountPublishedByCategory / CountPublishedByTag 统计已发布且未归档的文章数。
	CountPublishedByCategory(ctx context.Context, categoryDBID uint) (int, error)
	CountPublishedByTag(ctx context.Context, tagDBID uint) (int, error)
}
