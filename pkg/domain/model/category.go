/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-15 09:20:11
 * @LastEditTime: 2025-07-30 15:44:08
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Category 是文章分类的核心领域模型。
// 分类随文章首次引用自动创建，文章删除后依旧保留。
type Category struct {
	ID          string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Slug        string
	Description string
}

// CategoryResponse 定义了文章分类的标准 API 响应结构
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PostCount   int    `json:"postCount"`
}
