/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-15 09:21:42
 * @LastEditTime: 2025-07-30 15:45:13
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Tag 是文章标签的核心领域模型。名称区分大小写且唯一。
type Tag struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Slug      string
}

// TagResponse 定义了文章标签的标准 API 响应结构
type TagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"postCount"`
}
