/*
 * @Description: GORM 实体定义
 * @Author: 安知鱼
 * @Date: 2025-05-14 21:35:50
 * @LastEditTime: 2025-08-22 10:02:14
 * @LastEditors: 安知鱼
 */
package gormimpl

import "time"

// Post 是文章表的数据库实体。
type Post struct {
	ID            uint   `gorm:"primarykey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Title         string `gorm:"size:200;not null"`
	Content       string `gorm:"type:text"`
	Excerpt       string `gorm:"size:500"`
	Author        string `gorm:"size:100"`
	Slug          string `gorm:"size:255;uniqueIndex;not null"`
	CoverImageURL string `gorm:"size:512"`
	ReadTime      int
	Published     bool `gorm:"index"`
	Archived      bool `gorm:"index"`
	CategoryID    *uint
	Category      *Category
	Tags          []*Tag `gorm:"many2many:post_tags;joinForeignKey:post_id;joinReferences:tag_id"`
}

// Tag 是标签表的数据库实体，名称唯一。
type Tag struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string  `gorm:"size:100;uniqueIndex;not null"`
	Slug      string  `gorm:"size:120;index"`
	Posts     []*Post `gorm:"many2many:post_tags;joinForeignKey:tag_id;joinReferences:post_id"`
}

// Category 是分类表的数据库实体，名称唯一。
type Category struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Slug        string `gorm:"size:120;index"`
	Description string `gorm:"size:500"`
}

// Image 是图片元数据表的数据库实体。PostID 为空表示尚未关联到文章。
type Image struct {
	ID           uint   `gorm:"primarykey"`
	Key          string `gorm:"size:255;uniqueIndex;not null"`
	ProviderFile string `gorm:"size:255"`
	OriginalName string `gorm:"size:255"`
	ContentType  string `gorm:"size:100"`
	Size         int64
	URL          string `gorm:"size:512"`
	UploadedAt   time.Time
	PostID       *uint `gorm:"index"`
}

// SiteStats 是全站统计的单例行，主键固定为 1。
type SiteStats struct {
	ID            uint `gorm:"primarykey"`
	TotalVisitors int64
	LastUpdated   time.Time
}

// TableName 固定表名，避免 GORM 把 SiteStats 复数化成奇怪的名字。
func (SiteStats) TableName() string {
	return "site_stats"
}
