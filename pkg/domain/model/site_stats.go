/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-16 14:31:02
 * @LastEditTime: 2025-07-30 15:47:26
 * @LastEditors: 安知鱼
 */
package model

import "time"

// SiteStatsID 是全站统计单例行的固定主键。
const SiteStatsID uint = 1

// SiteStats 是全站统计的领域模型，整个系统只有一行，计数单调不减。
type SiteStats struct {
	TotalVisitors int64
	LastUpdated   time.Time
}

// VisitorCountResponse 定义了访客计数的 API 响应结构
type VisitorCountResponse struct {
	TotalVisitors int64     `json:"totalVisitors"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
