/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-16 14:55:31
 * @LastEditTime: 2025-07-30 16:05:48
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// SiteStatsRepository 定义了全站统计单例行的持久化操作。
type SiteStatsRepository interface {
	// EnsureExists 惰性创建单例行；并发创建时第二个写入方把
	// "行已存在"当作成功，不报错。
	EnsureExists(ctx context.Context) error

	// Increment 以单条原子 UPDATE 语句加一，绝不使用读-改-写。
	Increment(ctx context.Context) error

	Get(ctx context.Context) (*model.SiteStats, error)
}
