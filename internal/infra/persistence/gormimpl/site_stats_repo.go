/*
 * @Description: 全站统计仓储的 GORM 实现
 * @Author: 安知鱼
 * @Date: 2025-05-16 15:40:12
 * @LastEditTime: 2025-08-23 11:02:44
 * @LastEditors: 安知鱼
 */
package gormimpl

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
)

type siteStatsRepo struct {
	db *gorm.DB
}

// NewSiteStatsRepository 创建全站统计仓储的 GORM 实现。
func NewSiteStatsRepository(db *gorm.DB) repository.SiteStatsRepository {
	return &siteStatsRepo{db: db}
}

func (r *siteStatsRepo) EnsureExists(ctx context.Context) error {
	// ON CONFLICT DO NOTHING：并发惰性创建时后到者视为成功
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SiteStats{
			ID:          model.SiteStatsID,
			LastUpdated: time.Now(),
		}).Error
	if err != nil && isDuplicateKey(err) {
		return nil
	}
	return translateError(err)
}

func (r *siteStatsRepo) Increment(ctx context.Context) error {
	// 单条原子 UPDATE，计数永远不用读-改-写
	err := r.db.WithContext(ctx).Model(&SiteStats{}).
		Where("id = ?", model.SiteStatsID).
		Updates(map[string]interface{}{
			"total_visitors": gorm.Expr("total_visitors + ?", 1),
			"last_updated":   time.Now(),
		}).Error
	return translateError(err)
}

func (r *siteStatsRepo) Get(ctx context.Context) (*model.SiteStats, error) {
	var entity SiteStats
	err := r.db.WithContext(ctx).First(&entity, model.SiteStatsID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &model.SiteStats{
		TotalVisitors: entity.TotalVisitors,
		LastUpdated:   entity.LastUpdated,
	}, nil
}
