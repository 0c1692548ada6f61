/*
 * @Description: 访客计数的业务逻辑
 * @Author: 安知鱼
 * @Date: 2025-05-19 17:30:15
 * @LastEditTime: 2025-07-30 16:42:09
 * @LastEditors: 安知鱼
 */
package visitor

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
)

// Service 封装了访客计数的业务逻辑。
type Service struct {
	statsRepo repository.SiteStatsRepository
}

// NewService 是 Visitor Service 的构造函数。
func NewService(statsRepo repository.SiteStatsRepository) *Service {
	return &Service{statsRepo: statsRepo}
}

// IncrementAndGet 把访客计数加一并返回最新值。
// 计数在数据库里以单条原子 UPDATE 完成，并发调用不丢计数。
func (s *Service) IncrementAndGet(ctx context.Context) (*model.VisitorCountResponse, error) {
	if err := s.statsRepo.EnsureExists(ctx); err != nil {
		return nil, fmt.Errorf("初始化统计行失败: %w", err)
	}
	if err := s.statsRepo.Increment(ctx); err != nil {
		return nil, fmt.Errorf("递增访客计数失败: %w", err)
	}
	return s.Get(ctx)
}

// Get 返回当前访客计数，统计行尚未创建时返回零值。
func (s *Service) Get(ctx context.Context) (*model.VisitorCountResponse, error) {
	if err := s.statsRepo.EnsureExists(ctx); err != nil {
		return nil, fmt.Errorf("初始化统计行失败: %w", err)
	}
	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &model.VisitorCountResponse{
		TotalVisitors: stats.TotalVisitors,
		LastUpdated:   stats.LastUpdated,
	}, nil
}
