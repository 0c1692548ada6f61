package visitor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// fakeStatsRepo 用原子操作模拟数据库的原子 UPDATE。
type fakeStatsRepo struct {
	exists    atomic.Bool
	ensureCnt atomic.Int64
	total     atomic.Int64
}

func (f *fakeStatsRepo) EnsureExists(context.Context) error {
	f.ensureCnt.Add(1)
	f.exists.Store(true)
	return nil
}

func (f *fakeStatsRepo) Increment(ctx context.Context) error {
	f.total.Add(1)
	return nil
}

func (f *fakeStatsRepo) Get(context.Context) (*model.SiteStats, error) {
	return &model.SiteStats{
		TotalVisitors: f.total.Load(),
		LastUpdated:   time.Now(),
	}, nil
}

func TestIncrementAndGet(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)

	resp, err := svc.IncrementAndGet(context.Background())
	if err != nil {
		t.Fatalf("递增失败: %v", err)
	}
	if resp.TotalVisitors != 1 {
		t.Errorf("计数 = %d, 期望 1", resp.TotalVisitors)
	}
	if !repo.exists.Load() {
		t.Error("递增前应确保统计行存在")
	}
}

func TestConcurrentIncrementsLoseNothing(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.IncrementAndGet(context.Background()); err != nil {
				t.Errorf("并发递增失败: %v", err)
			}
		}()
	}
	wg.Wait()

	resp, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if resp.TotalVisitors != n {
		t.Errorf("并发 %d 次递增后计数 = %d, 不允许丢计数", n, resp.TotalVisitors)
	}
}

func TestGetWithoutIncrement(t *testing.T) {
	svc := NewService(&fakeStatsRepo{})

	resp, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if resp.TotalVisitors != 0 {
		t.Errorf("初始计数 = %d, 期望 0", resp.TotalVisitors)
	}
}
