/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-10 15:23:10
 * @LastEditTime: 2025-08-25 16:42:07
 * @LastEditors: 安知鱼
 */
// internal/app/task/job_image_cleanup.go
package task

import (
	"context"
	"log"
	"time"

	image_service "github.com/anzhiyu-c/soloblog/pkg/service/image"
)

// unlinkedImageMaxAge 是未关联图片的保留时长，超过即被清理。
const unlinkedImageMaxAge = 7 * 24 * time.Hour

// UnlinkedImageCleanupJob 负责清理长期未关联到任何文章的图片
type UnlinkedImageCleanupJob struct {
	imageSvc *image_service.Service
}

// NewUnlinkedImageCleanupJob 是任务的构造函数
func NewUnlinkedImageCleanupJob(imageSvc *image_service.Service) *UnlinkedImageCleanupJob {
	return &UnlinkedImageCleanupJob{
		imageSvc: imageSvc,
	}
}

// Run 是 Job 接口要求实现的方法
func (j *UnlinkedImageCleanupJob) Run() {
	cutoff := time.Now().Add(-unlinkedImageMaxAge)
	cleanedCount, err := j.imageSvc.CleanupUnlinked(context.Background(), cutoff)
	if err != nil {
		// 日志由 wrapper 统一处理，这里可以只处理错误本身
		log.Printf("任务 '%s' 在执行业务逻辑时捕获到错误: %v", j.Name(), err)
	} else {
		log.Printf("任务 '%s' 业务逻辑执行完毕，共清理了 %d 张图片。", j.Name(), cleanedCount)
	}
}

// Name 方法让日志包装器可以打印出更有意义的任务名
func (j *UnlinkedImageCleanupJob) Name() string {
	return "UnlinkedImageCleanupJob"
}
